// Package get provides the runner logic for listing collections.
package get

import (
	"context"
	"errors"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/taskdeck/pkg/app"
	"tableflip.dev/taskdeck/pkg/printers"
	"tableflip.dev/taskdeck/pkg/record"
)

// Get prints one or more collections.
type Get struct {
	Service     *app.Service
	Collections []record.Collection
	ShowID      bool
	JSON        bool
	Out         io.Writer
}

// Do fetches every requested collection, failing on the first error.
func (n *Get) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no service")
	}
	colls := n.Collections
	if len(colls) == 0 {
		colls = record.All
	}

	lists := make(map[record.Collection][]record.Record, len(colls))
	for _, c := range colls {
		recs, err := n.Service.List(ctx, c)
		if err != nil {
			return err
		}
		lists[c] = recs
	}

	if n.JSON {
		out := make(map[record.Collection][]map[string]any, len(lists))
		for _, c := range colls {
			rows := make([]map[string]any, 0, len(lists[c]))
			for _, r := range lists[c] {
				rows = append(rows, record.Wire(c, r))
			}
			out[c] = rows
		}
		return printers.JSON(n.out(), out)
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	for _, c := range colls {
		pp.Title(c, len(lists[c]))
		pp.Collection(c, lists[c]...)
	}
	return nil
}

func (n *Get) out() io.Writer {
	if n.Out != nil {
		return n.Out
	}
	return color.Output
}

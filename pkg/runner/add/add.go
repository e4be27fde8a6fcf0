// Package add provides the runner logic for creating items.
package add

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/taskdeck/pkg/app"
	"tableflip.dev/taskdeck/pkg/printers"
	"tableflip.dev/taskdeck/pkg/record"
)

// Add creates one item and prints the collection it landed in.
type Add struct {
	Service    *app.Service
	Collection record.Collection
	Text       string
	Out        io.Writer
}

// Do executes the add.
func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no service")
	}
	if err := n.Service.Add(ctx, n.Collection, n.Text); err != nil {
		return err
	}
	all, err := n.Service.List(ctx, n.Collection)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: true, Out: n.Out}
	pp.Title(n.Collection, len(all))
	pp.Collection(n.Collection, all...)
	return nil
}

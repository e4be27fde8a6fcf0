// Package edit provides the runner logic for replacing the text of an item.
package edit

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/taskdeck/pkg/app"
	"tableflip.dev/taskdeck/pkg/printers"
	"tableflip.dev/taskdeck/pkg/record"
)

// Edit replaces the text of one item, keeping its completion state.
type Edit struct {
	Service    *app.Service
	Collection record.Collection
	ID         int64
	Text       string
	Out        io.Writer
}

// Do executes the edit.
func (n *Edit) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not edit, no service")
	}
	r, err := n.Service.Find(ctx, n.Collection, n.ID)
	if err != nil {
		return err
	}
	if err := n.Service.Edit(ctx, n.Collection, r, n.Text); err != nil {
		return err
	}
	r.Text = n.Text
	pp := printers.PrettyPrint{ShowID: true, Out: n.Out}
	pp.Collection(n.Collection, r)
	return nil
}

// Package remove provides the runner logic for deleting items.
package remove

import (
	"context"
	"errors"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/taskdeck/pkg/app"
	"tableflip.dev/taskdeck/pkg/record"
)

// Remove deletes one item by id.
type Remove struct {
	Service    *app.Service
	Collection record.Collection
	ID         int64
	Out        io.Writer
}

// Do executes the removal.
func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not remove, no service")
	}
	if err := n.Service.Remove(ctx, n.Collection, n.ID); err != nil {
		return err
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	_, _ = color.New(color.Faint).Fprintf(out, "removed %s %d\n", n.Collection.Kind(), n.ID)
	return nil
}

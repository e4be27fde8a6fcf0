// Package complete provides the runner logic for marking items complete.
package complete

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/taskdeck/pkg/app"
	"tableflip.dev/taskdeck/pkg/printers"
	"tableflip.dev/taskdeck/pkg/record"
)

// Complete sets the completion flag of a task or goal.
type Complete struct {
	Service    *app.Service
	Collection record.Collection
	ID         int64
	// Done is the state to set; false reopens the item.
	Done bool
	Out  io.Writer
}

// Do executes the completion change for the configured item.
func (n *Complete) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not complete, no service")
	}
	if !n.Collection.HasCompletion() {
		return app.ErrNoCompletion
	}
	r, err := n.Service.Find(ctx, n.Collection, n.ID)
	if err != nil {
		return err
	}
	if err := n.Service.SetCompleted(ctx, n.Collection, r, n.Done); err != nil {
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

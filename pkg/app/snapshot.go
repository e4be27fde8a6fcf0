// Package app holds the operations shared by the terminal UI and the CLI verbs.
package app

import (
	"errors"
	"fmt"
	"time"

	"tableflip.dev/taskdeck/pkg/record"
)

// Snapshot is the client-side copy of every collection as of one refresh. It
// is replaced whole on the next refresh, never patched.
type Snapshot struct {
	Generation uint64
	Lists      map[record.Collection][]record.Record
	Errors     map[record.Collection]error
	Taken      time.Time
}

// List returns the records of c, or nil when the snapshot is empty.
func (s Snapshot) List(c record.Collection) []record.Record {
	return s.Lists[c]
}

// Failed lists the collections that could not be fetched, in display order.
func (s Snapshot) Failed() []record.Collection {
	var out []record.Collection
	for _, c := range record.All {
		if s.Errors[c] != nil {
			out = append(out, c)
		}
	}
	return out
}

// Err joins the per-collection failures, or returns nil.
func (s Snapshot) Err() error {
	var errs []error
	for _, c := range s.Failed() {
		errs = append(errs, fmt.Errorf("%s: %w", c, s.Errors[c]))
	}
	return errors.Join(errs...)
}

// NewerThan reports whether s was issued after other.
func (s Snapshot) NewerThan(other Snapshot) bool {
	return s.Generation > other.Generation
}

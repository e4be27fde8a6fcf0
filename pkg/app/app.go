package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"tableflip.dev/taskdeck/pkg/record"
	"tableflip.dev/taskdeck/pkg/remote"
)

// Service provides high-level operations over the three remote collections.
// It wraps the remote store so the UI and the CLI verbs can share logic.
type Service struct {
	Store remote.Store

	generation atomic.Uint64
	now        func() time.Time
}

var (
	ErrNoStore      = errors.New("app: no store configured")
	ErrEmptyText    = errors.New("app: text must not be empty")
	ErrNoCompletion = errors.New("app: collection has no completion flag")
	ErrNotFound     = errors.New("app: record not found")
)

// New returns a Service backed by store.
func New(store remote.Store) *Service {
	return &Service{Store: store}
}

func (s *Service) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

// Snapshot fetches every collection concurrently. A collection that fails to
// load is empty in the result and its error is recorded; the others are not
// affected.
func (s *Service) Snapshot(ctx context.Context) Snapshot {
	gen := s.generation.Add(1)
	snap := Snapshot{
		Generation: gen,
		Lists:      make(map[record.Collection][]record.Record, len(record.All)),
		Errors:     make(map[record.Collection]error),
	}
	if s.Store == nil {
		for _, c := range record.All {
			snap.Lists[c] = []record.Record{}
			snap.Errors[c] = ErrNoStore
		}
		snap.Taken = s.clock()
		return snap
	}

	lists := make([][]record.Record, len(record.All))
	errs := make([]error, len(record.All))
	var g errgroup.Group
	for i, c := range record.All {
		g.Go(func() error {
			recs, err := s.Store.Fetch(ctx, c)
			if err != nil {
				recs = []record.Record{}
			}
			lists[i], errs[i] = recs, err
			return nil
		})
	}
	_ = g.Wait()

	for i, c := range record.All {
		snap.Lists[c] = lists[i]
		if errs[i] != nil {
			snap.Errors[c] = errs[i]
		}
	}
	snap.Taken = s.clock()
	return snap
}

// List returns one collection, reporting fetch failures.
func (s *Service) List(ctx context.Context, c record.Collection) ([]record.Record, error) {
	if s.Store == nil {
		return nil, ErrNoStore
	}
	return s.Store.Fetch(ctx, c)
}

// Find looks up a record by id.
func (s *Service) Find(ctx context.Context, c record.Collection, id int64) (record.Record, error) {
	recs, err := s.List(ctx, c)
	if err != nil {
		return record.Record{}, err
	}
	for _, r := range recs {
		if r.ID == id {
			return r, nil
		}
	}
	return record.Record{}, fmt.Errorf("%w: %s/%d", ErrNotFound, c, id)
}

// Add creates a new record with text as entered. Blank text is sent too; the
// server decides whether to accept it.
func (s *Service) Add(ctx context.Context, c record.Collection, text string) error {
	if s.Store == nil {
		return ErrNoStore
	}
	return s.Store.Add(ctx, c, text)
}

// Edit replaces the text of r, keeping its completion state.
func (s *Service) Edit(ctx context.Context, c record.Collection, r record.Record, text string) error {
	if s.Store == nil {
		return ErrNoStore
	}
	text, err := clean(text)
	if err != nil {
		return err
	}
	return s.Store.Update(ctx, c, r.ID, text, r.Done())
}

// SetCompleted sets the completion flag of r.
func (s *Service) SetCompleted(ctx context.Context, c record.Collection, r record.Record, done bool) error {
	if s.Store == nil {
		return ErrNoStore
	}
	if !c.HasCompletion() {
		return fmt.Errorf("%w: %s", ErrNoCompletion, c)
	}
	return s.Store.Update(ctx, c, r.ID, r.Text, done)
}

// Toggle flips the completion flag of r.
func (s *Service) Toggle(ctx context.Context, c record.Collection, r record.Record) error {
	return s.SetCompleted(ctx, c, r, !r.Done())
}

// Remove deletes the record with id. Nothing local is pruned; the record
// disappears from view on the next snapshot.
func (s *Service) Remove(ctx context.Context, c record.Collection, id int64) error {
	if s.Store == nil {
		return ErrNoStore
	}
	return s.Store.Delete(ctx, c, id)
}

func clean(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}
	return text, nil
}

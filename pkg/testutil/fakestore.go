// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"tableflip.dev/taskdeck/pkg/record"
	"tableflip.dev/taskdeck/pkg/remote"
)

// Call records one invocation of the fake store.
type Call struct {
	Op         remote.Op
	Collection record.Collection
	ID         int64
	Text       string
	Completed  bool
}

// FakeStore is an in-memory implementation of remote.Store for testing.
type FakeStore struct {
	mu     sync.Mutex
	lists  map[record.Collection][]record.Record
	nextID int64
	calls  []Call

	// Error injection for testing
	FetchErr  map[record.Collection]error
	AddErr    error
	UpdateErr error
	DeleteErr error

	// Block, when set, is received from before every Fetch returns.
	Block chan struct{}
}

var _ remote.Store = (*FakeStore)(nil)

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{
		lists:    make(map[record.Collection][]record.Record),
		FetchErr: make(map[record.Collection]error),
	}
}

// Seed appends records with server-assigned ids and returns them.
func (f *FakeStore) Seed(c record.Collection, texts ...string) []record.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]record.Record, 0, len(texts))
	for _, text := range texts {
		out = append(out, f.insert(c, text))
	}
	return out
}

func (f *FakeStore) insert(c record.Collection, text string) record.Record {
	f.nextID++
	r := record.Record{ID: f.nextID, Text: text}
	if c.HasCompletion() {
		r.Completed = record.Bool(false)
	}
	f.lists[c] = append(f.lists[c], r)
	return r
}

// Calls returns every mutating call in order.
func (f *FakeStore) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Records returns the current contents of c.
func (f *FakeStore) Records(c record.Collection) []record.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]record.Record(nil), f.lists[c]...)
}

// Fetch implements remote.Store.
func (f *FakeStore) Fetch(ctx context.Context, c record.Collection) ([]record.Record, error) {
	if f.Block != nil {
		select {
		case <-f.Block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.FetchErr[c]; err != nil {
		return nil, err
	}
	return append([]record.Record{}, f.lists[c]...), nil
}

// Add implements remote.Store.
func (f *FakeStore) Add(_ context.Context, c record.Collection, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: remote.OpAdd, Collection: c, Text: text})
	if f.AddErr != nil {
		return f.AddErr
	}
	f.insert(c, text)
	return nil
}

// Update implements remote.Store.
func (f *FakeStore) Update(_ context.Context, c record.Collection, id int64, text string, completed bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: remote.OpUpdate, Collection: c, ID: id, Text: text, Completed: completed})
	if f.UpdateErr != nil {
		return f.UpdateErr
	}
	for i, r := range f.lists[c] {
		if r.ID == id {
			r.Text = text
			if c.HasCompletion() {
				r.Completed = record.Bool(completed)
			}
			f.lists[c][i] = r
			return nil
		}
	}
	return fmt.Errorf("fake: %s/%d not found", c, id)
}

// Delete implements remote.Store.
func (f *FakeStore) Delete(_ context.Context, c record.Collection, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: remote.OpDelete, Collection: c, ID: id})
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	list := f.lists[c]
	for i, r := range list {
		if r.ID == id {
			f.lists[c] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("fake: %s/%d not found", c, id)
}

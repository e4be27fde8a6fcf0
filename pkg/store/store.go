// Package store is the storage behind the local stand-in server. It is a
// development aid, not a database: records are kept per collection with ids
// assigned sequentially.
package store

import (
	"context"
	"errors"
	"sync"

	"tableflip.dev/taskdeck/pkg/record"
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("store: record not found")

// Persistence defines the storage contract of the stand-in server.
type Persistence interface {
	List(ctx context.Context, c record.Collection) ([]record.Record, error)
	Create(ctx context.Context, c record.Collection, in record.Input) (record.Record, error)
	Update(ctx context.Context, c record.Collection, id int64, in record.Input) (record.Record, error)
	Delete(ctx context.Context, c record.Collection, id int64) error
}

// Memory keeps records in process memory.
type Memory struct {
	mu    sync.Mutex
	next  map[record.Collection]int64
	items map[record.Collection][]record.Record
}

var _ Persistence = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		next:  make(map[record.Collection]int64),
		items: make(map[record.Collection][]record.Record),
	}
}

// List returns records in creation order.
func (m *Memory) List(_ context.Context, c record.Collection) ([]record.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]record.Record{}, m.items[c]...), nil
}

// Create stores a new record and assigns its id.
func (m *Memory) Create(_ context.Context, c record.Collection, in record.Input) (record.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next[c]++
	r := apply(c, record.Record{ID: m.next[c]}, in)
	m.items[c] = append(m.items[c], r)
	return r, nil
}

// Update replaces the text and, when given, the completion flag of a record.
func (m *Memory) Update(_ context.Context, c record.Collection, id int64, in record.Input) (record.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.items[c] {
		if r.ID == id {
			r = apply(c, r, in)
			m.items[c][i] = r
			return r, nil
		}
	}
	return record.Record{}, ErrNotFound
}

// Delete removes a record.
func (m *Memory) Delete(_ context.Context, c record.Collection, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.items[c]
	for i, r := range list {
		if r.ID == id {
			m.items[c] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// apply merges in into r. Collections without completion never carry the
// flag; the others default to not completed.
func apply(c record.Collection, r record.Record, in record.Input) record.Record {
	r.Text = in.Text
	switch {
	case !c.HasCompletion():
		r.Completed = nil
	case in.Completed != nil:
		r.Completed = record.Bool(*in.Completed)
	case r.Completed == nil:
		r.Completed = record.Bool(false)
	}
	return r
}

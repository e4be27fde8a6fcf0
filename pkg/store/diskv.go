package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"

	"tableflip.dev/taskdeck/pkg/record"
)

const seqFile = "seq"

// DiskOption configures a Disk.
type DiskOption func(*Disk)

// WithLogger reports records that can not be read to l.
func WithLogger(l *zap.Logger) DiskOption {
	return func(p *Disk) { p.log = l }
}

// Load creates a Persistence backed by diskv rooted at basePath. Each
// collection is a directory; each record is a JSON file named by its id.
func Load(basePath string, opts ...DiskOption) (*Disk, error) {
	if basePath == "" {
		return nil, fmt.Errorf("store: base path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	p := &Disk{
		log: zap.NewNop(),
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
	}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// Disk is the on-disk Persistence used by `taskdeck serve`.
type Disk struct {
	mu  sync.Mutex
	d   *diskv.Diskv
	log *zap.Logger
}

var _ Persistence = (*Disk)(nil)

type diskRecord struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed *bool  `json:"completed,omitempty"`
}

// List returns records ordered by id, which is creation order.
func (p *Disk) List(ctx context.Context, c record.Collection) ([]record.Record, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	all := make([]record.Record, 0)
	for key := range p.d.KeysPrefix(string(c)+"-", ctx.Done()) {
		pk := keyToPathTransform(key)
		if pk.FileName == seqFile {
			continue
		}
		r, err := p.read(key)
		if err != nil {
			p.log.Warn("skipping unreadable record", zap.String("key", key), zap.Error(err))
			continue
		}
		all = append(all, r)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

// Create stores a new record under the next id of c.
func (p *Disk) Create(_ context.Context, c record.Collection, in record.Input) (record.Record, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id, err := p.nextID(c)
	if err != nil {
		return record.Record{}, err
	}
	r := apply(c, record.Record{ID: id}, in)
	if err := p.write(c, r); err != nil {
		return record.Record{}, err
	}
	return r, nil
}

// Update rewrites an existing record.
func (p *Disk) Update(_ context.Context, c record.Collection, id int64, in record.Input) (record.Record, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := toKey(c, id)
	if !p.d.Has(key) {
		return record.Record{}, ErrNotFound
	}
	r, err := p.read(key)
	if err != nil {
		return record.Record{}, err
	}
	r = apply(c, r, in)
	if err := p.write(c, r); err != nil {
		return record.Record{}, err
	}
	return r, nil
}

// Delete erases a record.
func (p *Disk) Delete(_ context.Context, c record.Collection, id int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := toKey(c, id)
	if !p.d.Has(key) {
		return ErrNotFound
	}
	return p.d.Erase(key)
}

func (p *Disk) read(key string) (record.Record, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return record.Record{}, err
	}
	var dr diskRecord
	if err := json.Unmarshal(val, &dr); err != nil {
		return record.Record{}, err
	}
	return record.Record{ID: dr.ID, Text: dr.Text, Completed: dr.Completed}, nil
}

func (p *Disk) write(c record.Collection, r record.Record) error {
	data, err := json.Marshal(diskRecord{ID: r.ID, Text: r.Text, Completed: r.Completed})
	if err != nil {
		return err
	}
	return p.d.Write(toKey(c, r.ID), data)
}

// nextID bumps and persists the id sequence of c. Ids are never reused, even
// after the highest record is deleted.
func (p *Disk) nextID(c record.Collection) (int64, error) {
	key := string(c) + "-" + seqFile
	var last int64
	if p.d.Has(key) {
		val, err := p.d.Read(key)
		if err != nil {
			return 0, err
		}
		if last, err = strconv.ParseInt(strings.TrimSpace(string(val)), 10, 64); err != nil {
			return 0, fmt.Errorf("store: corrupt sequence for %s: %w", c, err)
		}
	}
	last++
	if err := p.d.Write(key, []byte(strconv.FormatInt(last, 10))); err != nil {
		return 0, err
	}
	return last, nil
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `collection-id`
func toKey(c record.Collection, id int64) string {
	return fmt.Sprintf("%s-%d", c, id)
}

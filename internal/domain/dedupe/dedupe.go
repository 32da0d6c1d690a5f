// Package dedupe tracks roster event IDs so each event is journaled at most once.
package dedupe

import (
	"context"
	"sync"
)

const defaultMaxSize = 50_000

// Deduper records seen event IDs.
type Deduper interface {
	// SeenAndRecord atomically checks whether id was seen and records it if not.
	// Returns true if id was already seen.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord forgets id so a failed event can be retried.
	Unrecord(ctx context.Context, id string)

	Size() int64
}

// inMemoryDeduper keeps the last maxSize IDs in insertion order.
// With maxSize <= 0 it never evicts.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	order   []string // ring of ids, oldest at head when full
	head    int
	maxSize int
}

// NewInMemoryDeduper creates a deduper; the default bound is 50k IDs.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]struct{})
	if d.maxSize > 0 {
		d.order = make([]string, 0, d.maxSize)
	}
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}
	d.seen[id] = struct{}{}

	if d.maxSize <= 0 {
		return false
	}
	if len(d.order) < d.maxSize {
		d.order = append(d.order, id)
		return false
	}
	// full: overwrite the oldest slot
	delete(d.seen, d.order[d.head])
	d.order[d.head] = id
	d.head = (d.head + 1) % d.maxSize
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; !ok {
		return
	}
	delete(d.seen, id)
	if d.maxSize <= 0 {
		return
	}
	for i, v := range d.order {
		if v != id {
			continue
		}
		d.removeAt(i)
		return
	}
}

// removeAt drops ring slot i while keeping insertion order. Must hold d.mu.
func (d *inMemoryDeduper) removeAt(i int) {
	n := len(d.order)
	ordered := make([]string, 0, d.maxSize)
	for k := 0; k < n; k++ {
		idx := (d.head + k) % n
		if idx == i {
			continue
		}
		ordered = append(ordered, d.order[idx])
	}
	d.order = ordered
	d.head = 0
}

func (d *inMemoryDeduper) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(len(d.seen))
}

// Package dedupe tracks which player names have already been seen.
package dedupe

import (
	"context"
	"sync"
)

// Deduper records seen names in first-seen order.
type Deduper interface {
	// SeenAndRecord atomically checks if id was seen and records it if not.
	// Returns true if id was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord removes an id so it may be recorded again.
	Unrecord(ctx context.Context, id string)

	// Order returns recorded ids in first-seen order.
	Order() []string

	// Duplicates returns how many SeenAndRecord calls hit an existing id.
	Duplicates() int

	Size() int
}

type inMemoryDeduper struct {
	mu           sync.Mutex
	seen         map[string]int // key -> index into order
	order        []string
	duplicates   int
	capacityHint int
	normalize    func(string) string
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		capacityHint: 64,
		normalize:    func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]int, d.capacityHint)
	d.order = make([]string, 0, d.capacityHint)
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	key := d.normalize(id)

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[key]; exists {
		d.duplicates++
		return true
	}
	d.seen[key] = len(d.order)
	d.order = append(d.order, id)
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, id string) {
	key := d.normalize(id)

	d.mu.Lock()
	defer d.mu.Unlock()

	idx, exists := d.seen[key]
	if !exists {
		return
	}
	delete(d.seen, key)
	d.order = append(d.order[:idx], d.order[idx+1:]...)
	for i := idx; i < len(d.order); i++ {
		d.seen[d.normalize(d.order[i])] = i
	}
}

func (d *inMemoryDeduper) Order() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

func (d *inMemoryDeduper) Duplicates() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.duplicates
}

func (d *inMemoryDeduper) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.order)
}

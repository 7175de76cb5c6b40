// Package registry holds the in-memory table of completed transfers. Records
// are inserted once after a successful upload and retained for the process
// lifetime; there is no eviction or persistence.
package registry

import (
	"errors"
	"sort"
	"sync"
	"time"
)

var (
	// ErrDuplicateID is returned when a record id is already registered.
	ErrDuplicateID = errors.New("registry: duplicate file id")
	// ErrNotFound is returned when no record exists for the given id.
	ErrNotFound = errors.New("registry: file not found")
)

// Record describes one completed transfer. Records are immutable after
// insertion.
type Record struct {
	ID           string
	OriginalName string
	ObjectKey    string
	SizeBytes    int64
	OwnerID      int64
	CreatedAt    time.Time
	DownloadURL  string
}

// Registry is safe for concurrent readers and writers. Readers observe either
// the pre- or post-insert state, never a partial record.
type Registry struct {
	mu      sync.RWMutex
	records map[string]Record
	order   []string
}

func New() *Registry {
	return &Registry{
		records: make(map[string]Record),
	}
}

// Put inserts a record. It fails with ErrDuplicateID if the id is already
// present; ids are uuid-generated so this guards an internal invariant.
func (r *Registry) Put(rec Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.records[rec.ID]; exists {
		return ErrDuplicateID
	}
	r.records[rec.ID] = rec
	r.order = append(r.order, rec.ID)
	return nil
}

// Get returns the record for id or ErrNotFound.
func (r *Registry) Get(id string) (Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// ListByOwner returns the owner's records in insertion order.
func (r *Registry) ListByOwner(ownerID int64) []Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Record
	for _, id := range r.order {
		if rec := r.records[id]; rec.OwnerID == ownerID {
			out = append(out, rec)
		}
	}
	return out
}

// ListRecent returns up to limit records sorted by creation time, newest
// first.
func (r *Registry) ListRecent(limit int) []Record {
	r.mu.RLock()
	out := make([]Record, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.records[id])
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Len reports the number of registered records.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

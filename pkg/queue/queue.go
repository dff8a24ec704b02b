// Package queue holds decoded photographs waiting to be framed.
//
// Decoders may add entries concurrently; entries are appended in the order
// their Add calls complete. Each entry's palette is sampled once on Add.
package queue

import (
	"image"
	"slices"
	"sync"

	"github.com/matzehuels/filmframe/pkg/frame"
)

// Queue is an ordered, concurrency-safe collection of entries.
type Queue struct {
	mu      sync.RWMutex
	entries []*frame.Entry
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{}
}

// Add creates an entry for img and appends it. Palette sampling happens
// outside the lock so concurrent decoders do not serialize on it.
func (q *Queue) Add(img image.Image) (*frame.Entry, error) {
	e, err := frame.NewEntry(img)
	if err != nil {
		return nil, err
	}
	q.Append(e)
	return e, nil
}

// Append adds an existing entry to the end of the queue.
func (q *Queue) Append(e *frame.Entry) {
	if e == nil {
		return
	}
	q.mu.Lock()
	q.entries = append(q.entries, e)
	q.mu.Unlock()
}

// Get returns the entry with the given ID.
func (q *Queue) Get(id string) (*frame.Entry, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	for _, e := range q.entries {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// Remove deletes the entry with the given ID and reports whether it existed.
func (q *Queue) Remove(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	i := slices.IndexFunc(q.entries, func(e *frame.Entry) bool { return e.ID == id })
	if i < 0 {
		return false
	}
	q.entries = slices.Delete(q.entries, i, i+1)
	return true
}

// Clear removes every entry.
func (q *Queue) Clear() {
	q.mu.Lock()
	q.entries = nil
	q.mu.Unlock()
}

// Entries returns a snapshot of the queue in order. Later changes to the
// queue do not affect the returned slice.
func (q *Queue) Entries() []*frame.Entry {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return slices.Clone(q.entries)
}

// Len returns the number of entries.
func (q *Queue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.entries)
}

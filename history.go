package xsm

import "sort"

// DefaultHistorySize is the number of frames of active-state history kept by default
const DefaultHistorySize = 12

// MaxHistorySize bounds the configurable history size
const MaxHistorySize = 1024

// Snapshot is a copy of the active state registry taken at the start of a frame
type Snapshot[E any] map[string]*State[E]

// Has reports whether the named state was active in the snapshot.
// Duplicated names must be given in their "Parent/Name" form.
func (s Snapshot[E]) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the snapshot keys, sorted
func (s Snapshot[E]) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// History is a bounded list of snapshots, most recent first
type History[E any] struct {
	size    int
	entries []Snapshot[E]
}

// NewHistory creates a history holding at most size snapshots
func NewHistory[E any](size int) *History[E] {
	return &History[E]{
		size:    clampHistorySize(size),
		entries: make([]Snapshot[E], 0),
	}
}

// Push inserts a snapshot at the front and evicts from the back past capacity
func (h *History[E]) Push(s Snapshot[E]) {
	h.entries = append(h.entries, nil)
	copy(h.entries[1:], h.entries)
	h.entries[0] = s
	h.trim()
}

// At returns the snapshot at index id, where 0 is the most recent. An index
// past the recorded depth falls back to the most recent snapshot; with no
// history an empty snapshot is returned.
func (h *History[E]) At(id int) Snapshot[E] {
	if len(h.entries) == 0 {
		return Snapshot[E]{}
	}
	if id < 0 || id >= len(h.entries) {
		return h.entries[0]
	}
	return h.entries[id]
}

// Len returns the number of recorded snapshots
func (h *History[E]) Len() int {
	return len(h.entries)
}

// Size returns the capacity
func (h *History[E]) Size() int {
	return h.size
}

// Resize changes the capacity, dropping the oldest entries if needed
func (h *History[E]) Resize(size int) {
	h.size = clampHistorySize(size)
	h.trim()
}

// Clear drops every snapshot
func (h *History[E]) Clear() {
	h.entries = h.entries[:0]
}

func (h *History[E]) trim() {
	for len(h.entries) > h.size {
		h.entries[len(h.entries)-1] = nil
		h.entries = h.entries[:len(h.entries)-1]
	}
}

func clampHistorySize(size int) int {
	if size < 0 {
		return 0
	}
	if size > MaxHistorySize {
		return MaxHistorySize
	}
	return size
}

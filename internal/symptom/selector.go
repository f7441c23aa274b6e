package symptom

import "sort"

// Selector holds the set of symptoms the user has flagged as present.
// It is owned by a single goroutine and is not safe for concurrent use.
type Selector struct {
	selected map[ID]struct{}
}

// NewSelector creates an empty Selector.
func NewSelector() *Selector {
	return &Selector{selected: make(map[ID]struct{})}
}

// Toggle removes id if it is selected, otherwise adds it.
// Unknown IDs are accepted as-is.
func (s *Selector) Toggle(id ID) {
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
		return
	}
	s.selected[id] = struct{}{}
}

// Has reports whether id is currently selected.
func (s *Selector) Has(id ID) bool {
	_, ok := s.selected[id]
	return ok
}

// Len returns the number of selected symptoms.
func (s *Selector) Len() int {
	return len(s.selected)
}

// IsEmpty reports whether no symptoms are selected.
func (s *Selector) IsEmpty() bool {
	return len(s.selected) == 0
}

// Snapshot returns the current members as a new slice. Later toggles do not
// affect a returned snapshot. Callers must not depend on the order; it is
// sorted only so request payloads are reproducible.
func (s *Selector) Snapshot() []ID {
	out := make([]ID, 0, len(s.selected))
	for id := range s.selected {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

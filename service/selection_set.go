package service

import (
	"sort"
	"sync"
)

// SelectionSet tracks which media items the operator has marked in the
// current collection view, plus a selection-mode bit independent of the set
// contents. The set is ephemeral: never persisted, and it must be reconciled
// against the displayed collection whenever that collection changes so bulk
// operations cannot reference rows that are no longer visible.
type SelectionSet struct {
	mu   sync.Mutex
	ids  map[string]struct{}
	mode bool
}

// NewSelectionSet creates an empty selection set with selection mode off.
func NewSelectionSet() *SelectionSet {
	return &SelectionSet{ids: make(map[string]struct{})}
}

// Toggle inserts id if absent and removes it if present. Returns the new
// membership state. Two identical toggles restore the prior membership.
func (s *SelectionSet) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// EnterSelectionMode turns the mode bit on without selecting anything.
func (s *SelectionSet) EnterSelectionMode() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = true
}

// InSelectionMode reports whether selection mode is active.
func (s *SelectionSet) InSelectionMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Clear empties the set and exits selection mode.
func (s *SelectionSet) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[string]struct{})
	s.mode = false
}

// Has reports whether id is selected.
func (s *SelectionSet) Has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected ids.
func (s *SelectionSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// IDs returns the selected ids in sorted order.
func (s *SelectionSet) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Reconcile drops every selected id that is not in currentIDs. Callers must
// invoke it whenever the displayed collection changes (after a delete, page
// change or filter change). Returns the number of stale ids dropped.
func (s *SelectionSet) Reconcile(currentIDs []string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := make(map[string]struct{}, len(currentIDs))
	for _, id := range currentIDs {
		current[id] = struct{}{}
	}

	dropped := 0
	for id := range s.ids {
		if _, ok := current[id]; !ok {
			delete(s.ids, id)
			dropped++
		}
	}
	return dropped
}

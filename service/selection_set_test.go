package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionSet_ToggleRoundTrip(t *testing.T) {
	s := NewSelectionSet()

	assert.True(t, s.Toggle("m1"))
	assert.True(t, s.Has("m1"))

	assert.False(t, s.Toggle("m1"))
	assert.False(t, s.Has("m1"))
	assert.Equal(t, 0, s.Len(), "two toggles return to the prior membership")
}

func TestSelectionSet_EnterModeSelectsNothing(t *testing.T) {
	s := NewSelectionSet()

	s.EnterSelectionMode()
	assert.True(t, s.InSelectionMode())
	assert.Equal(t, 0, s.Len())
}

func TestSelectionSet_ClearFromAnyState(t *testing.T) {
	s := NewSelectionSet()
	s.EnterSelectionMode()
	s.Toggle("m1")
	s.Toggle("m2")

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.InSelectionMode())

	// Clear on an already-empty set is fine.
	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.InSelectionMode())
}

func TestSelectionSet_ReconcileDropsStaleIDs(t *testing.T) {
	s := NewSelectionSet()
	s.Toggle("m1")
	s.Toggle("m2")
	s.Toggle("m3")

	dropped := s.Reconcile([]string{"m2", "m4"})
	assert.Equal(t, 2, dropped)
	assert.Equal(t, []string{"m2"}, s.IDs())
}

func TestSelectionSet_ReconcileAgainstEmptyCollection(t *testing.T) {
	s := NewSelectionSet()
	s.EnterSelectionMode()
	s.Toggle("m1")

	dropped := s.Reconcile(nil)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, 0, s.Len())
	assert.True(t, s.InSelectionMode(),
		"reconcile prunes ids but does not exit selection mode")
}

package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"galeria-admin/kvstore"
)

// brokenStore fails every read/write, standing in for an unavailable
// persisted store.
type brokenStore struct{}

func (brokenStore) Get(string) (string, bool, error) {
	return "", false, errors.New("store unavailable")
}

func (brokenStore) Set(string, string) error {
	return errors.New("store unavailable")
}

func TestGate_BothGatesDisabled_AlwaysUnlocked(t *testing.T) {
	store := kvstore.NewMemStore()
	gate := NewVerificationGate(store)

	assert.True(t, gate.IsUnlocked("g1", false, false))

	// Persisted state is irrelevant when nothing is required.
	require.NoError(t, store.Set("age-verified", "false"))
	require.NoError(t, store.Set("gallery-g1-auth", "false"))
	assert.True(t, NewVerificationGate(store).IsUnlocked("g1", false, false))
}

func TestGate_AgeOnly_DependsOnGlobalFlag(t *testing.T) {
	store := kvstore.NewMemStore()
	gate := NewVerificationGate(store)

	assert.False(t, gate.IsUnlocked("g1", true, false))

	// The age flag is global: verifying through any gallery covers all.
	require.NoError(t, gate.RecordVerified("other-gallery"))
	assert.True(t, gate.IsUnlocked("g1", true, false))
	assert.True(t, gate.IsUnlocked("g2", true, false))
}

func TestGate_PasswordFlag_IsScopedPerGallery(t *testing.T) {
	store := kvstore.NewMemStore()
	gate := NewVerificationGate(store)

	require.NoError(t, gate.RecordVerified("g1"))

	assert.True(t, gate.IsUnlocked("g1", true, true))
	assert.False(t, gate.IsUnlocked("g2", true, true),
		"password auth for g1 must not unlock g2")
	assert.True(t, gate.IsUnlocked("g2", true, false),
		"g2 without a password requirement only needs the global age flag")
}

func TestGate_RecordVerified_IsOneWayAndPersists(t *testing.T) {
	store := kvstore.NewMemStore()
	gate := NewVerificationGate(store)

	require.NoError(t, gate.RecordVerified("g1"))
	assert.True(t, gate.IsUnlocked("g1", true, true))

	// No operation resets it within a session; repeated reads stay unlocked.
	for i := 0; i < 3; i++ {
		assert.True(t, gate.IsUnlocked("g1", true, true))
	}

	// A fresh gate over the same store sees the persisted flags.
	fresh := NewVerificationGate(store)
	assert.True(t, fresh.IsUnlocked("g1", true, true))
}

func TestGate_StorageFailure_FailsClosed(t *testing.T) {
	gate := NewVerificationGate(brokenStore{})

	assert.False(t, gate.IsUnlocked("g1", true, false))
	assert.False(t, gate.IsUnlocked("g1", false, true))
	assert.True(t, gate.IsUnlocked("g1", false, false),
		"gating disabled needs no store at all")
}

// flakyStore wraps a working store behind a failure switch, standing in for
// a store that goes down and later recovers.
type flakyStore struct {
	inner *kvstore.MemStore
	fail  bool
}

func (s *flakyStore) Get(key string) (string, bool, error) {
	if s.fail {
		return "", false, errors.New("store unavailable")
	}
	return s.inner.Get(key)
}

func (s *flakyStore) Set(key, value string) error {
	if s.fail {
		return errors.New("store unavailable")
	}
	return s.inner.Set(key, value)
}

func TestGate_StoreRecovery_IsPickedUp(t *testing.T) {
	inner := kvstore.NewMemStore()
	require.NoError(t, inner.Set("age-verified", "true"))
	require.NoError(t, inner.Set("gallery-g1-auth", "true"))

	store := &flakyStore{inner: inner, fail: true}
	gate := NewVerificationGate(store)

	// While the store is down the gate fails closed.
	assert.False(t, gate.IsUnlocked("g1", true, true))

	// Once it recovers, the persisted flags must be visible again: a
	// degraded read is never cached as a definitive "not verified".
	store.fail = false
	assert.True(t, gate.IsUnlocked("g1", true, true))
}

func TestGate_StorageWriteFailure_StillUnlocksInMemory(t *testing.T) {
	gate := NewVerificationGate(brokenStore{})

	err := gate.RecordVerified("g1")
	assert.Error(t, err, "persistence failure is reported for diagnostics")
	assert.True(t, gate.IsUnlocked("g1", true, true),
		"in-memory state flips even when persistence fails")
}

func TestGate_StateTransitions(t *testing.T) {
	store := kvstore.NewMemStore()
	gate := NewVerificationGate(store)

	assert.Equal(t, GateLoading, gate.State("g1", true, true),
		"before the first store read")

	assert.False(t, gate.IsUnlocked("g1", true, true))
	assert.Equal(t, GateLocked, gate.State("g1", true, true))

	require.NoError(t, gate.RecordVerified("g1"))
	assert.Equal(t, GateUnlocked, gate.State("g1", true, true))
}

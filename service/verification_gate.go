package service

import (
	"fmt"
	"log"
	"sync"

	"galeria-admin/kvstore"
)

// Verification flag keys. The age flag is deliberately global — one
// affirmation covers every gallery — while password authentication is scoped
// per gallery id. The asymmetry is a contract, not an oversight.
const (
	ageVerifiedKey = "age-verified"
	verifiedValue  = "true"
)

func galleryAuthKey(galleryID string) string {
	return fmt.Sprintf("gallery-%s-auth", galleryID)
}

// GateState is the lifecycle state of the verification gate for a gallery.
type GateState int

const (
	// GateLoading means the persisted flags have not been read yet.
	GateLoading GateState = iota
	GateLocked
	GateUnlocked
)

func (s GateState) String() string {
	switch s {
	case GateLoading:
		return "loading"
	case GateLocked:
		return "locked"
	case GateUnlocked:
		return "unlocked"
	default:
		return "unknown"
	}
}

// VerificationGate decides whether a gallery's gated content may render,
// based on flags persisted in a durable key-value store. Unlocking is
// one-way: no operation here ever resets a recorded verification; only
// external clearing of the store can. Any failure to read the store is
// treated as not verified — the gate fails closed, never crashes.
type VerificationGate struct {
	store kvstore.Store

	mu          sync.Mutex
	loaded      bool
	ageRetry    bool // last global read failed; consult the store again
	ageVerified bool
	perGallery  map[string]bool
}

// NewVerificationGate creates a gate over the given persisted store. Flags
// are read lazily on first use.
func NewVerificationGate(store kvstore.Store) *VerificationGate {
	return &VerificationGate{
		store:      store,
		perGallery: make(map[string]bool),
	}
}

// loadLocked reads the global age flag. A failed read still leaves the gate
// locked rather than loading forever, but it is retried on the next call so
// a recovered store is picked up. Callers hold g.mu.
func (g *VerificationGate) loadLocked() {
	if g.loaded && !g.ageRetry {
		return
	}
	verified, err := g.readFlagLocked(ageVerifiedKey)
	if verified {
		g.ageVerified = true
	}
	g.ageRetry = err != nil && !g.ageVerified
	g.loaded = true
}

// readFlagLocked reads a single persisted flag. A read failure degrades to
// false so the gate fails closed, and is reported separately so callers can
// avoid caching the degraded answer. Callers hold g.mu.
func (g *VerificationGate) readFlagLocked(key string) (bool, error) {
	value, ok, err := g.store.Get(key)
	if err != nil {
		log.Printf("⚠️  Verification store read failed for %q, treating as locked: %v", key, err)
		return false, err
	}
	return ok && value == verifiedValue, nil
}

// passwordAuthenticatedLocked returns the per-gallery auth flag, consulting
// the store the first time a gallery is seen. Only clean reads are cached:
// a degraded read answers locked for this call but the store is consulted
// again next time, so a recovered store unlocks the gallery. Callers hold
// g.mu.
func (g *VerificationGate) passwordAuthenticatedLocked(galleryID string) bool {
	if authed, ok := g.perGallery[galleryID]; ok {
		return authed
	}
	authed, err := g.readFlagLocked(galleryAuthKey(galleryID))
	if err != nil {
		return false
	}
	g.perGallery[galleryID] = authed
	return authed
}

// IsUnlocked reports whether the gallery's gated content may render. A
// disabled requirement is always satisfied; a gallery with both gates
// disabled is always unlocked regardless of persisted state.
func (g *VerificationGate) IsUnlocked(galleryID string, requiresAge, requiresPassword bool) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.loadLocked()

	if requiresAge && !g.ageVerified {
		return false
	}
	if requiresPassword && !g.passwordAuthenticatedLocked(galleryID) {
		return false
	}
	return true
}

// State returns the gate state for a gallery without forcing a store read:
// GateLoading before the first read, then GateLocked or GateUnlocked.
func (g *VerificationGate) State(galleryID string, requiresAge, requiresPassword bool) GateState {
	g.mu.Lock()
	loaded := g.loaded
	g.mu.Unlock()

	if !loaded {
		return GateLoading
	}
	if g.IsUnlocked(galleryID, requiresAge, requiresPassword) {
		return GateUnlocked
	}
	return GateLocked
}

// RecordVerified marks the operator as age-verified globally and
// password-authenticated for the given gallery, persisting both flags. The
// in-memory state flips to unlocked even if persistence fails; the returned
// error is diagnostic only and must not be shown to the end user.
func (g *VerificationGate) RecordVerified(galleryID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.loadLocked()
	g.ageVerified = true
	g.ageRetry = false
	g.perGallery[galleryID] = true

	var firstErr error
	if err := g.store.Set(ageVerifiedKey, verifiedValue); err != nil {
		log.Printf("⚠️  Failed to persist age verification flag: %v", err)
		firstErr = err
	}
	if err := g.store.Set(galleryAuthKey(galleryID), verifiedValue); err != nil {
		log.Printf("⚠️  Failed to persist auth flag for gallery %s: %v", galleryID, err)
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

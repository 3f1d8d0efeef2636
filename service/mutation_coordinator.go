package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"galeria-admin/models"
)

// JobResultKind tags the unified job result variant.
type JobResultKind string

const (
	// JobResultOK means the job completed with no failures.
	JobResultOK JobResultKind = "ok"
	// JobResultPartial means the job completed but some units failed. This
	// is reported to the user as success with caveats, never as failure.
	JobResultPartial JobResultKind = "partial"
	// JobResultError means the invocation itself failed (transport-level or
	// rejected as a duplicate) and no outcome exists.
	JobResultError JobResultKind = "error"
)

// JobResult is the tagged outcome of TriggerAsyncJob, one shape for every
// job kind so callers report it with a single exhaustive switch.
type JobResult struct {
	Kind       JobResultKind `json:"kind"`
	Successful int           `json:"successful"`
	Failed     int           `json:"failed"`
	Cause      error         `json:"-"`
}

const deleteMutationKind = "delete"

// MutationCoordinator performs catalog writes and keeps the read cache
// consistent afterward. Within one coordinator at most one mutation of a
// given kind is in flight at a time: a second invocation while the first is
// still running is ignored without issuing a request, which is what makes a
// double-clicked delete button harmless. No ordering is guaranteed across
// coordinator instances.
type MutationCoordinator struct {
	catalog  Catalog
	cache    CacheInvalidator
	notifier Notifier

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewMutationCoordinator creates a coordinator over the catalog, the cache
// it is allowed to invalidate, and the user-facing notifier.
func NewMutationCoordinator(catalog Catalog, cache CacheInvalidator, notifier Notifier) *MutationCoordinator {
	return &MutationCoordinator{
		catalog:  catalog,
		cache:    cache,
		notifier: notifier,
		inFlight: make(map[string]bool),
	}
}

// begin claims the in-flight flag for a mutation kind. Returns false when a
// mutation of that kind is already running.
func (m *MutationCoordinator) begin(kind string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inFlight[kind] {
		return false
	}
	m.inFlight[kind] = true
	return true
}

func (m *MutationCoordinator) end(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.inFlight, kind)
}

// InFlight reports whether a mutation of the given kind is running.
func (m *MutationCoordinator) InFlight(kind string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inFlight[kind]
}

// DeleteMany issues a single batched delete for all ids. On success every
// cache entry under the gallery's media and products domains is marked stale
// and a success notification is surfaced; on failure the cache is left
// untouched and a single aggregate failure notification is surfaced. Returns
// whether the delete succeeded. An empty id set or a delete already in
// flight is a no-op returning false.
func (m *MutationCoordinator) DeleteMany(ctx context.Context, galleryID string, ids []string) bool {
	if len(ids) == 0 {
		log.Printf("⚠️  DeleteMany called with no ids for gallery %s, ignoring", galleryID)
		return false
	}

	if !m.begin(deleteMutationKind) {
		log.Printf("⚠️  Delete already in flight for this coordinator, ignoring duplicate")
		return false
	}
	defer m.end(deleteMutationKind)

	if err := m.catalog.DeleteMedia(ctx, galleryID, ids); err != nil {
		log.Printf("❌ Batched delete of %d items failed for gallery %s: %v", len(ids), galleryID, err)
		m.notifier.Error(fmt.Sprintf("Failed to delete %d media item(s)", len(ids)))
		return false
	}

	m.cache.Invalidate(QueryKey{"media", galleryID})
	m.cache.Invalidate(QueryKey{"products", galleryID})
	m.notifier.Success(fmt.Sprintf("Deleted %d media item(s)", len(ids)))
	return true
}

// TriggerAsyncJob invokes an asynchronous catalog job and reports its
// outcome. A transport-level failure is a coordinator error; a completed job
// with failed > 0 is a partial success reported with both counts. Jobs never
// invalidate caches — they have no authority over read domains.
func (m *MutationCoordinator) TriggerAsyncJob(ctx context.Context, kind models.JobKind, payload models.JobPayload) JobResult {
	flightKey := "job:" + string(kind)
	if !m.begin(flightKey) {
		log.Printf("⚠️  Job %s already in flight for this coordinator, ignoring duplicate", kind)
		return JobResult{Kind: JobResultError, Cause: ErrMutationInFlight}
	}
	defer m.end(flightKey)

	outcome, err := m.catalog.InvokeJob(ctx, kind, payload)
	if err != nil {
		log.Printf("❌ Job %s invocation failed: %v", kind, err)
		m.notifier.Error(fmt.Sprintf("Failed to run %s job", kind))
		return JobResult{Kind: JobResultError, Cause: err}
	}

	if outcome.Failed > 0 {
		m.notifier.Success(fmt.Sprintf("%s completed: %d succeeded, %d failed",
			kind, outcome.Successful, outcome.Failed))
		return JobResult{
			Kind:       JobResultPartial,
			Successful: outcome.Successful,
			Failed:     outcome.Failed,
		}
	}

	m.notifier.Success(fmt.Sprintf("%s completed successfully", kind))
	return JobResult{Kind: JobResultOK, Successful: outcome.Successful}
}

package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"galeria-admin/models"
	"galeria-admin/repository"
	"galeria-admin/utils"
)

// ErrSearchSuperseded is returned when a newer query replaced this one
// before the debounce delay elapsed. Superseded lookups are discarded and
// never reach the catalog.
var ErrSearchSuperseded = errors.New("search query superseded")

// GallerySearch debounces rapidly changing search queries so only the query
// that survives the quiet period triggers a catalog read. Results are cached
// per query under the ["businesses", q] domain; a burst of keystrokes
// resolves to exactly one fetch, for the final value.
type GallerySearch struct {
	repo      repository.GalleryRepositoryInterface
	cache     *QueryCache[[]models.Gallery]
	debouncer *utils.Debouncer[string]
	quit      chan struct{}

	mu        sync.Mutex
	latest    string // most recent query handed to Search
	lastQuery string
	lastRows  []models.Gallery
	lastErr   error
	hasResult bool
	published chan struct{} // closed and replaced after each fetch
}

// NewGallerySearch starts the watcher goroutine that fetches settled
// queries. Callers must Close it exactly once when done.
func NewGallerySearch(repo repository.GalleryRepositoryInterface, cache *QueryCache[[]models.Gallery], delay time.Duration) *GallerySearch {
	s := &GallerySearch{
		repo:      repo,
		cache:     cache,
		debouncer: utils.NewDebouncer[string](delay),
		quit:      make(chan struct{}),
		published: make(chan struct{}),
	}
	go s.run()
	return s
}

// run consumes debounced query keys and resolves them through the cache.
func (s *GallerySearch) run() {
	for {
		select {
		case <-s.quit:
			return
		case q := <-s.debouncer.C():
			rows, err := s.cache.GetOrFetch(context.Background(), QueryKey{"businesses", q},
				func(ctx context.Context) ([]models.Gallery, error) {
					return s.repo.SearchByName(ctx, q)
				})

			s.mu.Lock()
			s.lastQuery = q
			s.lastRows = rows
			s.lastErr = err
			s.hasResult = true
			close(s.published)
			s.published = make(chan struct{})
			s.mu.Unlock()
		}
	}
}

// Search resolves q once the debounce delay has elapsed with no newer query.
// When a newer query arrives first, this call returns ErrSearchSuperseded
// without issuing a catalog read — last write wins, superseded lookups are
// dropped, never queued.
func (s *GallerySearch) Search(ctx context.Context, q string) ([]models.Gallery, error) {
	s.mu.Lock()
	s.latest = q
	s.mu.Unlock()
	s.debouncer.Set(q)

	for {
		s.mu.Lock()
		if s.latest != q {
			s.mu.Unlock()
			return nil, ErrSearchSuperseded
		}
		if s.hasResult && s.lastQuery == q {
			rows, err := s.lastRows, s.lastErr
			s.mu.Unlock()
			return rows, err
		}
		wait := s.published
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-wait:
		}
	}
}

// Close stops the watcher. Pending queries are discarded; nothing is
// fetched after Close returns.
func (s *GallerySearch) Close() {
	s.debouncer.Stop()
	close(s.quit)
}

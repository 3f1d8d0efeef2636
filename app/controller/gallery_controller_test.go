package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"galeria-admin/kvstore"
	"galeria-admin/models"
	"galeria-admin/service"
	"galeria-admin/storage"
)

type memGalleryRepo struct {
	mu        sync.Mutex
	galleries map[string]models.Gallery
	searches  int
}

func (r *memGalleryRepo) GetByID(_ context.Context, id string) (*models.Gallery, error) {
	g, ok := r.galleries[id]
	if !ok {
		return nil, fmt.Errorf("gallery not found: %s", id)
	}
	return &g, nil
}

func (r *memGalleryRepo) SearchByName(_ context.Context, query string) ([]models.Gallery, error) {
	r.mu.Lock()
	r.searches++
	r.mu.Unlock()

	var out []models.Gallery
	for _, g := range r.galleries {
		out = append(out, g)
	}
	return out, nil
}

func (r *memGalleryRepo) searchCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.searches
}

func newGalleryController(t *testing.T, repo *memGalleryRepo) *GalleryController {
	t.Helper()
	gate := service.NewVerificationGate(kvstore.NewMemStore())
	search := service.NewGallerySearch(repo, service.NewQueryCache[[]models.Gallery](), 20*time.Millisecond)
	t.Cleanup(search.Close)
	urls := storage.NewPublicURLResolver("https://cdn.example.com")
	return NewGalleryController(repo, gate, search, service.NewScreenshotService(""), urls, "gallery-media")
}

func accessStatus(t *testing.T, c *GalleryController, galleryID string) bool {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/admin/galleries/"+galleryID+"/access", nil)
	rec := httptest.NewRecorder()
	c.AccessStatus(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	unlocked, ok := resp["unlocked"].(bool)
	require.True(t, ok)
	return unlocked
}

func verify(t *testing.T, c *GalleryController, galleryID, password string) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(models.VerifyRequest{Password: password})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/admin/galleries/"+galleryID+"/verify", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	c.Verify(rec, req)
	return rec
}

func TestGalleryController_VerifyUnlocksGatedGallery(t *testing.T) {
	repo := &memGalleryRepo{galleries: map[string]models.Gallery{
		"g1": {ID: "g1", Name: "Velvet Room", Password: "s3cret",
			PasswordRequired: true, AgeVerificationEnabled: true},
	}}
	c := newGalleryController(t, repo)

	assert.False(t, accessStatus(t, c, "g1"))

	rec := verify(t, c, "g1", "s3cret")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.True(t, accessStatus(t, c, "g1"))
}

func TestGalleryController_WrongPasswordLeavesGateLocked(t *testing.T) {
	repo := &memGalleryRepo{galleries: map[string]models.Gallery{
		"g1": {ID: "g1", Password: "s3cret", PasswordRequired: true, AgeVerificationEnabled: true},
	}}
	c := newGalleryController(t, repo)

	rec := verify(t, c, "g1", "wrong")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, accessStatus(t, c, "g1"))
}

func TestGalleryController_UngatedGalleryIsAlwaysUnlocked(t *testing.T) {
	repo := &memGalleryRepo{galleries: map[string]models.Gallery{
		"g1": {ID: "g1", Name: "Open Shelf"},
	}}
	c := newGalleryController(t, repo)

	assert.True(t, accessStatus(t, c, "g1"))
}

func TestGalleryController_VerifyUnknownGallery(t *testing.T) {
	c := newGalleryController(t, &memGalleryRepo{galleries: map[string]models.Gallery{}})

	rec := verify(t, c, "nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func doSearch(c *GalleryController, q string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin/galleries?q="+q, nil)
	rec := httptest.NewRecorder()
	c.Search(rec, req)
	return rec
}

func TestGalleryController_SearchReturnsSettledResults(t *testing.T) {
	repo := &memGalleryRepo{galleries: map[string]models.Gallery{
		"g1": {ID: "g1", Name: "Velvet Room"},
	}}
	c := newGalleryController(t, repo)

	rec := doSearch(c, "velvet")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var galleries []models.Gallery
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &galleries))
	assert.Len(t, galleries, 1)
	assert.Equal(t, 1, repo.searchCount())
}

func TestGalleryController_SearchBurstIssuesOneCatalogRead(t *testing.T) {
	repo := &memGalleryRepo{galleries: map[string]models.Gallery{
		"g1": {ID: "g1", Name: "Velvet Room"},
	}}
	c := newGalleryController(t, repo)

	// A keystroke burst: the first request is replaced before the debounce
	// delay elapses and gets 204; only the final query hits the catalog.
	first := make(chan *httptest.ResponseRecorder, 1)
	go func() { first <- doSearch(c, "ve") }()
	time.Sleep(5 * time.Millisecond)

	rec := doSearch(c, "velvet")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, http.StatusNoContent, (<-first).Code)
	assert.Equal(t, 1, repo.searchCount(),
		"only the settled query reaches the catalog")
}

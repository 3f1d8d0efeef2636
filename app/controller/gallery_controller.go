package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"galeria-admin/models"
	"galeria-admin/repository"
	"galeria-admin/service"
	"galeria-admin/storage"
)

// GalleryController handles HTTP requests for galleries: search, the
// verification gate, and storefront screenshot capture.
type GalleryController struct {
	repo        repository.GalleryRepositoryInterface
	gate        *service.VerificationGate
	search      *service.GallerySearch
	screenshots *service.ScreenshotService
	urls        *storage.PublicURLResolver
	bucket      string
}

// NewGalleryController creates a new GalleryController
func NewGalleryController(
	repo repository.GalleryRepositoryInterface,
	gate *service.VerificationGate,
	search *service.GallerySearch,
	screenshots *service.ScreenshotService,
	urls *storage.PublicURLResolver,
	bucket string,
) *GalleryController {
	return &GalleryController{
		repo:        repo,
		gate:        gate,
		search:      search,
		screenshots: screenshots,
		urls:        urls,
		bucket:      bucket,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Headers are already out; nothing better to do than drop it.
		return
	}
}

// Search handles GET /admin/galleries?q=
// The query is routed through the debounced search watcher: a burst of
// keystrokes resolves to one catalog read for the final q, and every request
// it replaced answers 204 so the frontend simply drops it.
func (c *GalleryController) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	galleries, err := c.search.Search(r.Context(), q)
	if errors.Is(err, service.ErrSearchSuperseded) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to search galleries: %v", err), http.StatusInternalServerError)
		return
	}
	if galleries == nil {
		galleries = []models.Gallery{}
	}

	writeJSON(w, http.StatusOK, galleries)
}

// galleryIDFromPath extracts the gallery id from paths of the form
// /admin/galleries/{id}/{action}
func galleryIDFromPath(path, action string) string {
	rest := strings.TrimPrefix(path, "/admin/galleries/")
	rest = strings.TrimSuffix(rest, "/"+action)
	if rest == "" || strings.Contains(rest, "/") {
		return ""
	}
	return rest
}

// AccessStatus handles GET /admin/galleries/{id}/access
// Reports whether the gallery's gated content may render for this operator.
func (c *GalleryController) AccessStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := galleryIDFromPath(r.URL.Path, "access")
	if id == "" {
		http.Error(w, "gallery id is required", http.StatusBadRequest)
		return
	}

	gallery, err := c.repo.GetByID(r.Context(), id)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to get gallery: %v", err), http.StatusNotFound)
		return
	}

	unlocked := c.gate.IsUnlocked(gallery.ID, gallery.AgeVerificationEnabled, gallery.PasswordRequired)
	writeJSON(w, http.StatusOK, map[string]any{
		"galleryId": gallery.ID,
		"unlocked":  unlocked,
	})
}

// Verify handles POST /admin/galleries/{id}/verify
// Checks the submitted password when the gallery requires one, then records
// the operator as verified. Verification is one-way for the session.
func (c *GalleryController) Verify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := galleryIDFromPath(r.URL.Path, "verify")
	if id == "" {
		http.Error(w, "gallery id is required", http.StatusBadRequest)
		return
	}

	gallery, err := c.repo.GetByID(r.Context(), id)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to get gallery: %v", err), http.StatusNotFound)
		return
	}

	var req models.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if gallery.PasswordRequired && req.Password != gallery.Password {
		http.Error(w, "Incorrect password", http.StatusForbidden)
		return
	}

	// Persistence failures are diagnostic only; the operator still sees the
	// gate open for this session.
	_ = c.gate.RecordVerified(gallery.ID)

	writeJSON(w, http.StatusOK, map[string]any{
		"galleryId": gallery.ID,
		"unlocked":  true,
	})
}

// Screenshots handles POST /admin/galleries/{id}/screenshots
// Captures the public storefront at the desktop and mobile viewports and
// stores the PNGs at their canonical asset paths.
func (c *GalleryController) Screenshots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := galleryIDFromPath(r.URL.Path, "screenshots")
	if id == "" {
		http.Error(w, "gallery id is required", http.StatusBadRequest)
		return
	}

	gallery, err := c.repo.GetByID(r.Context(), id)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to get gallery: %v", err), http.StatusNotFound)
		return
	}
	if gallery.StorefrontURL == "" {
		http.Error(w, "gallery has no storefront URL", http.StatusBadRequest)
		return
	}

	keys, err := c.screenshots.CaptureStorefront(r.Context(), gallery.ID, gallery.StorefrontURL)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to capture screenshots: %v", err), http.StatusInternalServerError)
		return
	}

	urls := make([]string, 0, len(keys))
	for _, key := range keys {
		urls = append(urls, c.urls.PublicURL(c.bucket, key))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"paths": keys,
		"urls":  urls,
	})
}

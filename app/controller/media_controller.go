package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"galeria-admin/models"
	"galeria-admin/service"
)

// MediaController handles HTTP requests for the media collection: listing,
// selection state, batched deletes and asynchronous jobs. It holds one
// selection set per gallery view and reconciles it against every list read
// so a bulk action can never reference rows that are no longer displayed.
type MediaController struct {
	catalog     service.Catalog
	cache       *service.QueryCache[[]models.MediaItem]
	coordinator *service.MutationCoordinator

	mu         sync.Mutex
	selections map[string]*service.SelectionSet
}

// NewMediaController creates a new MediaController
func NewMediaController(
	catalog service.Catalog,
	cache *service.QueryCache[[]models.MediaItem],
	coordinator *service.MutationCoordinator,
) *MediaController {
	return &MediaController{
		catalog:     catalog,
		cache:       cache,
		coordinator: coordinator,
		selections:  make(map[string]*service.SelectionSet),
	}
}

// selectionKey names a collection view: the full gallery listing or a
// product-filtered one. Selections are scoped to the view they were made in.
func selectionKey(galleryID, productID string) string {
	if productID == "" {
		return "media/" + galleryID
	}
	return "products/" + galleryID + "/" + productID
}

func (c *MediaController) selectionFor(viewKey string) *service.SelectionSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	sel, ok := c.selections[viewKey]
	if !ok {
		sel = service.NewSelectionSet()
		c.selections[viewKey] = sel
	}
	return sel
}

// clearSelections resets every view selection for the gallery, including
// product-filtered views, after a destructive mutation.
func (c *MediaController) clearSelections(galleryID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, sel := range c.selections {
		if key == "media/"+galleryID || strings.HasPrefix(key, "products/"+galleryID+"/") {
			sel.Clear()
		}
	}
}

// List handles GET /admin/media?galleryId=&productId=
// Serves from the query cache unless the entry is stale: the full gallery
// view under ["media", galleryId], a product-filtered view under
// ["products", galleryId, productId]. Either way the view's selection set is
// reconciled against the rows actually returned.
func (c *MediaController) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	galleryID := r.URL.Query().Get("galleryId")
	if galleryID == "" {
		http.Error(w, "galleryId parameter is required", http.StatusBadRequest)
		return
	}
	productID := r.URL.Query().Get("productId")

	key := service.QueryKey{"media", galleryID}
	fetch := func(ctx context.Context) ([]models.MediaItem, error) {
		return c.catalog.ReadMedia(ctx, galleryID)
	}
	if productID != "" {
		key = service.QueryKey{"products", galleryID, productID}
		fetch = func(ctx context.Context) ([]models.MediaItem, error) {
			items, err := c.catalog.ReadMedia(ctx, galleryID)
			if err != nil {
				return nil, err
			}
			filtered := make([]models.MediaItem, 0, len(items))
			for _, item := range items {
				if item.ProductID == productID {
					filtered = append(filtered, item)
				}
			}
			return filtered, nil
		}
	}

	items, err := c.cache.GetOrFetch(r.Context(), key, fetch)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list media: %v", err), http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []models.MediaItem{}
	}

	currentIDs := make([]string, 0, len(items))
	for _, item := range items {
		currentIDs = append(currentIDs, item.ID)
	}
	sel := c.selectionFor(selectionKey(galleryID, productID))
	sel.Reconcile(currentIDs)

	writeJSON(w, http.StatusOK, map[string]any{
		"items":         items,
		"selectedIds":   sel.IDs(),
		"selectionMode": sel.InSelectionMode(),
	})
}

// UpdateSelection handles POST /admin/media/selection
func (c *MediaController) UpdateSelection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.SelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.GalleryID == "" {
		http.Error(w, "galleryId is required", http.StatusBadRequest)
		return
	}

	sel := c.selectionFor(selectionKey(req.GalleryID, req.ProductID))
	switch req.Action {
	case "toggle":
		if req.ID == "" {
			http.Error(w, "id is required for toggle", http.StatusBadRequest)
			return
		}
		sel.Toggle(req.ID)
	case "enter":
		sel.EnterSelectionMode()
	case "clear":
		sel.Clear()
	default:
		http.Error(w, fmt.Sprintf("unknown selection action %q", req.Action), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"selectedIds":   sel.IDs(),
		"selectionMode": sel.InSelectionMode(),
	})
}

// Delete handles DELETE /admin/media
// Issues one batched delete for all requested ids through the mutation
// coordinator. Any refusal — a rejected batch or a delete already in
// flight — means no rows changed, so the response status must not read as
// success.
func (c *MediaController) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.DeleteMediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.GalleryID == "" || len(req.IDs) == 0 {
		http.Error(w, "galleryId and a non-empty ids list are required", http.StatusBadRequest)
		return
	}

	if !c.coordinator.DeleteMany(r.Context(), req.GalleryID, req.IDs) {
		writeJSON(w, http.StatusBadGateway, map[string]any{"deleted": false})
		return
	}

	// The rows are gone; every selection that referenced them is done.
	c.clearSelections(req.GalleryID)
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

// TriggerJob handles POST /admin/media/jobs
func (c *MediaController) TriggerJob(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.JobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.Kind != models.JobOptimize && req.Kind != models.JobMigrate {
		http.Error(w, fmt.Sprintf("unknown job kind %q", req.Kind), http.StatusBadRequest)
		return
	}

	result := c.coordinator.TriggerAsyncJob(r.Context(), req.Kind, req.Payload)

	status := http.StatusOK
	body := map[string]any{
		"kind":       result.Kind,
		"successful": result.Successful,
		"failed":     result.Failed,
	}
	if result.Kind == service.JobResultError {
		if errors.Is(result.Cause, service.ErrMutationInFlight) {
			status = http.StatusConflict
		} else {
			status = http.StatusBadGateway
		}
	}

	writeJSON(w, status, body)
}

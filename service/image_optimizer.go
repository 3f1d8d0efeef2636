package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"galeria-admin/models"
	"galeria-admin/repository"
	"galeria-admin/storage"
)

const (
	// Quality settings
	qualityThumb  = 60
	qualityMedium = 75
	// Size settings (max dimension)
	maxSizeThumb  = 300
	maxSizeMedium = 800
)

// ImageOptimizer is the "optimize" job: it re-encodes stored media into
// bounded-dimension JPEG variants written to a local disk cache. The job is
// fire-and-forget — Run validates, kicks off the work in the background and
// acknowledges immediately with a zero outcome.
type ImageOptimizer struct {
	media    repository.MediaRepositoryInterface
	urls     *storage.PublicURLResolver
	bucket   string
	cacheDir string
}

// Ensure ImageOptimizer implements JobRunner
var _ JobRunner = (*ImageOptimizer)(nil)

// NewImageOptimizer creates the optimize job runner. Optimized variants are
// written under cacheDir.
func NewImageOptimizer(media repository.MediaRepositoryInterface, urls *storage.PublicURLResolver, bucket, cacheDir string) *ImageOptimizer {
	return &ImageOptimizer{media: media, urls: urls, bucket: bucket, cacheDir: cacheDir}
}

// CachePath returns the cache file path for a media id and size tier.
func (o *ImageOptimizer) CachePath(mediaID, size string) string {
	return filepath.Join(o.cacheDir, fmt.Sprintf("media_%s_%s.jpg", mediaID, size))
}

// Run resolves the target media rows and starts optimization in the
// background. The returned outcome is a bare acknowledgement; per-file
// results are logged, not aggregated.
func (o *ImageOptimizer) Run(ctx context.Context, payload models.JobPayload) (models.JobOutcome, error) {
	var items []models.MediaItem
	var err error
	if len(payload.MediaIDs) > 0 {
		items, err = o.media.GetByIDs(ctx, payload.MediaIDs)
	} else if payload.GalleryID != "" {
		items, err = o.media.ListByGallery(ctx, payload.GalleryID)
	} else {
		return models.JobOutcome{}, fmt.Errorf("optimize payload needs galleryId or mediaIds")
	}
	if err != nil {
		return models.JobOutcome{}, fmt.Errorf("failed to resolve media for optimization: %w", err)
	}

	size := payload.Size
	if size == "" {
		size = "medium"
	}

	if err := os.MkdirAll(o.cacheDir, 0755); err != nil {
		return models.JobOutcome{}, fmt.Errorf("failed to create cache directory: %w", err)
	}

	log.Printf("🔄 Optimize job accepted: %d media item(s), size=%s", len(items), size)

	// Once accepted the job runs to completion regardless of the caller;
	// the request context must not cancel it.
	go o.processAll(context.Background(), items, size)

	return models.JobOutcome{}, nil
}

func (o *ImageOptimizer) processAll(ctx context.Context, items []models.MediaItem, size string) {
	for _, item := range items {
		if err := o.processOne(ctx, item, size); err != nil {
			log.Printf("⚠️  Optimization failed for media %s: %v", item.ID, err)
			continue
		}
		log.Printf("✓ Optimized media %s (%s)", item.ID, size)
	}
}

func (o *ImageOptimizer) processOne(ctx context.Context, item models.MediaItem, size string) error {
	url := o.urls.PublicURL(o.bucket, item.FilePath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build fetch request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("media fetch returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read media bytes: %w", err)
	}

	optimized, err := OptimizeImage(data, size)
	if err != nil {
		return err
	}

	cachePath := o.CachePath(item.ID, size)
	if err := os.WriteFile(cachePath, optimized, 0644); err != nil {
		return fmt.Errorf("failed to write optimized image: %w", err)
	}
	return nil
}

// OptimizeImage re-encodes raw image bytes (PNG, JPEG, ...) as a JPEG bounded
// to the size tier's max dimension. Images already within bounds are only
// re-encoded, never upscaled.
func OptimizeImage(imageData []byte, size string) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	var maxDim, quality int
	switch size {
	case "thumb":
		maxDim = maxSizeThumb
		quality = qualityThumb
	case "medium":
		maxDim = maxSizeMedium
		quality = qualityMedium
	default:
		maxDim = maxSizeMedium
		quality = qualityMedium
		log.Printf("⚠️  Unknown size %q, defaulting to medium", size)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDim || bounds.Dy() > maxDim {
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode image (source format %s): %w", format, err)
	}
	return buf.Bytes(), nil
}

package app

import (
	"fmt"
	"os"
	"time"

	"galeria-admin/app/controller"
	"galeria-admin/app/router"
	"galeria-admin/db"
	"galeria-admin/kvstore"
	"galeria-admin/models"
	"galeria-admin/repository"
	"galeria-admin/service"
	"galeria-admin/storage"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Initialize initializes the application
func Initialize() error {
	// Initialize database connection
	if err := db.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Get credentials path from environment variable
	credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	if credentialsPath == "" {
		return fmt.Errorf("GOOGLE_APPLICATION_CREDENTIALS environment variable is not set")
	}

	// Initialize Drive service (migration source)
	driveService, err := service.NewDriveService(credentialsPath)
	if err != nil {
		return err
	}

	// Repositories
	galleryRepo := repository.NewGalleryRepository()
	mediaRepo := repository.NewMediaRepository()

	// Verification gate over the persisted flag store
	flagStore := kvstore.NewFileStore(envOr("VERIFICATION_STORE_PATH", "data/verification.json"))
	gate := service.NewVerificationGate(flagStore)

	// Object storage public URL resolution
	bucket := envOr("STORAGE_BUCKET", "gallery-media")
	urls := storage.NewPublicURLResolver(envOr("PUBLIC_STORAGE_URL", "https://storage.googleapis.com"))

	// Job runners
	optimizer := service.NewImageOptimizer(mediaRepo, urls, bucket, envOr("OPTIMIZE_CACHE_DIR", "cache/images"))
	migrator := service.NewMigrationService(driveService, mediaRepo)

	// Catalog over Postgres plus the registered job runners
	catalog := service.NewPostgresCatalog(mediaRepo, map[models.JobKind]service.JobRunner{
		models.JobOptimize: optimizer,
		models.JobMigrate:  migrator,
	})

	// Read caches and the mutation coordinator that invalidates the media one
	mediaCache := service.NewQueryCache[[]models.MediaItem]()
	galleryCache := service.NewQueryCache[[]models.Gallery]()
	coordinator := service.NewMutationCoordinator(catalog, mediaCache, service.LogNotifier{})

	// Debounced gallery search; the watcher lives for the process lifetime
	search := service.NewGallerySearch(galleryRepo, galleryCache, 300*time.Millisecond)

	// Screenshot capture
	screenshots := service.NewScreenshotService(envOr("ASSET_STORAGE_DIR", "data/assets"))

	// Create controllers
	controllers := &router.Controllers{
		Gallery: controller.NewGalleryController(galleryRepo, gate, search, screenshots, urls, bucket),
		Media:   controller.NewMediaController(catalog, mediaCache, coordinator),
	}

	// Setup routes using standard http router
	router.SetupRoutes(controllers)

	return nil
}

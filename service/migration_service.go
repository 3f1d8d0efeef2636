package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"galeria-admin/models"
	"galeria-admin/repository"
)

// MigrationService is the "migrate" job: it imports image files from an
// external Drive folder into a gallery's media catalog. Files already
// imported (matched by source file id) are counted as successful, which
// makes reruns idempotent. Per-file insert failures are counted, not fatal:
// the job completes and reports both counts.
type MigrationService struct {
	drive DriveServiceInterface
	media repository.MediaRepositoryInterface
}

// Ensure MigrationService implements JobRunner
var _ JobRunner = (*MigrationService)(nil)

// NewMigrationService creates the migrate job runner.
func NewMigrationService(drive DriveServiceInterface, media repository.MediaRepositoryInterface) *MigrationService {
	return &MigrationService{drive: drive, media: media}
}

// Run migrates every image in payload.FolderID into payload.GalleryID's
// catalog. A failure to list the source folder is a transport-level error;
// individual file failures only increment the failed count.
func (s *MigrationService) Run(ctx context.Context, payload models.JobPayload) (models.JobOutcome, error) {
	if payload.GalleryID == "" || payload.FolderID == "" {
		return models.JobOutcome{}, fmt.Errorf("migrate payload needs galleryId and folderId")
	}

	log.Printf("🔄 Starting migration for gallery %s from folder %s", payload.GalleryID, payload.FolderID)

	images, err := s.drive.ListImages(payload.FolderID)
	if err != nil {
		return models.JobOutcome{}, fmt.Errorf("failed to list source folder: %w", err)
	}

	var outcome models.JobOutcome
	for _, img := range images {
		exists, err := s.media.ExistsBySourceFileID(ctx, img.FileID)
		if err != nil {
			log.Printf("⚠️  Existence check failed for source file %s: %v", img.FileID, err)
			outcome.Failed++
			continue
		}
		if exists {
			outcome.Successful++
			continue
		}

		item := &models.MediaItem{
			ID:           uuid.NewString(),
			GalleryID:    payload.GalleryID,
			FilePath:     fmt.Sprintf("%s/%s", payload.GalleryID, img.Name),
			Title:        img.Name,
			MediaType:    "image",
			SourceFileID: img.FileID,
		}
		if err := s.media.Insert(ctx, item); err != nil {
			log.Printf("⚠️  Failed to insert media for source file %s: %v", img.FileID, err)
			outcome.Failed++
			continue
		}
		outcome.Successful++
	}

	log.Printf("🎉 Migration completed: %d succeeded, %d failed, %d total",
		outcome.Successful, outcome.Failed, len(images))
	return outcome, nil
}

package repository

import (
	"context"

	"galeria-admin/models"
)

// GalleryRepositoryInterface defines the contract for gallery catalog reads
type GalleryRepositoryInterface interface {
	GetByID(ctx context.Context, id string) (*models.Gallery, error)
	SearchByName(ctx context.Context, query string) ([]models.Gallery, error)
}

// MediaRepositoryInterface defines the contract for media catalog operations
type MediaRepositoryInterface interface {
	ListByGallery(ctx context.Context, galleryID string) ([]models.MediaItem, error)
	DeleteByIDs(ctx context.Context, galleryID string, ids []string) (int64, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.MediaItem, error)
	ExistsBySourceFileID(ctx context.Context, sourceFileID string) (bool, error)
	Insert(ctx context.Context, item *models.MediaItem) error
}

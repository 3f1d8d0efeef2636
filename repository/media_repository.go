package repository

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"galeria-admin/db"
	"galeria-admin/models"
)

// MediaRepository handles database operations for media items
// Implements MediaRepositoryInterface
type MediaRepository struct{}

// NewMediaRepository creates a new MediaRepository
func NewMediaRepository() *MediaRepository {
	return &MediaRepository{}
}

// Ensure MediaRepository implements MediaRepositoryInterface
var _ MediaRepositoryInterface = (*MediaRepository)(nil)

const mediaSelectColumns = `
	id, gallery_id,
	COALESCE(product_id, '') as product_id,
	file_path,
	COALESCE(title, '') as title,
	COALESCE(description, '') as description,
	media_type, price_cents, is_primary, is_featured,
	COALESCE(source_file_id, '') as source_file_id,
	created_at
`

// placeholders builds "$start, $start+1, ..." for n bound parameters.
func placeholders(start, n int) string {
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = fmt.Sprintf("$%d", start+i)
	}
	return strings.Join(parts, ", ")
}

// ListByGallery retrieves all media items owned by a gallery, primary items
// first
func (r *MediaRepository) ListByGallery(ctx context.Context, galleryID string) ([]models.MediaItem, error) {
	query := `SELECT ` + mediaSelectColumns + `
		FROM media_items
		WHERE gallery_id = $1
		ORDER BY is_primary DESC, created_at DESC`

	rows, err := db.DB.QueryContext(ctx, query, galleryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list media items: %w", err)
	}
	defer rows.Close()

	var items []models.MediaItem
	for rows.Next() {
		var m models.MediaItem
		if err := rows.Scan(
			&m.ID, &m.GalleryID,
			&m.ProductID,
			&m.FilePath,
			&m.Title,
			&m.Description,
			&m.MediaType, &m.PriceCents, &m.IsPrimary, &m.IsFeatured,
			&m.SourceFileID,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan media row: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read media rows: %w", err)
	}

	return items, nil
}

// GetByIDs retrieves media items by id, in no particular order
func (r *MediaRepository) GetByIDs(ctx context.Context, ids []string) ([]models.MediaItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + mediaSelectColumns + `
		FROM media_items
		WHERE id IN (` + placeholders(1, len(ids)) + `)`

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get media items: %w", err)
	}
	defer rows.Close()

	var items []models.MediaItem
	for rows.Next() {
		var m models.MediaItem
		if err := rows.Scan(
			&m.ID, &m.GalleryID,
			&m.ProductID,
			&m.FilePath,
			&m.Title,
			&m.Description,
			&m.MediaType, &m.PriceCents, &m.IsPrimary, &m.IsFeatured,
			&m.SourceFileID,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan media row: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read media rows: %w", err)
	}

	return items, nil
}

// DeleteByIDs removes the given media rows in a single statement. The
// gallery_id predicate keeps a stale id list from touching another gallery's
// rows. Returns the number of rows actually deleted.
func (r *MediaRepository) DeleteByIDs(ctx context.Context, galleryID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := `DELETE FROM media_items
		WHERE gallery_id = $1 AND id IN (` + placeholders(2, len(ids)) + `)`

	args := make([]any, 0, len(ids)+1)
	args = append(args, galleryID)
	for _, id := range ids {
		args = append(args, id)
	}

	result, err := db.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete media items: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		log.Printf("⚠️  Warning: could not get rows affected for media delete: %v", err)
		return 0, nil
	}

	log.Printf("💾 Deleted %d/%d media rows for gallery %s", deleted, len(ids), galleryID)
	return deleted, nil
}

// ExistsBySourceFileID checks if a media item was already imported from the
// given external source file
func (r *MediaRepository) ExistsBySourceFileID(ctx context.Context, sourceFileID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM media_items WHERE source_file_id = $1)`
	if err := db.DB.QueryRowContext(ctx, query, sourceFileID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check source file existence: %w", err)
	}
	return exists, nil
}

// Insert inserts a new media item. CreatedAt is set here when zero.
func (r *MediaRepository) Insert(ctx context.Context, item *models.MediaItem) error {
	query := `
		INSERT INTO media_items (
			id, gallery_id, product_id, file_path, title, description,
			media_type, price_cents, is_primary, is_featured, source_file_id, created_at
		) VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, NULLIF($11, ''), $12)
		ON CONFLICT (source_file_id) DO NOTHING
	`

	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}

	_, err := db.DB.ExecContext(ctx, query,
		item.ID, item.GalleryID, item.ProductID, item.FilePath,
		item.Title, item.Description,
		item.MediaType, item.PriceCents, item.IsPrimary, item.IsFeatured,
		item.SourceFileID, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert media item: %w", err)
	}

	return nil
}

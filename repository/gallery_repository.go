package repository

import (
	"context"
	"database/sql"
	"fmt"

	"galeria-admin/db"
	"galeria-admin/models"
)

// GalleryRepository handles database operations for galleries
// Implements GalleryRepositoryInterface
type GalleryRepository struct{}

// NewGalleryRepository creates a new GalleryRepository
func NewGalleryRepository() *GalleryRepository {
	return &GalleryRepository{}
}

// Ensure GalleryRepository implements GalleryRepositoryInterface
var _ GalleryRepositoryInterface = (*GalleryRepository)(nil)

const gallerySelectColumns = `
	id, business_id, name,
	COALESCE(password, '') as password,
	password_required, age_verification_enabled,
	COALESCE(storefront_url, '') as storefront_url,
	COALESCE(theme_color, '') as theme_color,
	COALESCE(welcome_text, '') as welcome_text,
	created_at
`

func scanGallery(row interface{ Scan(dest ...any) error }) (*models.Gallery, error) {
	var g models.Gallery
	err := row.Scan(
		&g.ID, &g.BusinessID, &g.Name,
		&g.Password,
		&g.PasswordRequired, &g.AgeVerificationEnabled,
		&g.StorefrontURL,
		&g.ThemeColor,
		&g.WelcomeText,
		&g.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// GetByID retrieves a gallery by its id
func (r *GalleryRepository) GetByID(ctx context.Context, id string) (*models.Gallery, error) {
	query := `SELECT ` + gallerySelectColumns + ` FROM galleries WHERE id = $1`

	g, err := scanGallery(db.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("gallery not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get gallery: %w", err)
	}
	return g, nil
}

// SearchByName retrieves galleries whose name matches the query
// (case-insensitive substring). An empty query returns all galleries.
func (r *GalleryRepository) SearchByName(ctx context.Context, query string) ([]models.Gallery, error) {
	sqlQuery := `SELECT ` + gallerySelectColumns + `
		FROM galleries
		WHERE $1 = '' OR name ILIKE '%' || $1 || '%'
		ORDER BY name`

	rows, err := db.DB.QueryContext(ctx, sqlQuery, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search galleries: %w", err)
	}
	defer rows.Close()

	var galleries []models.Gallery
	for rows.Next() {
		g, err := scanGallery(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan gallery row: %w", err)
		}
		galleries = append(galleries, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read gallery rows: %w", err)
	}

	return galleries, nil
}

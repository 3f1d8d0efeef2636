package models

import "time"

// MediaItem represents a single image/video record in a gallery's catalog.
// Each item is owned by exactly one gallery; deletion removes the catalog
// row but not necessarily the underlying stored object.
type MediaItem struct {
	ID           string    `json:"id"`
	GalleryID    string    `json:"galleryId"`
	ProductID    string    `json:"productId,omitempty"`
	FilePath     string    `json:"filePath"`
	Title        string    `json:"title,omitempty"`
	Description  string    `json:"description,omitempty"`
	MediaType    string    `json:"mediaType"`
	PriceCents   int64     `json:"priceCents"`
	IsPrimary    bool      `json:"isPrimary"`
	IsFeatured   bool      `json:"isFeatured"`
	SourceFileID string    `json:"sourceFileId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

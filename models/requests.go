package models

// VerifyRequest is the body of POST /admin/galleries/{id}/verify
type VerifyRequest struct {
	Password string `json:"password"`
}

// SelectionRequest is the body of POST /admin/media/selection. ProductID
// scopes the selection to a product-filtered view; empty means the full
// gallery listing.
type SelectionRequest struct {
	GalleryID string `json:"galleryId"`
	ProductID string `json:"productId,omitempty"`
	Action    string `json:"action"` // "toggle", "clear" or "enter"
	ID        string `json:"id,omitempty"`
}

// DeleteMediaRequest is the body of DELETE /admin/media
type DeleteMediaRequest struct {
	GalleryID string   `json:"galleryId"`
	IDs       []string `json:"ids"`
}

// JobRequest is the body of POST /admin/media/jobs
type JobRequest struct {
	Kind    JobKind    `json:"kind"`
	Payload JobPayload `json:"payload"`
}

package models

// JobKind names an asynchronous catalog job.
type JobKind string

const (
	// JobOptimize re-encodes stored media into bounded-dimension variants.
	JobOptimize JobKind = "optimize"
	// JobMigrate imports image files from an external source folder into
	// the catalog.
	JobMigrate JobKind = "migrate"
)

// JobPayload carries the parameters for a job invocation. Which fields are
// consulted depends on the job kind.
type JobPayload struct {
	GalleryID string   `json:"galleryId"`
	FolderID  string   `json:"folderId,omitempty"`
	MediaIDs  []string `json:"mediaIds,omitempty"`
	Size      string   `json:"size,omitempty"`
}

// JobOutcome is the structured completion result of a job. An optimize run
// acknowledges with a zero outcome; a migrate run reports per-file counts.
// Failed > 0 is a partial success, not a failure.
type JobOutcome struct {
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

package models

// RemoteImage is an image file discovered in an external source folder
// (Google Drive) during a migration run.
type RemoteImage struct {
	FileID string `json:"fileId"`
	Name   string `json:"name"`
	URL    string `json:"url"`
}

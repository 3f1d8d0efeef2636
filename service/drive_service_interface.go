package service

import "galeria-admin/models"

// DriveServiceInterface defines the contract for the external Drive source
// consulted by the migrate job
type DriveServiceInterface interface {
	ListImages(folderID string) ([]models.RemoteImage, error)
}

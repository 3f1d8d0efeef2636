package service

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"galeria-admin/models"
)

// DriveService lists image files in Google Drive folders. It is the source
// side of the migrate job.
type DriveService struct {
	client *drive.Service
}

// Ensure DriveService implements DriveServiceInterface
var _ DriveServiceInterface = (*DriveService)(nil)

// NewDriveService creates a DriveService authenticated with the Service
// Account JSON file at credentialsPath.
func NewDriveService(credentialsPath string) (*DriveService, error) {
	ctx := context.Background()

	client, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{client: client}, nil
}

// ListImages lists all image files in a Drive folder, following pagination.
func (ds *DriveService) ListImages(folderID string) ([]models.RemoteImage, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false", folderID)

	var allFiles []*drive.File
	pageToken := ""
	for {
		call := ds.client.Files.List().
			Q(query).
			Fields("nextPageToken, files(id, name, mimeType)")

		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		r, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list files: %w", err)
		}

		allFiles = append(allFiles, r.Files...)
		pageToken = r.NextPageToken
		if pageToken == "" {
			break
		}
	}

	imageMimeTypes := map[string]bool{
		"image/png":  true,
		"image/jpeg": true,
		"image/jpg":  true,
		"image/webp": true,
	}

	var images []models.RemoteImage
	for _, file := range allFiles {
		if !imageMimeTypes[strings.ToLower(file.MimeType)] {
			continue
		}
		images = append(images, models.RemoteImage{
			FileID: file.Id,
			Name:   file.Name,
			URL:    fmt.Sprintf("https://drive.google.com/uc?id=%s", file.Id),
		})
	}

	return images, nil
}

package service

import (
	"context"
	"fmt"

	"galeria-admin/models"
	"galeria-admin/repository"
)

// Catalog is the remote catalog service boundary: reads, batched deletes and
// asynchronous job invocations. Read/write rejections surface as
// *CatalogError; a job invocation that never completes surfaces as
// *TransportError.
type Catalog interface {
	ReadMedia(ctx context.Context, galleryID string) ([]models.MediaItem, error)
	DeleteMedia(ctx context.Context, galleryID string, ids []string) error
	InvokeJob(ctx context.Context, kind models.JobKind, payload models.JobPayload) (models.JobOutcome, error)
}

// JobRunner executes one asynchronous catalog job kind.
type JobRunner interface {
	Run(ctx context.Context, payload models.JobPayload) (models.JobOutcome, error)
}

// PostgresCatalog implements Catalog over the Postgres repositories, with
// job kinds dispatched to their registered runners.
type PostgresCatalog struct {
	media repository.MediaRepositoryInterface
	jobs  map[models.JobKind]JobRunner
}

// Ensure PostgresCatalog implements Catalog
var _ Catalog = (*PostgresCatalog)(nil)

// NewPostgresCatalog creates a catalog over the media repository. Job kinds
// without a registered runner fail with a transport error when invoked.
func NewPostgresCatalog(media repository.MediaRepositoryInterface, jobs map[models.JobKind]JobRunner) *PostgresCatalog {
	return &PostgresCatalog{media: media, jobs: jobs}
}

// ReadMedia returns all media items owned by a gallery.
func (c *PostgresCatalog) ReadMedia(ctx context.Context, galleryID string) ([]models.MediaItem, error) {
	items, err := c.media.ListByGallery(ctx, galleryID)
	if err != nil {
		return nil, &CatalogError{Op: "read", Err: err}
	}
	return items, nil
}

// DeleteMedia removes the given media rows in one batched statement.
func (c *PostgresCatalog) DeleteMedia(ctx context.Context, galleryID string, ids []string) error {
	if _, err := c.media.DeleteByIDs(ctx, galleryID, ids); err != nil {
		return &CatalogError{Op: "delete", Err: err}
	}
	return nil
}

// InvokeJob runs the registered runner for kind and returns its structured
// outcome.
func (c *PostgresCatalog) InvokeJob(ctx context.Context, kind models.JobKind, payload models.JobPayload) (models.JobOutcome, error) {
	runner, ok := c.jobs[kind]
	if !ok {
		return models.JobOutcome{}, &TransportError{
			Job: string(kind),
			Err: fmt.Errorf("no runner registered for job kind %q", kind),
		}
	}

	outcome, err := runner.Run(ctx, payload)
	if err != nil {
		return models.JobOutcome{}, &TransportError{Job: string(kind), Err: err}
	}
	return outcome, nil
}

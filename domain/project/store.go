package project

import (
	"context"

	"github.com/foliolabs/folio/domain/search"
	"github.com/foliolabs/folio/domain/storage"
)

// Store persists projects and their relations.
type Store interface {
	// Save creates or updates a project, reconciling feature, developer,
	// and attachment relations.
	Save(ctx context.Context, p Project) (Project, error)

	// Get retrieves a single project matching the options.
	Get(ctx context.Context, options ...storage.Option) (Project, error)

	// Find retrieves projects matching the options.
	Find(ctx context.Context, options ...storage.Option) ([]Project, error)

	// FindIndexed retrieves all projects whose embedding is non-null.
	FindIndexed(ctx context.Context) ([]Project, error)

	// UpdateSearchFields persists the searchable text and embedding for a
	// project in a single follow-up update.
	UpdateSearchFields(ctx context.Context, id int64, searchableText string, embedding search.Vector) error

	// Delete removes a project and its relations.
	Delete(ctx context.Context, p Project) error
}

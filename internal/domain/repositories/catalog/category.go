package catalog

import (
	"context"

	"socarchive/internal/domain/models/catalog"
)

// CategoryRepository defines data access operations for categories.
// Categories are never physically deleted once created; curation marks
// them inactive instead so historical works keep resolving.
type CategoryRepository interface {
	// Create persists a new category.
	Create(ctx context.Context, c *catalog.Category) error

	// GetByID retrieves a category by ID.
	GetByID(ctx context.Context, id string) (*catalog.Category, error)

	// List returns categories, optionally including inactive ones.
	List(ctx context.Context, includeInactive bool) ([]catalog.Category, error)

	// MarkInactive flags a category as inactive.
	MarkInactive(ctx context.Context, id string) error
}

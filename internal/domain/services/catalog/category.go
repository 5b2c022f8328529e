package catalog

import (
	"context"

	"socarchive/internal/domain/models/catalog"
)

// CreateCategoryRequest carries the fields of a new category.
type CreateCategoryRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ParentID    *string `json:"parent_id"`
}

// CategoryService manages the category tree.
type CategoryService interface {
	Create(ctx context.Context, req CreateCategoryRequest) (*catalog.Category, error)

	List(ctx context.Context, includeInactive bool) ([]catalog.Category, error)

	// Lookup resolves a category by id, serving repeated lookups from an
	// in-process cache. Used by the filter resolver and import
	// validation.
	Lookup(ctx context.Context, id string) (*catalog.Category, error)

	// Deactivate marks a category inactive. Categories are never deleted.
	Deactivate(ctx context.Context, id string) error
}

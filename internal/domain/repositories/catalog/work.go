package catalog

import (
	"context"

	"socarchive/internal/domain/models/catalog"
)

// StructuralFilter is the store-level predicate for listing works.
// Nil slices mean "no constraint"; a non-nil slice constrains the field to
// the given set of values.
type StructuralFilter struct {
	Disciplines []catalog.Discipline
	Years       []int
	Schools     []string
	Regions     []catalog.Region
	CategoryIDs []string
	Statuses    []catalog.WorkStatus
}

// WorkRepository defines data access operations for works.
type WorkRepository interface {
	// Create persists a new work atomically. The work either fully exists
	// afterwards or not at all.
	Create(ctx context.Context, w *catalog.Work) error

	// GetByID retrieves a work by ID.
	GetByID(ctx context.Context, id string) (*catalog.Work, error)

	// Filter returns all works matching the structural predicate, in no
	// guaranteed order. Ordering and pagination belong to the executor.
	Filter(ctx context.Context, f StructuralFilter) ([]catalog.Work, error)

	// UpdateIfStatus applies mutate to the work under a per-record
	// exclusive update, but only if its current status equals expected.
	// Returns domain.ConflictError when the status no longer matches and
	// domain.NotFoundError when the work does not exist. The mutation is
	// never applied against a stale read.
	UpdateIfStatus(ctx context.Context, id string, expected catalog.WorkStatus, mutate func(w *catalog.Work) error) (*catalog.Work, error)

	// ListAll returns every work in the catalog. Admin export only.
	ListAll(ctx context.Context) ([]catalog.Work, error)

	// Stats aggregates catalog counts.
	Stats(ctx context.Context) (*catalog.CatalogStats, error)
}

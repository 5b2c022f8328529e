package catalog

import (
	"context"

	"socarchive/internal/domain/models/catalog"
)

// ReportService is the admin reporting side of the catalog.
type ReportService interface {
	// Stats aggregates catalog counts for the dashboard.
	Stats(ctx context.Context) (*catalog.CatalogStats, error)

	// Export returns every record for an admin JSON dump. Redacted works
	// appear with their personal fields already cleared.
	Export(ctx context.Context) ([]catalog.Work, error)
}

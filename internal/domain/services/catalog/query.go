package catalog

import (
	"context"
	"io"

	"socarchive/internal/domain/models/catalog"
)

// RawFilters is the unparsed filter request as it arrives from the
// transport layer, keyed by filter name. Multi-value filters may be given
// either as repeated values or as comma-separated lists.
type RawFilters map[string][]string

// FilterResolver validates and normalizes a raw filter request into an
// immutable query plan.
type FilterResolver interface {
	// Resolve fails with a ValidationError naming the offending field for
	// out-of-range values, unknown enum members, or unrecognized keys.
	Resolve(ctx context.Context, raw RawFilters, requester Requester) (catalog.QueryPlan, error)
}

// SearchExecutor runs a query plan and produces a deterministic page of
// work summaries. Read-only; zero matches yield an empty page, never an
// error.
type SearchExecutor interface {
	Execute(ctx context.Context, plan catalog.QueryPlan, requester Requester) (catalog.ResultPage, error)
}

// WorkQueryService is the single-item read side of the catalog.
type WorkQueryService interface {
	// Get returns a work by id. Non-admin callers only see approved
	// works; anything else is a NotFoundError, indistinguishable from an
	// unknown id.
	Get(ctx context.Context, id string, requester Requester) (*catalog.Work, error)

	// OpenPDF opens the stored PDF of a work for streaming. Fails with
	// NotFoundError when the work is invisible to the requester or has no
	// artifact.
	OpenPDF(ctx context.Context, id string, requester Requester) (io.ReadCloser, error)
}

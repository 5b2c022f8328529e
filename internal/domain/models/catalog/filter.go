package catalog

// SortKey determines result ordering.
type SortKey string

const (
	// SortRelevance orders by text-match score descending, ties broken by
	// work id ascending. Only meaningful when a text query is present.
	SortRelevance SortKey = "relevance"

	// SortNewest orders by year descending, ties broken by work id
	// ascending. The default when no text query is given.
	SortNewest SortKey = "newest"
)

// QueryPlan is the normalized, validated form of a filter request,
// produced by the resolver and consumed by the executor. The slice fields
// are constraint sets: nil means "no constraint", never "match nothing".
// The resolver guarantees a plan is never built with a non-nil empty set.
//
// Treat a plan as immutable once built.
type QueryPlan struct {
	// TextQuery is the trimmed, lower-cased free-text query.
	// Empty string means no text filter.
	TextQuery string

	Disciplines []Discipline
	Years       []int
	Schools     []string
	Regions     []Region
	CategoryIDs []string

	// Statuses is an explicit status constraint, usable by admins only.
	// nil means the executor applies the caller's default visibility
	// (approved-only for non-admins, everything for admins).
	Statuses []WorkStatus

	Page     int
	PageSize int
	Sort     SortKey
}

// HasTextQuery reports whether the plan carries a free-text constraint.
func (p QueryPlan) HasTextQuery() bool {
	return p.TextQuery != ""
}

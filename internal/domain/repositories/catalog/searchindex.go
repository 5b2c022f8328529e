package catalog

import "context"

// IndexDoc is the non-personal text of a work handed to the search
// capability. Personal fields are deliberately not part of the indexed
// text so redaction never has to scrub the index beyond deleting the
// entry.
type IndexDoc struct {
	Title    string
	Abstract string
	School   string
}

// Match is one text-search hit.
type Match struct {
	WorkID string
	Score  float64
}

// SearchIndex is the contract the engine requires from whatever
// text-search capability is plugged in. The engine does not care how
// matching or scoring works, only that Index is an idempotent replace and
// Search returns a relevance score per matching work.
type SearchIndex interface {
	// Index stores or replaces the searchable text for a work.
	Index(ctx context.Context, workID string, doc IndexDoc) error

	// Search returns the set of works matching the query with scores.
	// An empty result is not an error.
	Search(ctx context.Context, query string) ([]Match, error)

	// Delete removes a work's entry. Deleting an absent entry is a no-op.
	Delete(ctx context.Context, workID string) error
}

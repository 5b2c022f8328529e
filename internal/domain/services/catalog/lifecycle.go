package catalog

import (
	"context"
	"io"

	"socarchive/internal/domain/models/catalog"
)

// ImportRequest carries the fields of a new submission.
type ImportRequest struct {
	Title      string `json:"title"`
	Abstract   string `json:"abstract"`
	Discipline string `json:"discipline"`
	Year       int    `json:"year"`
	School     string `json:"school"`
	Region     string `json:"region"`
	CategoryID string `json:"category_id"`
	Author     string `json:"author"`
	Supervisor string `json:"supervisor"`
}

// LifecycleService drives work status transitions and their side effects.
// All transitions are serialized per work id through the repository's
// compare-and-set update; a stale status yields a ConflictError.
type LifecycleService interface {
	// Import atomically creates a work and advances it to pending_review.
	// Missing required fields or an unknown/inactive category fail with a
	// ValidationError and leave no record behind.
	Import(ctx context.Context, req ImportRequest) (*catalog.Work, error)

	// Approve publishes a work (from pending_review or rejected), sets
	// approved_at on first approval, and (re)indexes its text fields.
	Approve(ctx context.Context, id string, requester Requester) (*catalog.Work, error)

	// Reject declines a pending work. Reversible via Resubmit or Approve.
	Reject(ctx context.Context, id string, requester Requester) (*catalog.Work, error)

	// Resubmit returns a rejected work to pending_review.
	Resubmit(ctx context.Context, id string, requester Requester) (*catalog.Work, error)

	// UploadPDF stores a new artifact for the work and deletes the
	// previous one. Fails with ConflictError for redacted works.
	UploadPDF(ctx context.Context, id string, pdf io.Reader, filename string, requester Requester) (*catalog.Work, error)

	// Redact runs the GDPR removal: clears personal fields, deletes the
	// artifact, commits the terminal redacted status and returns an audit
	// receipt. Irreversible; a second call fails with ConflictError.
	Redact(ctx context.Context, id string, requester Requester) (*catalog.RedactionReceipt, error)
}

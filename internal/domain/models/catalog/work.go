package catalog

import (
	"fmt"
	"time"
)

// WorkStatus is the lifecycle state of a catalogued work.
type WorkStatus string

const (
	// StatusImported is the initial state of a freshly created record.
	// A record only exists in this state transiently: a successful import
	// advances it to pending_review before it is persisted.
	StatusImported WorkStatus = "imported"

	// StatusPendingReview means the work awaits an admin decision.
	StatusPendingReview WorkStatus = "pending_review"

	// StatusApproved means the work is publicly visible and indexed.
	StatusApproved WorkStatus = "approved"

	// StatusRejected means an admin declined the work. Reversible.
	StatusRejected WorkStatus = "rejected"

	// StatusRedacted is the terminal GDPR state. Personal fields are
	// cleared and the artifact is gone. No transition leaves this state.
	StatusRedacted WorkStatus = "redacted"
)

// validTransitions is the closed transition table for the work lifecycle.
// Key is the current status, value the set of reachable statuses.
// Rejecting an already-approved work is deliberately not reachable.
var validTransitions = map[WorkStatus]map[WorkStatus]bool{
	StatusImported:      {StatusPendingReview: true, StatusRedacted: true},
	StatusPendingReview: {StatusApproved: true, StatusRejected: true, StatusRedacted: true},
	StatusApproved:      {StatusRedacted: true},
	StatusRejected:      {StatusPendingReview: true, StatusApproved: true, StatusRedacted: true},
	StatusRedacted:      {},
}

// CanTransition reports whether the lifecycle permits moving from one
// status to another.
func CanTransition(from, to WorkStatus) bool {
	targets, ok := validTransitions[from]
	if !ok {
		return false
	}
	return targets[to]
}

// ParseStatus converts a string into a WorkStatus.
// Returns an error for unknown values.
func ParseStatus(s string) (WorkStatus, error) {
	st := WorkStatus(s)
	if !isValidStatus(st) {
		return "", fmt.Errorf("unknown status: %q (valid: imported, pending_review, approved, rejected, redacted)", s)
	}
	return st, nil
}

func isValidStatus(s WorkStatus) bool {
	switch s {
	case StatusImported, StatusPendingReview, StatusApproved, StatusRejected, StatusRedacted:
		return true
	default:
		return false
	}
}

// Work is a catalogued student research submission.
type Work struct {
	ID         string     `json:"id" db:"id"`
	Title      string     `json:"title" db:"title"`
	Abstract   string     `json:"abstract" db:"abstract"`
	Discipline Discipline `json:"discipline" db:"discipline"`
	Year       int        `json:"year" db:"year"`
	School     string     `json:"school" db:"school"`
	Region     Region     `json:"region" db:"region"`
	CategoryID string     `json:"category_id" db:"category_id"`

	// Author and Supervisor are the personal fields subject to GDPR
	// redaction. Empty once Status is redacted.
	Author     string `json:"author,omitempty" db:"author"`
	Supervisor string `json:"supervisor,omitempty" db:"supervisor"`

	Status WorkStatus `json:"status" db:"status"`

	// ArtifactKey is the opaque file-storage key of the stored PDF,
	// nil when no PDF was uploaded or the work is redacted.
	ArtifactKey *string `json:"artifact_key,omitempty" db:"artifact_key"`

	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
	ApprovedAt *time.Time `json:"approved_at,omitempty" db:"approved_at"`
	RedactedAt *time.Time `json:"redacted_at,omitempty" db:"redacted_at"`
}

// PersonalFieldNames lists the fields cleared by redaction, in the order
// they appear on the record. Used for audit receipts.
func PersonalFieldNames() []string {
	return []string{"author", "supervisor"}
}

// Summarize projects the work to the list-view shape. When admin is false
// the personal fields are omitted regardless of the stored values; this is
// a response-shaping rule, independent of the redaction transition.
func (w *Work) Summarize(admin bool) WorkSummary {
	s := WorkSummary{
		ID:         w.ID,
		Title:      w.Title,
		Abstract:   w.Abstract,
		Discipline: w.Discipline,
		Year:       w.Year,
		School:     w.School,
		Region:     w.Region,
		CategoryID: w.CategoryID,
		HasPDF:     w.ArtifactKey != nil,
	}
	if admin {
		s.Author = w.Author
		s.Supervisor = w.Supervisor
		s.Status = w.Status
	}
	return s
}

// WorkSummary is the list-view projection of a work. Author, Supervisor
// and Status are only populated for admin callers.
type WorkSummary struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Abstract   string     `json:"abstract"`
	Discipline Discipline `json:"discipline"`
	Year       int        `json:"year"`
	School     string     `json:"school"`
	Region     Region     `json:"region"`
	CategoryID string     `json:"category_id"`
	HasPDF     bool       `json:"has_pdf"`
	Author     string     `json:"author,omitempty"`
	Supervisor string     `json:"supervisor,omitempty"`
	Status     WorkStatus `json:"status,omitempty"`
}

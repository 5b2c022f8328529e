package catalog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"socarchive/internal/domain"
	models "socarchive/internal/domain/models/catalog"
	repositories "socarchive/internal/domain/repositories/catalog"
)

// redactor erases personal data from a work. The steps are ordered so
// that a crash at any point leaves the record recoverable without ever
// resurrecting personal data:
//
//  1. clear personal fields and detach the artifact reference (CAS),
//  2. delete the stored artifact, best effort,
//  3. commit the redacted status with its timestamp (CAS),
//  4. drop the search index entry.
//
// A crash between steps leaves a work whose personal data is already
// gone; re-running the redaction completes the remaining steps.
type redactor struct {
	works     repositories.WorkRepository
	index     repositories.SearchIndex
	artifacts interface {
		Delete(key string) error
	}
	logger *slog.Logger
}

// Redact irreversibly clears personal data from a work and returns a
// receipt describing what was erased. The receipt itself carries no
// personal data. Redacting an already redacted work is a conflict.
func (r *redactor) Redact(ctx context.Context, id string) (*models.RedactionReceipt, error) {
	work, err := r.works.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if work.Status == models.StatusRedacted {
		return nil, &domain.ConflictError{
			Message:      "work is already redacted",
			ResourceType: "work",
			ResourceID:   id,
		}
	}

	receipt := &models.RedactionReceipt{
		WorkID:        id,
		FieldsCleared: models.PersonalFieldNames(),
	}

	// Step 1: clear the personal fields while the status is unchanged.
	// The artifact key is captured from the locked row, not the earlier
	// read, so a concurrent upload cannot orphan a file.
	var artifactKey *string
	work, err = r.works.UpdateIfStatus(ctx, id, work.Status, func(w *models.Work) error {
		artifactKey = w.ArtifactKey
		w.Author = ""
		w.Supervisor = ""
		w.ArtifactKey = nil
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Step 2: remove the stored artifact. Failure does not block the
	// redaction; the key is already detached and the leftover file is
	// reported for manual cleanup.
	if artifactKey != nil {
		switch err := r.artifacts.Delete(*artifactKey); {
		case err == nil, errors.Is(err, domain.ErrNotFound):
			receipt.ArtifactDeleted = true
		default:
			receipt.ArtifactError = err.Error()
			artifactDeleteFailures.Inc()
			r.logger.Error("redaction: artifact delete failed", "work_id", id, "error", err)
		}
	}

	// Step 3: commit the terminal status.
	now := time.Now().UTC()
	if _, err := r.works.UpdateIfStatus(ctx, id, work.Status, func(w *models.Work) error {
		w.Status = models.StatusRedacted
		w.RedactedAt = &now
		return nil
	}); err != nil {
		return nil, err
	}
	receipt.ClearedAt = now

	// Step 4: the index row holds no personal data, so dropping it is
	// not allowed to fail the redaction either.
	if err := r.index.Delete(ctx, id); err != nil {
		r.logger.Error("redaction: index delete failed", "work_id", id, "error", err)
	} else {
		receipt.IndexCleared = true
	}

	redactionsTotal.Inc()
	transitionsTotal.WithLabelValues(string(models.StatusRedacted)).Inc()
	r.logger.Info("work redacted", "work_id", id, "artifact_deleted", receipt.ArtifactDeleted)

	return receipt, nil
}

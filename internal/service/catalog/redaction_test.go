package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"socarchive/internal/domain"
	models "socarchive/internal/domain/models/catalog"
	services "socarchive/internal/domain/services/catalog"
)

func importWithArtifact(t *testing.T, svc services.LifecycleService) *models.Work {
	t.Helper()
	work, err := svc.Import(context.Background(), validImportRequest())
	require.NoError(t, err)
	work, err = svc.UploadPDF(context.Background(), work.ID, strings.NewReader("%PDF"), "prace.pdf", adminRequester)
	require.NoError(t, err)
	_, err = svc.Approve(context.Background(), work.ID, adminRequester)
	require.NoError(t, err)
	return work
}

func TestRedactClearsEverything(t *testing.T) {
	repo := newFakeWorkRepo()
	index := newFakeIndex()
	artifacts := newFakeArtifacts()
	svc := newTestLifecycle(repo, index, artifacts)

	work := importWithArtifact(t, svc)
	artifactKey := *work.ArtifactKey

	receipt, err := svc.Redact(context.Background(), work.ID, adminRequester)
	require.NoError(t, err)

	require.Equal(t, work.ID, receipt.WorkID)
	require.Equal(t, []string{"author", "supervisor"}, receipt.FieldsCleared)
	require.True(t, receipt.ArtifactDeleted)
	require.Empty(t, receipt.ArtifactError)
	require.True(t, receipt.IndexCleared)
	require.False(t, receipt.ClearedAt.IsZero())

	stored, err := repo.GetByID(context.Background(), work.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusRedacted, stored.Status)
	require.Empty(t, stored.Author)
	require.Empty(t, stored.Supervisor)
	require.Nil(t, stored.ArtifactKey)
	require.NotNil(t, stored.RedactedAt)

	// Non-personal catalog fields survive.
	require.Equal(t, work.Title, stored.Title)
	require.Equal(t, work.Year, stored.Year)
	require.Equal(t, work.School, stored.School)

	// The file is gone and only one delete was issued for it.
	require.False(t, artifacts.files[artifactKey])
	deletes := 0
	for _, k := range artifacts.deleteCalls {
		if k == artifactKey {
			deletes++
		}
	}
	require.Equal(t, 1, deletes)

	// And the index entry is gone.
	_, indexed := index.docs[work.ID]
	require.False(t, indexed)
}

func TestRedactTwiceConflicts(t *testing.T) {
	repo := newFakeWorkRepo()
	svc := newTestLifecycle(repo, newFakeIndex(), newFakeArtifacts())

	work := importWithArtifact(t, svc)

	_, err := svc.Redact(context.Background(), work.ID, adminRequester)
	require.NoError(t, err)

	_, err = svc.Redact(context.Background(), work.ID, adminRequester)
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestRedactWithoutArtifact(t *testing.T) {
	repo := newFakeWorkRepo()
	artifacts := newFakeArtifacts()
	svc := newTestLifecycle(repo, newFakeIndex(), artifacts)

	work, err := svc.Import(context.Background(), validImportRequest())
	require.NoError(t, err)

	receipt, err := svc.Redact(context.Background(), work.ID, adminRequester)
	require.NoError(t, err)
	require.False(t, receipt.ArtifactDeleted)
	require.Empty(t, artifacts.deleteCalls)
}

func TestRedactSurvivesArtifactDeleteFailure(t *testing.T) {
	repo := newFakeWorkRepo()
	artifacts := newFakeArtifacts()
	svc := newTestLifecycle(repo, newFakeIndex(), artifacts)

	work := importWithArtifact(t, svc)
	artifacts.deleteErr = errors.New("disk detached")

	receipt, err := svc.Redact(context.Background(), work.ID, adminRequester)
	require.NoError(t, err)
	require.False(t, receipt.ArtifactDeleted)
	require.Contains(t, receipt.ArtifactError, "disk detached")

	// The redaction still committed.
	stored, err := repo.GetByID(context.Background(), work.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusRedacted, stored.Status)
	require.Empty(t, stored.Author)
}

func TestRedactReceiptCarriesNoPersonalData(t *testing.T) {
	repo := newFakeWorkRepo()
	svc := newTestLifecycle(repo, newFakeIndex(), newFakeArtifacts())

	work := importWithArtifact(t, svc)
	receipt, err := svc.Redact(context.Background(), work.ID, adminRequester)
	require.NoError(t, err)

	for _, field := range receipt.FieldsCleared {
		require.NotContains(t, []string{"Jana Nováková", "Petr Svoboda"}, field)
	}
	require.NotContains(t, receipt.ArtifactError, "Jana")
}

func TestRedactMissingWork(t *testing.T) {
	svc := newTestLifecycle(newFakeWorkRepo(), newFakeIndex(), newFakeArtifacts())

	_, err := svc.Redact(context.Background(), "no-such-id", adminRequester)
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

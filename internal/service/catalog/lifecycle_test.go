package catalog

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"socarchive/internal/domain"
	models "socarchive/internal/domain/models/catalog"
	services "socarchive/internal/domain/services/catalog"
)

func validImportRequest() services.ImportRequest {
	return services.ImportRequest{
		Title:      "Spektrální analýza proměnných hvězd",
		Abstract:   "Fotometrická měření jasnosti vybraných proměnných hvězd.",
		Discipline: "Physics",
		Year:       2023,
		School:     "Gymnázium Jana Keplera",
		Region:     "Praha",
		CategoryID: "cat-1",
		Author:     "Jana Nováková",
		Supervisor: "Petr Svoboda",
	}
}

func newTestLifecycle(repo *fakeWorkRepo, index *fakeIndex, artifacts *fakeArtifacts) services.LifecycleService {
	categories := newFakeCategoryService(
		&models.Category{ID: "cat-1", Name: "Fyzika", Active: true},
		&models.Category{ID: "cat-old", Name: "Zrušená", Active: false},
	)
	return NewLifecycleService(repo, index, artifacts, categories, slog.Default())
}

func TestImportCreatesPendingWork(t *testing.T) {
	repo := newFakeWorkRepo()
	svc := newTestLifecycle(repo, newFakeIndex(), newFakeArtifacts())

	work, err := svc.Import(context.Background(), validImportRequest())
	require.NoError(t, err)

	require.NotEmpty(t, work.ID)
	require.Equal(t, models.StatusPendingReview, work.Status)
	require.Nil(t, work.ApprovedAt)
	require.Nil(t, work.ArtifactKey)

	stored, err := repo.GetByID(context.Background(), work.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusPendingReview, stored.Status)
}

func TestImportValidation(t *testing.T) {
	repo := newFakeWorkRepo()
	svc := newTestLifecycle(repo, newFakeIndex(), newFakeArtifacts())

	mutate := map[string]func(*services.ImportRequest){
		"missing title":      func(r *services.ImportRequest) { r.Title = "" },
		"missing author":     func(r *services.ImportRequest) { r.Author = "" },
		"missing school":     func(r *services.ImportRequest) { r.School = "" },
		"unknown discipline": func(r *services.ImportRequest) { r.Discipline = "Alchemy" },
		"unknown region":     func(r *services.ImportRequest) { r.Region = "Atlantis" },
		"implausible year":   func(r *services.ImportRequest) { r.Year = 1492 },
		"unknown category":   func(r *services.ImportRequest) { r.CategoryID = "cat-missing" },
		"inactive category":  func(r *services.ImportRequest) { r.CategoryID = "cat-old" },
		"oversized title":    func(r *services.ImportRequest) { r.Title = strings.Repeat("x", 300) },
	}

	for name, fn := range mutate {
		t.Run(name, func(t *testing.T) {
			req := validImportRequest()
			fn(&req)
			_, err := svc.Import(context.Background(), req)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}

	// No partial record may survive a failed import.
	all, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestApproveSetsApprovedAtOnceAndIndexes(t *testing.T) {
	repo := newFakeWorkRepo()
	index := newFakeIndex()
	svc := newTestLifecycle(repo, index, newFakeArtifacts())

	work, err := svc.Import(context.Background(), validImportRequest())
	require.NoError(t, err)

	approved, err := svc.Approve(context.Background(), work.ID, adminRequester)
	require.NoError(t, err)
	require.Equal(t, models.StatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedAt)

	doc, ok := index.docs[work.ID]
	require.True(t, ok)
	require.Equal(t, work.Title, doc.Title)

	firstApproval := *approved.ApprovedAt

	// Reject, resubmit is not needed: rejected works can be approved
	// directly, and the original approval timestamp must survive.
	_, err = svc.Reject(context.Background(), work.ID, adminRequester)
	require.Error(t, err) // approved works cannot be rejected

	receiptless, err := repo.UpdateIfStatus(context.Background(), work.ID, models.StatusApproved, func(w *models.Work) error {
		w.Status = models.StatusRejected
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, models.StatusRejected, receiptless.Status)

	reapproved, err := svc.Approve(context.Background(), work.ID, adminRequester)
	require.NoError(t, err)
	require.Equal(t, firstApproval, *reapproved.ApprovedAt)
}

func TestTransitionTableIsEnforced(t *testing.T) {
	repo := newFakeWorkRepo()
	svc := newTestLifecycle(repo, newFakeIndex(), newFakeArtifacts())

	work, err := svc.Import(context.Background(), validImportRequest())
	require.NoError(t, err)

	// pending_review -> pending_review (resubmit) is not in the table.
	_, err = svc.Resubmit(context.Background(), work.ID, adminRequester)
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)

	_, err = svc.Reject(context.Background(), work.ID, adminRequester)
	require.NoError(t, err)

	// rejected -> rejected is not in the table either.
	_, err = svc.Reject(context.Background(), work.ID, adminRequester)
	require.ErrorAs(t, err, &conflict)

	// rejected -> pending_review is.
	resubmitted, err := svc.Resubmit(context.Background(), work.ID, adminRequester)
	require.NoError(t, err)
	require.Equal(t, models.StatusPendingReview, resubmitted.Status)
}

func TestLifecycleRequiresAdmin(t *testing.T) {
	repo := newFakeWorkRepo()
	svc := newTestLifecycle(repo, newFakeIndex(), newFakeArtifacts())

	work, err := svc.Import(context.Background(), validImportRequest())
	require.NoError(t, err)

	var forbidden *domain.ForbiddenError
	_, err = svc.Approve(context.Background(), work.ID, services.Anonymous)
	require.ErrorAs(t, err, &forbidden)
	_, err = svc.Reject(context.Background(), work.ID, services.Anonymous)
	require.ErrorAs(t, err, &forbidden)
	_, err = svc.Redact(context.Background(), work.ID, services.Anonymous)
	require.ErrorAs(t, err, &forbidden)
	_, err = svc.UploadPDF(context.Background(), work.ID, strings.NewReader("%PDF"), "a.pdf", services.Anonymous)
	require.ErrorAs(t, err, &forbidden)
}

func TestApproveIndexFailureReportsRecordChanged(t *testing.T) {
	repo := newFakeWorkRepo()
	index := newFakeIndex()
	index.indexErr = context.DeadlineExceeded
	svc := newTestLifecycle(repo, index, newFakeArtifacts())

	work, err := svc.Import(context.Background(), validImportRequest())
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), work.ID, adminRequester)
	var dep *domain.DependencyError
	require.ErrorAs(t, err, &dep)
	require.True(t, dep.RecordChanged)

	// The approval itself must have stuck.
	stored, err := repo.GetByID(context.Background(), work.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusApproved, stored.Status)
}

func TestUploadPDFReplacesPreviousArtifact(t *testing.T) {
	repo := newFakeWorkRepo()
	artifacts := newFakeArtifacts()
	svc := newTestLifecycle(repo, newFakeIndex(), artifacts)

	work, err := svc.Import(context.Background(), validImportRequest())
	require.NoError(t, err)

	first, err := svc.UploadPDF(context.Background(), work.ID, strings.NewReader("%PDF one"), "prace.pdf", adminRequester)
	require.NoError(t, err)
	require.NotNil(t, first.ArtifactKey)
	firstKey := *first.ArtifactKey

	second, err := svc.UploadPDF(context.Background(), work.ID, strings.NewReader("%PDF two"), "prace-v2.pdf", adminRequester)
	require.NoError(t, err)
	require.NotNil(t, second.ArtifactKey)
	require.NotEqual(t, firstKey, *second.ArtifactKey)

	// The replaced file is gone, the new one remains.
	require.Contains(t, artifacts.deleteCalls, firstKey)
	require.False(t, artifacts.files[firstKey])
	require.True(t, artifacts.files[*second.ArtifactKey])
}

func TestUploadPDFRejectedForRedactedWork(t *testing.T) {
	repo := newFakeWorkRepo()
	svc := newTestLifecycle(repo, newFakeIndex(), newFakeArtifacts())

	work, err := svc.Import(context.Background(), validImportRequest())
	require.NoError(t, err)
	_, err = svc.Redact(context.Background(), work.ID, adminRequester)
	require.NoError(t, err)

	_, err = svc.UploadPDF(context.Background(), work.ID, strings.NewReader("%PDF"), "late.pdf", adminRequester)
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestUpdatedAtAdvancesOnTransition(t *testing.T) {
	repo := newFakeWorkRepo()
	svc := newTestLifecycle(repo, newFakeIndex(), newFakeArtifacts())

	work, err := svc.Import(context.Background(), validImportRequest())
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	approved, err := svc.Approve(context.Background(), work.ID, adminRequester)
	require.NoError(t, err)
	require.True(t, approved.UpdatedAt.After(work.UpdatedAt) || approved.UpdatedAt.Equal(work.UpdatedAt))
}

package catalog

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	models "socarchive/internal/domain/models/catalog"
	repositories "socarchive/internal/domain/repositories/catalog"
	services "socarchive/internal/domain/services/catalog"
)

var adminRequester = services.Requester{Subject: "adm-1", Admin: true}

func approvedWork(id string, year int, discipline models.Discipline) *models.Work {
	return &models.Work{
		ID:         id,
		Title:      "Title " + id,
		Discipline: discipline,
		Year:       year,
		School:     "Gymnázium Brno",
		Region:     models.RegionJihomoravsky,
		CategoryID: "cat-1",
		Author:     "Jana Nováková",
		Supervisor: "Petr Svoboda",
		Status:     models.StatusApproved,
	}
}

func TestExecuteNewestOrderingIsDeterministic(t *testing.T) {
	repo := newFakeWorkRepo(
		approvedWork("b", 2020, models.DisciplinePhysics),
		approvedWork("a", 2020, models.DisciplinePhysics),
		approvedWork("c", 2023, models.DisciplineBiology),
	)
	executor := NewSearchExecutor(repo, newFakeIndex(), slog.Default())

	page, err := executor.Execute(context.Background(), models.QueryPlan{
		Page: 0, PageSize: 10, Sort: models.SortNewest,
	}, services.Anonymous)
	require.NoError(t, err)

	ids := make([]string, len(page.Items))
	for i, item := range page.Items {
		ids[i] = item.ID
	}
	// Year descending, then id ascending within the same year.
	require.Equal(t, []string{"c", "a", "b"}, ids)
}

func TestExecuteRelevanceOrdering(t *testing.T) {
	repo := newFakeWorkRepo(
		approvedWork("w1", 2020, models.DisciplinePhysics),
		approvedWork("w2", 2021, models.DisciplinePhysics),
		approvedWork("w3", 2022, models.DisciplinePhysics),
	)
	index := newFakeIndex()
	index.matches = []repositories.Match{
		{WorkID: "w1", Score: 0.2},
		{WorkID: "w2", Score: 0.9},
		{WorkID: "w3", Score: 0.9},
	}
	executor := NewSearchExecutor(repo, index, slog.Default())

	page, err := executor.Execute(context.Background(), models.QueryPlan{
		TextQuery: "fusion", Page: 0, PageSize: 10, Sort: models.SortRelevance,
	}, services.Anonymous)
	require.NoError(t, err)

	ids := make([]string, len(page.Items))
	for i, item := range page.Items {
		ids[i] = item.ID
	}
	// Score descending, equal scores break by id ascending.
	require.Equal(t, []string{"w2", "w3", "w1"}, ids)
}

func TestExecuteIntersectsTextAndStructuralFilters(t *testing.T) {
	physics := approvedWork("w1", 2020, models.DisciplinePhysics)
	biology := approvedWork("w2", 2020, models.DisciplineBiology)
	repo := newFakeWorkRepo(physics, biology)

	index := newFakeIndex()
	// Both works match the text, but the structural filter keeps only one.
	index.matches = []repositories.Match{
		{WorkID: "w1", Score: 0.5},
		{WorkID: "w2", Score: 0.8},
	}
	executor := NewSearchExecutor(repo, index, slog.Default())

	page, err := executor.Execute(context.Background(), models.QueryPlan{
		TextQuery:   "cells",
		Disciplines: []models.Discipline{models.DisciplineBiology},
		Page:        0, PageSize: 10, Sort: models.SortRelevance,
	}, services.Anonymous)
	require.NoError(t, err)

	require.Equal(t, 1, page.Total)
	require.Len(t, page.Items, 1)
	require.Equal(t, "w2", page.Items[0].ID)
}

func TestExecuteNonAdminSeesApprovedOnly(t *testing.T) {
	pending := approvedWork("w1", 2020, models.DisciplinePhysics)
	pending.Status = models.StatusPendingReview
	rejected := approvedWork("w2", 2020, models.DisciplinePhysics)
	rejected.Status = models.StatusRejected
	repo := newFakeWorkRepo(pending, rejected, approvedWork("w3", 2020, models.DisciplinePhysics))
	executor := NewSearchExecutor(repo, newFakeIndex(), slog.Default())

	page, err := executor.Execute(context.Background(), models.QueryPlan{
		Page: 0, PageSize: 10, Sort: models.SortNewest,
	}, services.Anonymous)
	require.NoError(t, err)

	require.Equal(t, 1, page.Total)
	require.Equal(t, "w3", page.Items[0].ID)

	adminPage, err := executor.Execute(context.Background(), models.QueryPlan{
		Page: 0, PageSize: 10, Sort: models.SortNewest,
	}, adminRequester)
	require.NoError(t, err)
	require.Equal(t, 3, adminPage.Total)
}

func TestExecuteNonAdminSummariesOmitPersonalFields(t *testing.T) {
	repo := newFakeWorkRepo(approvedWork("w1", 2020, models.DisciplinePhysics))
	executor := NewSearchExecutor(repo, newFakeIndex(), slog.Default())

	page, err := executor.Execute(context.Background(), models.QueryPlan{
		Page: 0, PageSize: 10, Sort: models.SortNewest,
	}, services.Anonymous)
	require.NoError(t, err)
	require.Empty(t, page.Items[0].Author)
	require.Empty(t, page.Items[0].Supervisor)
	require.Empty(t, page.Items[0].Status)

	adminPage, err := executor.Execute(context.Background(), models.QueryPlan{
		Page: 0, PageSize: 10, Sort: models.SortNewest,
	}, adminRequester)
	require.NoError(t, err)
	require.Equal(t, "Jana Nováková", adminPage.Items[0].Author)
	require.Equal(t, models.StatusApproved, adminPage.Items[0].Status)
}

func TestExecutePagination(t *testing.T) {
	works := make([]*models.Work, 0, 5)
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		works = append(works, approvedWork(id, 2020, models.DisciplinePhysics))
	}
	repo := newFakeWorkRepo(works...)
	executor := NewSearchExecutor(repo, newFakeIndex(), slog.Default())

	t.Run("total counts all matches, not the page", func(t *testing.T) {
		page, err := executor.Execute(context.Background(), models.QueryPlan{
			Page: 0, PageSize: 2, Sort: models.SortNewest,
		}, services.Anonymous)
		require.NoError(t, err)
		require.Equal(t, 5, page.Total)
		require.Len(t, page.Items, 2)
		require.True(t, page.HasMore)
	})

	t.Run("last partial page", func(t *testing.T) {
		page, err := executor.Execute(context.Background(), models.QueryPlan{
			Page: 2, PageSize: 2, Sort: models.SortNewest,
		}, services.Anonymous)
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		require.False(t, page.HasMore)
	})

	t.Run("page past the end is empty, not an error", func(t *testing.T) {
		page, err := executor.Execute(context.Background(), models.QueryPlan{
			Page: 9, PageSize: 2, Sort: models.SortNewest,
		}, services.Anonymous)
		require.NoError(t, err)
		require.Equal(t, 5, page.Total)
		require.Empty(t, page.Items)
		require.NotNil(t, page.Items)
	})
}

func TestExecuteExplicitStatusFilter(t *testing.T) {
	pending := approvedWork("w1", 2020, models.DisciplinePhysics)
	pending.Status = models.StatusPendingReview
	repo := newFakeWorkRepo(pending, approvedWork("w2", 2020, models.DisciplinePhysics))
	executor := NewSearchExecutor(repo, newFakeIndex(), slog.Default())

	page, err := executor.Execute(context.Background(), models.QueryPlan{
		Statuses: []models.WorkStatus{models.StatusPendingReview},
		Page:     0, PageSize: 10, Sort: models.SortNewest,
	}, adminRequester)
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	require.Equal(t, "w1", page.Items[0].ID)
}

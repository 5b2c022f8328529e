package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"socarchive/internal/domain"
	models "socarchive/internal/domain/models/catalog"
	repositories "socarchive/internal/domain/repositories/catalog"
	services "socarchive/internal/domain/services/catalog"
)

// searchExecutor implements the SearchExecutor interface
type searchExecutor struct {
	works  repositories.WorkRepository
	index  repositories.SearchIndex
	logger *slog.Logger
}

// NewSearchExecutor creates a new search executor backed by the work
// repository for structural filters and the search index for text queries.
func NewSearchExecutor(works repositories.WorkRepository, index repositories.SearchIndex, logger *slog.Logger) services.SearchExecutor {
	return &searchExecutor{
		works:  works,
		index:  index,
		logger: logger,
	}
}

// ranked pairs a work with its text relevance score. Score is zero when
// the plan has no text query.
type ranked struct {
	work  *models.Work
	score float64
}

// Execute runs a resolved query plan and returns one page of results.
// Matching happens over the full candidate set first; the total count
// reflects all matches, not just the returned page.
func (e *searchExecutor) Execute(ctx context.Context, plan models.QueryPlan, requester services.Requester) (models.ResultPage, error) {
	start := time.Now()

	filter := repositories.StructuralFilter{
		Disciplines: plan.Disciplines,
		Years:       plan.Years,
		Schools:     plan.Schools,
		Regions:     plan.Regions,
		CategoryIDs: plan.CategoryIDs,
		Statuses:    visibleStatuses(plan, requester),
	}

	works, err := e.works.Filter(ctx, filter)
	if err != nil {
		return models.ResultPage{}, fmt.Errorf("filtering works: %w", err)
	}

	results := make([]ranked, 0, len(works))
	if plan.HasTextQuery() {
		matches, err := e.index.Search(ctx, plan.TextQuery)
		if err != nil {
			return models.ResultPage{}, &domain.DependencyError{
				Message:    "search index unavailable",
				Dependency: "search-index",
				Err:        err,
			}
		}
		scores := make(map[string]float64, len(matches))
		for _, m := range matches {
			scores[m.WorkID] = m.Score
		}
		for i, w := range works {
			score, ok := scores[w.ID]
			if !ok {
				continue
			}
			results = append(results, ranked{work: &works[i], score: score})
		}
	} else {
		for i := range works {
			results = append(results, ranked{work: &works[i]})
		}
	}

	sortResults(results, plan.Sort)

	total := len(results)
	page := paginate(results, plan.Page, plan.PageSize)

	items := make([]models.WorkSummary, 0, len(page))
	for _, r := range page {
		items = append(items, r.work.Summarize(requester.Admin))
	}

	searchesTotal.WithLabelValues(string(plan.Sort)).Inc()
	searchDuration.Observe(time.Since(start).Seconds())

	return models.NewResultPage(items, total, plan.Page, plan.PageSize), nil
}

// visibleStatuses narrows the status constraint by requester role. The
// resolver already rejects explicit status filters from non-admins, so a
// non-nil plan constraint implies an admin caller.
func visibleStatuses(plan models.QueryPlan, requester services.Requester) []models.WorkStatus {
	if plan.Statuses != nil {
		return plan.Statuses
	}
	if requester.Admin {
		return nil
	}
	return []models.WorkStatus{models.StatusApproved}
}

// sortResults orders results deterministically: the primary key depends
// on the sort mode, ties always break by ascending work ID.
func sortResults(results []ranked, key models.SortKey) {
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		switch key {
		case models.SortRelevance:
			if a.score != b.score {
				return a.score > b.score
			}
		default:
			if a.work.Year != b.work.Year {
				return a.work.Year > b.work.Year
			}
		}
		return a.work.ID < b.work.ID
	})
}

func paginate(results []ranked, page, pageSize int) []ranked {
	lo := page * pageSize
	if lo >= len(results) {
		return nil
	}
	hi := lo + pageSize
	if hi > len(results) {
		hi = len(results)
	}
	return results[lo:hi]
}

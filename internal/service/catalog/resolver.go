package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"socarchive/internal/config"
	"socarchive/internal/domain"
	models "socarchive/internal/domain/models/catalog"
	services "socarchive/internal/domain/services/catalog"
)

// recognizedFilterKeys enumerates every filter key the resolver accepts.
// Anything else in the raw request is rejected, never silently ignored.
var recognizedFilterKeys = map[string]bool{
	"q":          true,
	"discipline": true,
	"year":       true,
	"school":     true,
	"region":     true,
	"category":   true,
	"status":     true,
	"sort":       true,
	"page":       true,
	"page_size":  true,
}

// filterResolver implements the FilterResolver interface
type filterResolver struct {
	categories services.CategoryService
	logger     *slog.Logger
}

// NewFilterResolver creates a new filter resolver. Category filter values
// are checked for existence through the (cached) category service.
func NewFilterResolver(categories services.CategoryService, logger *slog.Logger) services.FilterResolver {
	return &filterResolver{
		categories: categories,
		logger:     logger,
	}
}

// Resolve validates and normalizes raw filters into a query plan.
func (r *filterResolver) Resolve(ctx context.Context, raw services.RawFilters, requester services.Requester) (models.QueryPlan, error) {
	var plan models.QueryPlan

	for key := range raw {
		if !recognizedFilterKeys[key] {
			return plan, &domain.ValidationError{Message: fmt.Sprintf("unrecognized filter key: %q", key)}
		}
	}

	// Free text: trimmed and lower-cased. Empty after trimming means "no
	// text filter", not "match nothing".
	plan.TextQuery = strings.ToLower(strings.TrimSpace(strings.Join(raw["q"], " ")))

	var err error
	if plan.Disciplines, err = parseDisciplines(values(raw, "discipline")); err != nil {
		return plan, err
	}
	if plan.Years, err = parseYears(values(raw, "year")); err != nil {
		return plan, err
	}
	if vals := values(raw, "school"); vals != nil {
		plan.Schools = vals
	}
	if plan.Regions, err = parseRegions(values(raw, "region")); err != nil {
		return plan, err
	}
	if plan.CategoryIDs, err = r.parseCategories(ctx, values(raw, "category")); err != nil {
		return plan, err
	}
	if plan.Statuses, err = parseStatuses(values(raw, "status"), requester); err != nil {
		return plan, err
	}
	if plan.Page, plan.PageSize, err = parsePagination(raw); err != nil {
		return plan, err
	}
	if plan.Sort, err = parseSort(raw, plan.HasTextQuery()); err != nil {
		return plan, err
	}

	return plan, nil
}

// values flattens a multi-value filter into a set: repeated keys and
// comma-separated lists both work, duplicates collapse, order is
// normalized. Returns nil (no constraint) when the key is absent or all
// values are blank - an explicit invariant: absence must never normalize
// to an empty set, which would mean "match nothing".
func values(raw services.RawFilters, key string) []string {
	vals, ok := raw[key]
	if !ok {
		return nil
	}

	seen := make(map[string]bool)
	var out []string
	for _, v := range vals {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" || seen[part] {
				continue
			}
			seen[part] = true
			out = append(out, part)
		}
	}
	sort.Strings(out)

	return out
}

func parseDisciplines(vals []string) ([]models.Discipline, error) {
	if vals == nil {
		return nil, nil
	}
	out := make([]models.Discipline, 0, len(vals))
	for _, v := range vals {
		d, err := models.ParseDiscipline(v)
		if err != nil {
			return nil, &domain.ValidationError{Message: fmt.Sprintf("discipline: %v", err)}
		}
		out = append(out, d)
	}
	return out, nil
}

func parseRegions(vals []string) ([]models.Region, error) {
	if vals == nil {
		return nil, nil
	}
	out := make([]models.Region, 0, len(vals))
	for _, v := range vals {
		reg, err := models.ParseRegion(v)
		if err != nil {
			return nil, &domain.ValidationError{Message: fmt.Sprintf("region: %v", err)}
		}
		out = append(out, reg)
	}
	return out, nil
}

// parseYears accepts single years and inclusive ranges ("2020-2023").
func parseYears(vals []string) ([]int, error) {
	if vals == nil {
		return nil, nil
	}

	seen := make(map[int]bool)
	var out []int
	add := func(year int) error {
		if year < config.MinYear || year > config.MaxYear {
			return &domain.ValidationError{Message: fmt.Sprintf("year: %d out of range [%d, %d]", year, config.MinYear, config.MaxYear)}
		}
		if !seen[year] {
			seen[year] = true
			out = append(out, year)
		}
		return nil
	}

	for _, v := range vals {
		if from, to, ok := strings.Cut(v, "-"); ok {
			lo, err1 := strconv.Atoi(from)
			hi, err2 := strconv.Atoi(to)
			if err1 != nil || err2 != nil || lo > hi {
				return nil, &domain.ValidationError{Message: fmt.Sprintf("year: invalid range %q", v)}
			}
			for y := lo; y <= hi; y++ {
				if err := add(y); err != nil {
					return nil, err
				}
			}
			continue
		}

		year, err := strconv.Atoi(v)
		if err != nil {
			return nil, &domain.ValidationError{Message: fmt.Sprintf("year: invalid value %q", v)}
		}
		if err := add(year); err != nil {
			return nil, err
		}
	}
	sort.Ints(out)

	return out, nil
}

func (r *filterResolver) parseCategories(ctx context.Context, vals []string) ([]string, error) {
	if vals == nil {
		return nil, nil
	}
	for _, id := range vals {
		if _, err := r.categories.Lookup(ctx, id); err != nil {
			return nil, &domain.ValidationError{Message: fmt.Sprintf("category: unknown category %q", id)}
		}
	}
	return vals, nil
}

// parseStatuses handles the admin-only explicit status filter.
func parseStatuses(vals []string, requester services.Requester) ([]models.WorkStatus, error) {
	if vals == nil {
		return nil, nil
	}
	if !requester.Admin {
		return nil, &domain.ValidationError{Message: "status: filter requires admin access"}
	}
	out := make([]models.WorkStatus, 0, len(vals))
	for _, v := range vals {
		st, err := models.ParseStatus(v)
		if err != nil {
			return nil, &domain.ValidationError{Message: fmt.Sprintf("status: %v", err)}
		}
		out = append(out, st)
	}
	return out, nil
}

func parsePagination(raw services.RawFilters) (page, pageSize int, err error) {
	page = 0
	pageSize = config.DefaultPageSize

	if vals := raw["page"]; len(vals) > 0 {
		page, err = strconv.Atoi(vals[len(vals)-1])
		if err != nil || page < 0 {
			return 0, 0, &domain.ValidationError{Message: fmt.Sprintf("page: invalid value %q", vals[len(vals)-1])}
		}
	}

	if vals := raw["page_size"]; len(vals) > 0 {
		pageSize, err = strconv.Atoi(vals[len(vals)-1])
		if err != nil || pageSize < 1 {
			return 0, 0, &domain.ValidationError{Message: fmt.Sprintf("page_size: invalid value %q", vals[len(vals)-1])}
		}
		if pageSize > config.MaxPageSize {
			return 0, 0, &domain.ValidationError{Message: fmt.Sprintf("page_size: %d exceeds maximum %d", pageSize, config.MaxPageSize)}
		}
	}

	return page, pageSize, nil
}

func parseSort(raw services.RawFilters, hasTextQuery bool) (models.SortKey, error) {
	vals := raw["sort"]
	if len(vals) == 0 {
		if hasTextQuery {
			return models.SortRelevance, nil
		}
		return models.SortNewest, nil
	}

	switch key := models.SortKey(vals[len(vals)-1]); key {
	case models.SortNewest:
		return key, nil
	case models.SortRelevance:
		if !hasTextQuery {
			return "", &domain.ValidationError{Message: "sort: relevance ordering requires a text query"}
		}
		return key, nil
	default:
		return "", &domain.ValidationError{Message: fmt.Sprintf("sort: unknown sort key %q", key)}
	}
}

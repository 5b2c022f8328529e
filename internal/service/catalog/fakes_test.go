package catalog

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"socarchive/internal/domain"
	models "socarchive/internal/domain/models/catalog"
	repositories "socarchive/internal/domain/repositories/catalog"
	services "socarchive/internal/domain/services/catalog"
)

// fakeWorkRepo is an in-memory WorkRepository for service tests.
type fakeWorkRepo struct {
	mu    sync.Mutex
	works map[string]*models.Work
}

func newFakeWorkRepo(works ...*models.Work) *fakeWorkRepo {
	repo := &fakeWorkRepo{works: make(map[string]*models.Work)}
	for _, w := range works {
		cp := *w
		repo.works[w.ID] = &cp
	}
	return repo
}

func (r *fakeWorkRepo) Create(_ context.Context, w *models.Work) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.works[w.ID]; ok {
		return &domain.ConflictError{Message: "duplicate work", ResourceType: "work", ResourceID: w.ID}
	}
	cp := *w
	r.works[w.ID] = &cp
	return nil
}

func (r *fakeWorkRepo) GetByID(_ context.Context, id string) (*models.Work, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.works[id]
	if !ok {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("work %s not found", id)}
	}
	cp := *w
	return &cp, nil
}

func (r *fakeWorkRepo) Filter(_ context.Context, f repositories.StructuralFilter) ([]models.Work, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Work
	for _, w := range r.works {
		if matchesFilter(w, f) {
			out = append(out, *w)
		}
	}
	return out, nil
}

func matchesFilter(w *models.Work, f repositories.StructuralFilter) bool {
	if f.Disciplines != nil && !contains(f.Disciplines, w.Discipline) {
		return false
	}
	if f.Years != nil && !contains(f.Years, w.Year) {
		return false
	}
	if f.Schools != nil && !contains(f.Schools, w.School) {
		return false
	}
	if f.Regions != nil && !contains(f.Regions, w.Region) {
		return false
	}
	if f.CategoryIDs != nil && !contains(f.CategoryIDs, w.CategoryID) {
		return false
	}
	if f.Statuses != nil && !contains(f.Statuses, w.Status) {
		return false
	}
	return true
}

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func (r *fakeWorkRepo) UpdateIfStatus(_ context.Context, id string, expected models.WorkStatus, mutate func(w *models.Work) error) (*models.Work, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.works[id]
	if !ok {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("work %s not found", id)}
	}
	if w.Status != expected {
		return nil, &domain.ConflictError{
			Message:      fmt.Sprintf("work status changed: expected %s, found %s", expected, w.Status),
			ResourceType: "work",
			ResourceID:   id,
		}
	}
	cp := *w
	if err := mutate(&cp); err != nil {
		return nil, err
	}
	r.works[id] = &cp
	result := cp
	return &result, nil
}

func (r *fakeWorkRepo) ListAll(_ context.Context) ([]models.Work, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Work, 0, len(r.works))
	for _, w := range r.works {
		out = append(out, *w)
	}
	return out, nil
}

func (r *fakeWorkRepo) Stats(_ context.Context) (*models.CatalogStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &models.CatalogStats{
		ByYear:       make(map[int]int),
		ByDiscipline: make(map[models.Discipline]int),
	}
	for _, w := range r.works {
		stats.TotalWorks++
		if w.Status == models.StatusApproved {
			stats.ApprovedWorks++
		}
		stats.ByYear[w.Year]++
		stats.ByDiscipline[w.Discipline]++
	}
	return stats, nil
}

// fakeIndex records calls and serves canned matches.
type fakeIndex struct {
	mu        sync.Mutex
	docs      map[string]repositories.IndexDoc
	matches   []repositories.Match
	indexErr  error
	deleteErr error
	deleted   []string
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{docs: make(map[string]repositories.IndexDoc)}
}

func (i *fakeIndex) Index(_ context.Context, workID string, doc repositories.IndexDoc) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.indexErr != nil {
		return i.indexErr
	}
	i.docs[workID] = doc
	return nil
}

func (i *fakeIndex) Search(_ context.Context, _ string) ([]repositories.Match, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.matches, nil
}

func (i *fakeIndex) Delete(_ context.Context, workID string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.deleteErr != nil {
		return i.deleteErr
	}
	delete(i.docs, workID)
	i.deleted = append(i.deleted, workID)
	return nil
}

// fakeArtifacts is an in-memory ArtifactStore.
type fakeArtifacts struct {
	mu          sync.Mutex
	files       map[string]bool
	nextKey     int
	deleteErr   error
	deleteCalls []string
}

func newFakeArtifacts(keys ...string) *fakeArtifacts {
	store := &fakeArtifacts{files: make(map[string]bool)}
	for _, k := range keys {
		store.files[k] = true
	}
	return store
}

func (a *fakeArtifacts) Store(_ io.Reader, _ string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nextKey++
	key := fmt.Sprintf("artifact-%d.pdf", a.nextKey)
	a.files[key] = true
	return key, nil
}

func (a *fakeArtifacts) Open(key string) (io.ReadCloser, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.files[key] {
		return nil, &domain.NotFoundError{Message: "artifact not found: " + key}
	}
	return io.NopCloser(strings.NewReader("%PDF-1.4")), nil
}

func (a *fakeArtifacts) Delete(key string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.deleteCalls = append(a.deleteCalls, key)
	if a.deleteErr != nil {
		return a.deleteErr
	}
	if !a.files[key] {
		return &domain.NotFoundError{Message: "artifact not found: " + key}
	}
	delete(a.files, key)
	return nil
}

// fakeCategoryService resolves categories from a fixed map.
type fakeCategoryService struct {
	categories map[string]*models.Category
}

func newFakeCategoryService(categories ...*models.Category) *fakeCategoryService {
	svc := &fakeCategoryService{categories: make(map[string]*models.Category)}
	for _, c := range categories {
		svc.categories[c.ID] = c
	}
	return svc
}

func (s *fakeCategoryService) Create(_ context.Context, req services.CreateCategoryRequest) (*models.Category, error) {
	c := &models.Category{ID: "cat-" + req.Name, Name: req.Name, Active: true}
	s.categories[c.ID] = c
	return c, nil
}

func (s *fakeCategoryService) List(_ context.Context, includeInactive bool) ([]models.Category, error) {
	var out []models.Category
	for _, c := range s.categories {
		if c.Active || includeInactive {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *fakeCategoryService) Lookup(_ context.Context, id string) (*models.Category, error) {
	c, ok := s.categories[id]
	if !ok {
		return nil, &domain.NotFoundError{Message: "category not found: " + id}
	}
	return c, nil
}

func (s *fakeCategoryService) Deactivate(_ context.Context, id string) error {
	c, ok := s.categories[id]
	if !ok {
		return &domain.NotFoundError{Message: "category not found: " + id}
	}
	c.Active = false
	return nil
}

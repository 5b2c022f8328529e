package catalog

import (
	"context"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"socarchive/internal/config"
	"socarchive/internal/domain"
	models "socarchive/internal/domain/models/catalog"
	repositories "socarchive/internal/domain/repositories/catalog"
	services "socarchive/internal/domain/services/catalog"
)

// categoryService implements the CategoryService interface
type categoryService struct {
	categories repositories.CategoryRepository
	cache      *expirable.LRU[string, *models.Category]
	logger     *slog.Logger
}

// NewCategoryService creates a new category service. Lookups are cached
// with a TTL so the filter resolver does not hit the database for every
// category filter value.
func NewCategoryService(categories repositories.CategoryRepository, cacheSize int, cacheTTL time.Duration, logger *slog.Logger) services.CategoryService {
	return &categoryService{
		categories: categories,
		cache:      expirable.NewLRU[string, *models.Category](cacheSize, nil, cacheTTL),
		logger:     logger,
	}
}

func (s *categoryService) Create(ctx context.Context, req services.CreateCategoryRequest) (*models.Category, error) {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, config.MaxCategoryNameLength)),
	)
	if err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	if req.ParentID != nil {
		if _, err := s.Lookup(ctx, *req.ParentID); err != nil {
			return nil, &domain.ValidationError{Message: "parent category does not exist"}
		}
	}

	category := &models.Category{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		ParentID:    req.ParentID,
		Active:      true,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("category created", "category_id", category.ID, "name", category.Name)
	return category, nil
}

func (s *categoryService) List(ctx context.Context, includeInactive bool) ([]models.Category, error) {
	return s.categories.List(ctx, includeInactive)
}

func (s *categoryService) Lookup(ctx context.Context, id string) (*models.Category, error) {
	if category, ok := s.cache.Get(id); ok {
		return category, nil
	}

	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Add(id, category)

	return category, nil
}

func (s *categoryService) Deactivate(ctx context.Context, id string) error {
	if err := s.categories.MarkInactive(ctx, id); err != nil {
		return err
	}
	s.cache.Remove(id)
	s.logger.Info("category deactivated", "category_id", id)
	return nil
}

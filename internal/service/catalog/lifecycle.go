package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"socarchive/internal/config"
	"socarchive/internal/domain"
	models "socarchive/internal/domain/models/catalog"
	repositories "socarchive/internal/domain/repositories/catalog"
	services "socarchive/internal/domain/services/catalog"
)

// lifecycleService implements the LifecycleService interface
type lifecycleService struct {
	works      repositories.WorkRepository
	index      repositories.SearchIndex
	artifacts  services.ArtifactStore
	categories services.CategoryService
	redactor   *redactor
	logger     *slog.Logger
}

// NewLifecycleService creates a new lifecycle service.
func NewLifecycleService(
	works repositories.WorkRepository,
	index repositories.SearchIndex,
	artifacts services.ArtifactStore,
	categories services.CategoryService,
	logger *slog.Logger,
) services.LifecycleService {
	return &lifecycleService{
		works:      works,
		index:      index,
		artifacts:  artifacts,
		categories: categories,
		redactor: &redactor{
			works:     works,
			index:     index,
			artifacts: artifacts,
			logger:    logger,
		},
		logger: logger,
	}
}

func validateImportRequest(req services.ImportRequest) error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, config.MaxTitleLength)),
		validation.Field(&req.Abstract, validation.Length(0, config.MaxAbstractLength)),
		validation.Field(&req.Discipline, validation.Required),
		validation.Field(&req.Year, validation.Required, validation.Min(config.MinYear), validation.Max(config.MaxYear)),
		validation.Field(&req.School, validation.Required, validation.Length(1, config.MaxSchoolNameLength)),
		validation.Field(&req.Region, validation.Required),
		validation.Field(&req.CategoryID, validation.Required),
		validation.Field(&req.Author, validation.Required, validation.Length(1, config.MaxPersonNameLength)),
		validation.Field(&req.Supervisor, validation.Length(0, config.MaxPersonNameLength)),
	)
}

// Import creates a new work already in pending_review. The initial
// imported status exists only inside this call; a failed validation or
// insert leaves no record at all.
func (s *lifecycleService) Import(ctx context.Context, req services.ImportRequest) (*models.Work, error) {
	if err := validateImportRequest(req); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	discipline, err := models.ParseDiscipline(req.Discipline)
	if err != nil {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("discipline: %v", err)}
	}
	region, err := models.ParseRegion(req.Region)
	if err != nil {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("region: %v", err)}
	}
	category, err := s.categories.Lookup(ctx, req.CategoryID)
	if err != nil {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("category_id: unknown category %q", req.CategoryID)}
	}
	if !category.Active {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("category_id: category %q is inactive", req.CategoryID)}
	}

	now := time.Now().UTC()
	work := &models.Work{
		ID:         uuid.NewString(),
		Title:      req.Title,
		Abstract:   req.Abstract,
		Discipline: discipline,
		Year:       req.Year,
		School:     req.School,
		Region:     region,
		CategoryID: req.CategoryID,
		Author:     req.Author,
		Supervisor: req.Supervisor,
		Status:     models.StatusPendingReview,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.works.Create(ctx, work); err != nil {
		return nil, err
	}

	transitionsTotal.WithLabelValues(string(models.StatusPendingReview)).Inc()
	s.logger.Info("work imported", "work_id", work.ID, "discipline", work.Discipline, "year", work.Year)

	return work, nil
}

// Approve publishes a work and synchronizes the search index. An index
// failure after the status commit is surfaced as a DependencyError with
// RecordChanged set, so the caller knows the approval itself stuck.
func (s *lifecycleService) Approve(ctx context.Context, id string, requester services.Requester) (*models.Work, error) {
	if err := requireAdmin(requester); err != nil {
		return nil, err
	}

	work, err := s.transition(ctx, id, models.StatusApproved, func(w *models.Work) {
		if w.ApprovedAt == nil {
			now := time.Now().UTC()
			w.ApprovedAt = &now
		}
	})
	if err != nil {
		return nil, err
	}

	doc := repositories.IndexDoc{
		Title:    work.Title,
		Abstract: work.Abstract,
		School:   work.School,
	}
	if err := s.index.Index(ctx, work.ID, doc); err != nil {
		return nil, &domain.DependencyError{
			Message:       "work approved but search indexing failed",
			Dependency:    "search-index",
			RecordChanged: true,
			Err:           err,
		}
	}

	s.logger.Info("work approved", "work_id", id)
	return work, nil
}

func (s *lifecycleService) Reject(ctx context.Context, id string, requester services.Requester) (*models.Work, error) {
	if err := requireAdmin(requester); err != nil {
		return nil, err
	}
	work, err := s.transition(ctx, id, models.StatusRejected, nil)
	if err != nil {
		return nil, err
	}
	s.logger.Info("work rejected", "work_id", id)
	return work, nil
}

func (s *lifecycleService) Resubmit(ctx context.Context, id string, requester services.Requester) (*models.Work, error) {
	if err := requireAdmin(requester); err != nil {
		return nil, err
	}
	work, err := s.transition(ctx, id, models.StatusPendingReview, nil)
	if err != nil {
		return nil, err
	}
	s.logger.Info("work resubmitted", "work_id", id)
	return work, nil
}

// transition moves a work to the target status through the transition
// table. The compare-and-set update keys on the status observed here, so
// a concurrent transition loses with a ConflictError instead of clobbering.
func (s *lifecycleService) transition(ctx context.Context, id string, to models.WorkStatus, mutate func(*models.Work)) (*models.Work, error) {
	current, err := s.works.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(current.Status, to) {
		return nil, &domain.ConflictError{
			Message:      fmt.Sprintf("cannot move work from %s to %s", current.Status, to),
			ResourceType: "work",
			ResourceID:   id,
		}
	}

	updated, err := s.works.UpdateIfStatus(ctx, id, current.Status, func(w *models.Work) error {
		w.Status = to
		if mutate != nil {
			mutate(w)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	transitionsTotal.WithLabelValues(string(to)).Inc()
	return updated, nil
}

// UploadPDF stores the new artifact before touching the record, so a
// storage failure leaves the work unchanged. The previous artifact is
// removed only after the record points at the new one.
func (s *lifecycleService) UploadPDF(ctx context.Context, id string, pdf io.Reader, filename string, requester services.Requester) (*models.Work, error) {
	if err := requireAdmin(requester); err != nil {
		return nil, err
	}

	current, err := s.works.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == models.StatusRedacted {
		return nil, &domain.ConflictError{
			Message:      "cannot attach an artifact to a redacted work",
			ResourceType: "work",
			ResourceID:   id,
		}
	}

	key, err := s.artifacts.Store(pdf, filename)
	if err != nil {
		return nil, err
	}

	var previous *string
	updated, err := s.works.UpdateIfStatus(ctx, id, current.Status, func(w *models.Work) error {
		previous = w.ArtifactKey
		w.ArtifactKey = &key
		return nil
	})
	if err != nil {
		// The record was not changed; remove the file that was just
		// written so it cannot leak.
		if delErr := s.artifacts.Delete(key); delErr != nil {
			artifactDeleteFailures.Inc()
			s.logger.Error("orphaned artifact after failed upload", "work_id", id, "key", key, "error", delErr)
		}
		return nil, err
	}

	if previous != nil && *previous != key {
		if err := s.artifacts.Delete(*previous); err != nil {
			artifactDeleteFailures.Inc()
			s.logger.Error("failed to delete replaced artifact", "work_id", id, "key", *previous, "error", err)
		}
	}

	s.logger.Info("artifact uploaded", "work_id", id, "key", key)
	return updated, nil
}

func (s *lifecycleService) Redact(ctx context.Context, id string, requester services.Requester) (*models.RedactionReceipt, error) {
	if err := requireAdmin(requester); err != nil {
		return nil, err
	}
	return s.redactor.Redact(ctx, id)
}

func requireAdmin(requester services.Requester) error {
	if !requester.Admin {
		return &domain.ForbiddenError{Message: "admin access required"}
	}
	return nil
}

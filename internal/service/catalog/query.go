package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"socarchive/internal/domain"
	models "socarchive/internal/domain/models/catalog"
	repositories "socarchive/internal/domain/repositories/catalog"
	services "socarchive/internal/domain/services/catalog"
)

// workQueryService implements the WorkQueryService interface
type workQueryService struct {
	works     repositories.WorkRepository
	artifacts services.ArtifactStore
	logger    *slog.Logger
}

// NewWorkQueryService creates a new read-side service for single works.
func NewWorkQueryService(works repositories.WorkRepository, artifacts services.ArtifactStore, logger *slog.Logger) services.WorkQueryService {
	return &workQueryService{
		works:     works,
		artifacts: artifacts,
		logger:    logger,
	}
}

// Get fetches one work. Non-admin requesters only see approved works;
// anything else reads as not found so existence is not leaked.
func (s *workQueryService) Get(ctx context.Context, id string, requester services.Requester) (*models.Work, error) {
	work, err := s.works.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !requester.Admin && work.Status != models.StatusApproved {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("work %s not found", id)}
	}
	if !requester.Admin {
		scrubbed := *work
		scrubbed.Author = ""
		scrubbed.Supervisor = ""
		return &scrubbed, nil
	}
	return work, nil
}

// OpenPDF opens the stored artifact of a work for streaming. The caller
// owns the returned reader and must close it.
func (s *workQueryService) OpenPDF(ctx context.Context, id string, requester services.Requester) (io.ReadCloser, error) {
	work, err := s.Get(ctx, id, requester)
	if err != nil {
		return nil, err
	}
	if work.ArtifactKey == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("work %s has no artifact", id)}
	}
	return s.artifacts.Open(*work.ArtifactKey)
}

package handler

import (
	"log/slog"
	"net/http"

	services "socarchive/internal/domain/services/catalog"
	"socarchive/internal/httputil"
)

// CategoryHandler handles category HTTP requests
type CategoryHandler struct {
	categories services.CategoryService
	logger     *slog.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categories services.CategoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		categories: categories,
		logger:     logger,
	}
}

// ListCategories lists categories; inactive ones only for admins
// GET /api/v1/categories
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("include_inactive") == "true" &&
		httputil.RequesterFrom(r.Context()).Admin

	categories, err := h.categories.List(r.Context(), includeInactive)
	if err != nil {
		httputil.RespondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, categories)
}

// CreateCategory creates a new category
// POST /api/v1/categories
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	if err := requireAdmin(r); err != nil {
		httputil.RespondDomainError(w, h.logger, err)
		return
	}

	var req services.CreateCategoryRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	category, err := h.categories.Create(r.Context(), req)
	if err != nil {
		httputil.RespondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, category)
}

// DeactivateCategory marks a category inactive
// DELETE /api/v1/categories/{id}
func (h *CategoryHandler) DeactivateCategory(w http.ResponseWriter, r *http.Request) {
	if err := requireAdmin(r); err != nil {
		httputil.RespondDomainError(w, h.logger, err)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "category ID is required")
		return
	}

	if err := h.categories.Deactivate(r.Context(), id); err != nil {
		httputil.RespondDomainError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

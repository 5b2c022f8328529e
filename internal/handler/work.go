package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	services "socarchive/internal/domain/services/catalog"
	"socarchive/internal/httputil"
)

// WorkHandler handles the public work read endpoints
type WorkHandler struct {
	resolver services.FilterResolver
	executor services.SearchExecutor
	queries  services.WorkQueryService
	logger   *slog.Logger
}

// NewWorkHandler creates a new work handler
func NewWorkHandler(resolver services.FilterResolver, executor services.SearchExecutor, queries services.WorkQueryService, logger *slog.Logger) *WorkHandler {
	return &WorkHandler{
		resolver: resolver,
		executor: executor,
		queries:  queries,
		logger:   logger,
	}
}

// SearchWorks lists works matching the query string filters
// GET /api/v1/works
func (h *WorkHandler) SearchWorks(w http.ResponseWriter, r *http.Request) {
	requester := httputil.RequesterFrom(r.Context())

	plan, err := h.resolver.Resolve(r.Context(), services.RawFilters(r.URL.Query()), requester)
	if err != nil {
		httputil.RespondDomainError(w, h.logger, err)
		return
	}

	page, err := h.executor.Execute(r.Context(), plan, requester)
	if err != nil {
		httputil.RespondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, page)
}

// GetWork retrieves a single work by ID
// GET /api/v1/works/{id}
func (h *WorkHandler) GetWork(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "work ID is required")
		return
	}

	work, err := h.queries.Get(r.Context(), id, httputil.RequesterFrom(r.Context()))
	if err != nil {
		httputil.RespondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, work)
}

// DownloadPDF streams the stored PDF artifact of a work
// GET /api/v1/works/{id}/pdf
func (h *WorkHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "work ID is required")
		return
	}

	pdf, err := h.queries.OpenPDF(r.Context(), id, httputil.RequesterFrom(r.Context()))
	if err != nil {
		httputil.RespondDomainError(w, h.logger, err)
		return
	}
	defer pdf.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id+".pdf"))
	if _, err := io.Copy(w, pdf); err != nil {
		// Headers are already out; all we can do is log the broken stream.
		h.logger.Warn("pdf stream interrupted", "work_id", id, "error", err)
	}
}

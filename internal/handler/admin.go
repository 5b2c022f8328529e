package handler

import (
	"context"
	"log/slog"
	"net/http"

	"socarchive/internal/config"
	models "socarchive/internal/domain/models/catalog"
	services "socarchive/internal/domain/services/catalog"
	"socarchive/internal/httputil"
)

// AdminHandler handles the moderation and reporting endpoints. Role
// enforcement lives in the services; the handler only shapes HTTP.
type AdminHandler struct {
	lifecycle services.LifecycleService
	reports   services.ReportService
	logger    *slog.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(lifecycle services.LifecycleService, reports services.ReportService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		lifecycle: lifecycle,
		reports:   reports,
		logger:    logger,
	}
}

// ImportWork creates a new submission in pending_review
// POST /api/v1/works
func (h *AdminHandler) ImportWork(w http.ResponseWriter, r *http.Request) {
	var req services.ImportRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	work, err := h.lifecycle.Import(r.Context(), req)
	if err != nil {
		httputil.RespondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, work)
}

// ApproveWork publishes a work
// POST /api/v1/works/{id}/approve
func (h *AdminHandler) ApproveWork(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.lifecycle.Approve)
}

// RejectWork declines a pending work
// POST /api/v1/works/{id}/reject
func (h *AdminHandler) RejectWork(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.lifecycle.Reject)
}

// ResubmitWork returns a rejected work to review
// POST /api/v1/works/{id}/resubmit
func (h *AdminHandler) ResubmitWork(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.lifecycle.Resubmit)
}

func (h *AdminHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, id string, requester services.Requester) (*models.Work, error),
) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "work ID is required")
		return
	}

	work, err := op(r.Context(), id, httputil.RequesterFrom(r.Context()))
	if err != nil {
		httputil.RespondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, work)
}

// UploadPDF attaches or replaces the PDF artifact of a work
// PUT /api/v1/works/{id}/pdf
func (h *AdminHandler) UploadPDF(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "work ID is required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadSize)
	if err := r.ParseMultipartForm(config.MaxUploadSize); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid multipart upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "missing form field: file")
		return
	}
	defer file.Close()

	work, err := h.lifecycle.UploadPDF(r.Context(), id, file, header.Filename, httputil.RequesterFrom(r.Context()))
	if err != nil {
		httputil.RespondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, work)
}

// RedactWork erases personal data from a work and returns the receipt
// POST /api/v1/works/{id}/redact
func (h *AdminHandler) RedactWork(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "work ID is required")
		return
	}

	receipt, err := h.lifecycle.Redact(r.Context(), id, httputil.RequesterFrom(r.Context()))
	if err != nil {
		httputil.RespondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, receipt)
}

// GetStats returns aggregate catalog counts
// GET /api/v1/stats
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	if err := requireAdmin(r); err != nil {
		httputil.RespondDomainError(w, h.logger, err)
		return
	}

	stats, err := h.reports.Stats(r.Context())
	if err != nil {
		httputil.RespondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, stats)
}

// ExportCatalog dumps the full catalog as JSON
// GET /api/v1/export
func (h *AdminHandler) ExportCatalog(w http.ResponseWriter, r *http.Request) {
	if err := requireAdmin(r); err != nil {
		httputil.RespondDomainError(w, h.logger, err)
		return
	}

	works, err := h.reports.Export(r.Context())
	if err != nil {
		httputil.RespondDomainError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="catalog-export.json"`)
	httputil.RespondJSON(w, http.StatusOK, works)
}

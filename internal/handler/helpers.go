package handler

import (
	"net/http"

	"socarchive/internal/domain"
	"socarchive/internal/httputil"
)

// requireAdmin guards endpoints whose service has no requester parameter.
func requireAdmin(r *http.Request) error {
	if !httputil.RequesterFrom(r.Context()).Admin {
		return &domain.ForbiddenError{Message: "admin access required"}
	}
	return nil
}

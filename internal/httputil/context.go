package httputil

import (
	"context"

	services "socarchive/internal/domain/services/catalog"
)

type contextKey string

const requesterKey contextKey = "requester"

// WithRequester stores the authenticated requester in the context.
func WithRequester(ctx context.Context, req services.Requester) context.Context {
	return context.WithValue(ctx, requesterKey, req)
}

// RequesterFrom extracts the requester from the context. Requests that
// never passed the auth middleware resolve to the anonymous requester.
func RequesterFrom(ctx context.Context) services.Requester {
	if req, ok := ctx.Value(requesterKey).(services.Requester); ok {
		return req
	}
	return services.Anonymous
}

package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"socarchive/internal/auth"
	"socarchive/internal/httputil"
)

// Authenticate verifies a Bearer token when present and stores the
// resulting requester identity in the request context. Requests without
// a token proceed as the anonymous requester; role checks happen in the
// service layer, not here.
func Authenticate(verifier auth.JWTVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				// A present but bad token is rejected, never downgraded
				// to anonymous.
				logger.Debug("rejected bearer token", "path", r.URL.Path)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := httputil.WithRequester(r.Context(), claims.Requester())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

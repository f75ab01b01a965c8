package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/fareline/fareline/internal/domain/models"
	wrap "github.com/fareline/fareline/pkg/logger/wrapper"
)

// Auth validates the bearer token, loads the user and injects it into
// the context. Requests without an Authorization header pass through as
// anonymous; protected endpoints reject those via RequireAuth.
func (h *Middleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		header := r.Header.Get("Authorization")
		if header == "" {
			r = r.WithContext(models.WithUser(ctx, models.AnonymousUser()))
			next.ServeHTTP(w, r)
			return
		}

		token, err := extractBearerToken(header)
		if err != nil {
			errorResponse(w, http.StatusUnauthorized, err.Error())
			return
		}

		user, err := h.auth.Authenticate(ctx, token)
		if err != nil || user == nil {
			h.log.Error(wrap.ErrorCtx(ctx, err), "failed to authenticate user", err)
			errorResponse(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		ctx = wrap.WithUserID(ctx, user.ID.String())
		next.ServeHTTP(w, r.WithContext(models.WithUser(ctx, user)))
	})
}

// RequireAuth allows only authenticated users through.
func (h *Middleware) RequireAuth(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := models.UserFromContext(r.Context())
		if user == nil || user.IsAnonymous() {
			errorResponse(w, http.StatusUnauthorized, "authorization required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func extractBearerToken(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", fmt.Errorf("invalid Authorization header format")
	}
	return parts[1], nil
}

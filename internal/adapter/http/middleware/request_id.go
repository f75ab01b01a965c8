package middleware

import (
	"net/http"

	wrap "github.com/fareline/fareline/pkg/logger/wrapper"
	"github.com/fareline/fareline/pkg/uuid"
)

const requestIDHeader = "X-Request-Id"

// RequestID attaches a request id to the context and echoes it in the
// response. An incoming id from a trusted proxy is reused.
func (a *Middleware) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}

		w.Header().Set(requestIDHeader, id)

		ctx := wrap.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

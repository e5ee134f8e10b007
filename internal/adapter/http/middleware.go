package adapthttp

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"simplyblog/internal/app"
	"simplyblog/internal/domain"
)

type contextKey string

const identityContextKey contextKey = "identity"

// requireAuth is the gate in front of protected routes. It extracts the
// token cookie, verifies it, and either invokes next with the decoded
// identity in the request context or rejects without calling through.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(tokenCookieName)
		if err != nil {
			writeError(w, http.StatusUnauthorized, app.ErrBadToken)
			return
		}

		identity, err := s.auth.Verify(r.Context(), cookie.Value)
		if errors.Is(err, app.ErrBadToken) {
			writeError(w, http.StatusUnauthorized, app.ErrBadToken)
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, errors.New("internal error"))
			return
		}

		ctx := context.WithValue(r.Context(), identityContextKey, identity)
		next(w, r.WithContext(ctx))
	}
}

func identityFromContext(ctx context.Context) (*domain.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(*domain.Identity)
	return identity, ok
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// loggingMiddleware emits one structured line per request.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// recoverMiddleware converts handler panics into a generic 500.
func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("handler panic", "path", r.URL.Path, "panic", rec)
				writeError(w, http.StatusInternalServerError, errors.New("internal server error"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

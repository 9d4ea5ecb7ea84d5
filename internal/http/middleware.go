package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/UTarts/RASRAJ-themithaishop/internal/metrics"
	"github.com/UTarts/RASRAJ-themithaishop/internal/session"
	"github.com/UTarts/RASRAJ-themithaishop/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

type sessionKey struct{}

// RequestIDMiddleware adds a request id to the context logger and the
// response. An incoming X-Request-ID is kept.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := logger.WithRequestID(r.Context(), requestID)
		w.Header().Set(requestIDHeader, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// LoggingMiddleware logs one line per request.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		logger.FromContext(r.Context()).Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)))
	})
}

// MetricsMiddleware records request counts and latency by route pattern.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.HTTPRequests.WithLabelValues(r.Method, path, strconv.Itoa(status)).Inc()
		metrics.HTTPDuration.WithLabelValues(r.Method, path).Observe(float64(time.Since(start).Milliseconds()))
	})
}

type SessionCookie struct {
	Name   string
	Secure bool
}

// SessionMiddleware resolves the browser's session from its cookie, starting
// a new one when the cookie is missing or malformed.
func SessionMiddleware(m *session.Manager, cookie SessionCookie) func(http.Handler) http.Handler {
	if cookie.Name == "" {
		cookie.Name = "rr_session"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(cookie.Name); err == nil && session.ValidID(c.Value) {
				id = c.Value
			}
			if id == "" {
				id = session.NewID()
				http.SetCookie(w, &http.Cookie{
					Name:     cookie.Name,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					Secure:   cookie.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			sess, err := m.Get(r.Context(), id)
			if err != nil {
				handleError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey{}, sess)
			ctx = logger.WithContext(ctx, logger.FromContext(ctx).With(zap.String("session_id", id)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionFromContext(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionKey{}).(*session.Session)
	return sess
}

// RequireAuth rejects requests from sessions without a token.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFromContext(r.Context())
		if sess == nil || !sess.Auth.Authenticated() {
			respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole lets through only sessions whose role is one of roles. The
// backend still makes the final decision.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := sessionFromContext(r.Context())
			if sess == nil || !sess.Auth.Authenticated() {
				respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
				return
			}
			if !sess.Auth.HasRole(roles...) {
				respondError(w, http.StatusForbidden, "permission_denied", "not allowed for this account")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

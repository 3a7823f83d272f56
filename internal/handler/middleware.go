package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/auth"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/entity"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/platform/logger"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/platform/metrics"
)

// ContextKey is a private type for request context keys to avoid collisions.
type ContextKey string

const (
	// UserIDCtxKey holds the authenticated user id.
	UserIDCtxKey = ContextKey("user_id")
	// UserEmailCtxKey holds the authenticated user email.
	UserEmailCtxKey = ContextKey("user_email")
)

// UserIDFromContext extracts the authenticated user id set by JWTAuth.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDCtxKey).(string)
	return id, ok && id != ""
}

// JWTAuth verifies the Bearer token and stores the caller's identity in the
// request context. Requests without a valid token get a 401.
func JWTAuth(tokens *auth.TokenManager, log *logger.Logger, mm *metrics.MetricsManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w, log, mm, "missing bearer token")
				return
			}

			claims, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				log.Debug("Token verification failed", zap.Error(err))
				unauthorized(w, log, mm, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDCtxKey, claims.UserID)
			ctx = context.WithValue(ctx, UserEmailCtxKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, log *logger.Logger, mm *metrics.MetricsManager, reason string) {
	if mm != nil {
		mm.AuthFailuresTotal.Inc()
	}
	log.Debug("Unauthorized request", zap.String("reason", reason))
	respondError(w, log, entity.ErrUnauthorized)
}

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs every request and feeds the HTTP latency and error
// metrics.
func RequestLogger(log *logger.Logger, mm *metrics.MetricsManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			elapsed := time.Since(start)
			route := r.Method + " " + r.URL.Path

			if mm != nil {
				mm.HTTPLatency.WithLabelValues(route).Observe(elapsed.Seconds())
				if rec.status >= 400 {
					mm.HTTPErrorsTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
				}
			}

			log.Info("HTTP request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("duration", elapsed),
				zap.String("remote_addr", r.RemoteAddr),
			)
		})
	}
}

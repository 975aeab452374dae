package log

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const loggerContextKey contextKey = "logger"

// WithContext returns ctx carrying logger.
func WithContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

// FromContext extracts a logger from ctx, falling back to a discarding
// logger.
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*Logger); ok {
		return logger
	}
	return Discard()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware tags each request with an ID, stores a request-scoped logger
// in the context and logs the completed request.
func Middleware(logger *Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", requestID)

			reqLogger := logger.WithComponent(ComponentHTTP).With(FieldRequestID, requestID)
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r.WithContext(WithContext(r.Context(), reqLogger)))

			args := []any{
				FieldMethod, r.Method,
				FieldPath, r.URL.Path,
				FieldStatusCode, rec.status,
				FieldDuration, time.Since(start).Milliseconds(),
			}
			switch {
			case rec.status >= 500:
				reqLogger.ErrorContext(r.Context(), "HTTP request completed", args...)
			case rec.status >= 400:
				reqLogger.WarnContext(r.Context(), "HTTP request completed", args...)
			default:
				reqLogger.InfoContext(r.Context(), "HTTP request completed", args...)
			}
		})
	}
}

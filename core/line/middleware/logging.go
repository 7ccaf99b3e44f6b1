package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kaodiag/facebot/core/logger"
	"log/slog"
)

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

// RequestLogger assigns a correlation id to each webhook delivery, stores it
// in the request context, and logs one receipt line per request.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rid := uuid.NewString()

		ctx := logger.WithRID(r.Context(), rid)
		ctx = logger.WithLogger(ctx, logger.Component("http"))
		r = r.WithContext(ctx)

		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, r)

		if logger.ShouldSampleDebug() {
			logger.Debug(ctx, "http", "request.handled",
				slog.String("status", logger.Status(nil)),
				slog.String("method", r.Method),
				slog.String("path", logger.SanitizeLimit(r.URL.Path, 128)),
				slog.Int("http_code", rec.code),
				slog.Duration("duration", logger.Took(start)),
			)
		}
	})
}

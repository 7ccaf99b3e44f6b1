package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/kaodiag/facebot/core/logger"
	"log/slog"
)

// Recover catches panics in webhook handling and prevents the server from crashing.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error(r.Context(), "http", "panic.recovered",
					slog.Any("err", rec),
					slog.String("stack", string(debug.Stack())),
				)
				w.WriteHeader(http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

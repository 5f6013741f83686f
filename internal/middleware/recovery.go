package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"broadsheet/internal/httputil"
)

// Recovery turns a handler panic into a 500 problem response. The log
// entry carries the editor resolved further down the chain, when auth got
// that far.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r, trace := httputil.WithRequestTrace(r)

			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.Error("handler panicked",
					"panic", fmt.Sprint(rec),
					"method", r.Method,
					"path", r.URL.Path,
					"query", r.URL.RawQuery,
					"user_id", trace.UserID,
					"editorial_role", trace.EditorialRole,
					"remote_addr", r.RemoteAddr,
					"stack", string(debug.Stack()),
				)

				httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
			}()

			next.ServeHTTP(w, r)
		})
	}
}

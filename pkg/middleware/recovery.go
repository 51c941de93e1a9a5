package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/utafrali/glamstore/pkg/httputil"
	"github.com/utafrali/glamstore/pkg/logger"

	apperrors "github.com/utafrali/glamstore/pkg/errors"
)

// Recovery returns a middleware that recovers from panics, logs the stack
// trace, and returns a 500 response.
func Recovery(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.WithContext(r.Context(), log).Error("panic recovered",
						slog.Any("panic", rec),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.String("stack", string(debug.Stack())),
					)

					httputil.WriteError(w, apperrors.Internal(nil))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/shiftcoach/shiftcoach-api/internal/logging"
	"github.com/shiftcoach/shiftcoach-api/pkg/problem"
)

// Recovery returns a middleware that recovers from panics and responds
// with a 500 problem document.
func Recovery(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.Errorf("panic recovered: %v\n%s", err, debug.Stack())
					problem.InternalError("An unexpected error occurred").Write(w)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

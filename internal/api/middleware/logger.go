package middleware

import (
	"net/http"
	"time"

	"github.com/shiftcoach/shiftcoach-api/internal/logging"
)

// Logger returns a middleware that logs each request with its status and
// duration.
func Logger(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lw := &logResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(lw, r)

			log.Infof("%s %s %d %s", r.Method, r.URL.Path, lw.statusCode, time.Since(start))
		})
	}
}

type logResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lw *logResponseWriter) WriteHeader(code int) {
	lw.statusCode = code
	lw.ResponseWriter.WriteHeader(code)
}

package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// Logging records each redirect hit with its path and handling time.
//
// Query parameters are deliberately not logged: the authorization code and
// state token travel in them.
func Logging(logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("handled callback request",
				"method", r.Method,
				"path", r.URL.Path,
				"duration", time.Since(start),
			)
		})
	}
}

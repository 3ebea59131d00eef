// package server hosts the short-lived loopback HTTP server that receives
// the Spotify authorization redirect.
package server

import (
	"context"
	"net/http"
)

// Middleware wraps an http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Handler is an http.Handler that knows which path patterns it serves.
type Handler interface {
	http.Handler
	Routes() []string
}

// Server wraps an [http.Server] bound to the configured callback address.
// It lives only for the duration of one login.
type Server struct {
	httpServer *http.Server
}

// New builds a Server on addr serving handler's routes, each wrapped with the
// given middleware. The first middleware listed is outermost.
func New(addr string, handler Handler, middleware ...Middleware) *Server {
	wrapped := http.Handler(handler)
	for i := len(middleware) - 1; i >= 0; i-- {
		wrapped = middleware[i](wrapped)
	}

	mux := http.NewServeMux()
	for _, route := range handler.Routes() {
		mux.Handle(route, wrapped)
	}

	return &Server{
		httpServer: &http.Server{Addr: addr, Handler: mux},
	}
}

// Start begins serving in a background goroutine. A listen failure is
// reported on the returned channel.
func (s *Server) Start() <-chan error {
	errs := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errs <- err
		}
	}()
	return errs
}

// Shutdown stops the listener, waiting for in-flight requests up to the
// context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/hongminglow/drug-catalog-be/internal/auth"
	"github.com/hongminglow/drug-catalog-be/internal/config"
	"github.com/hongminglow/drug-catalog-be/internal/http/handlers"
	"github.com/hongminglow/drug-catalog-be/internal/http/respond"
	"github.com/hongminglow/drug-catalog-be/internal/middleware"
	"github.com/hongminglow/drug-catalog-be/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.Store) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           Handler(cfg, store),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Handler builds the routed, middleware-wrapped handler without binding a listener.
func Handler(cfg config.Config, store storage.Store) http.Handler {
	mux := http.NewServeMux()

	handlers.NewHealthHandler(time.Now(), store).Register(mux)

	var tokens *auth.TokenManager
	if cfg.TokensEnabled() {
		tokens = auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	}
	handlers.NewAuthHandler(store, tokens).Register(mux)
	handlers.NewBookmarkHandler(store).Register(mux)
	handlers.NewProfileHandler(store).Register(mux)
	handlers.NewDrugHandler(store, cfg.MaxUploadBytes).Register(mux)

	return middleware.Logging(middleware.Recover(middleware.CORS(cfg.CORSOrigins, routeErrors(mux))))
}

// routeErrors serves mux, answering requests that match no route with the JSON envelope
// instead of the mux's plain-text 404 and 405 bodies.
func routeErrors(mux *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fallback, pattern := mux.Handler(r)
		if pattern != "" {
			mux.ServeHTTP(w, r)
			return
		}

		captured := &statusCapture{header: http.Header{}, status: http.StatusNotFound}
		fallback.ServeHTTP(captured, r)
		if allow := captured.header.Get("Allow"); allow != "" {
			w.Header().Set("Allow", allow)
		}
		respond.Error(w, captured.status, strings.ToLower(http.StatusText(captured.status)))
	})
}

// statusCapture records the status and headers of the mux's fallback handler and drops its body.
type statusCapture struct {
	header http.Header
	status int
}

func (c *statusCapture) Header() http.Header { return c.header }
func (c *statusCapture) WriteHeader(status int) { c.status = status }
func (c *statusCapture) Write(b []byte) (int, error) { return len(b), nil }

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}

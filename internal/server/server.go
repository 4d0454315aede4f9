package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hongminglow/estate-be/internal/auth"
	"github.com/hongminglow/estate-be/internal/config"
	"github.com/hongminglow/estate-be/internal/events"
	"github.com/hongminglow/estate-be/internal/http/handlers"
	"github.com/hongminglow/estate-be/internal/media"
	"github.com/hongminglow/estate-be/internal/middleware"
	"github.com/hongminglow/estate-be/internal/store"
)

// Deps are the long-lived components the routes are built from.
type Deps struct {
	Store     *store.Store
	Session   *store.Session
	Tokens    *auth.TokenManager
	Assistant handlers.Assistant
	Geocoder  handlers.Geocoder
	// Uploader is nil when object storage is not configured.
	Uploader media.Uploader
	Events   events.Publisher
	Logger   *zap.Logger
}

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, deps Deps) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           Routes(cfg, deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return &Server{inner: httpServer}
}

// Routes builds the full handler chain: CORS, request logging, session, mux.
func Routes(cfg config.Config, deps Deps) http.Handler {
	if deps.Events == nil {
		deps.Events = events.Noop{}
	}

	mux := http.NewServeMux()
	handlers.NewHealthHandler(time.Now(), cfg.StorageBackend).Register(mux)
	handlers.NewAuthHandler(deps.Store, deps.Session, deps.Tokens, deps.Logger).Register(mux)
	handlers.NewPropertyHandler(deps.Store, deps.Events, deps.Logger, time.Now).Register(mux)
	handlers.NewWizardHandler().Register(mux)
	handlers.NewMessageHandler(deps.Store, deps.Events, deps.Logger, time.Now).Register(mux)
	handlers.NewWishlistHandler(deps.Store, deps.Logger).Register(mux)
	handlers.NewAIHandler(deps.Store, deps.Assistant).Register(mux)
	handlers.NewGeoHandler(deps.Geocoder, deps.Logger).Register(mux)
	handlers.NewMediaHandler(deps.Uploader, deps.Logger).Register(mux)

	return middleware.CORS(cfg.CORSOrigins,
		middleware.Logging(deps.Logger,
			middleware.Session(deps.Tokens, mux)))
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}

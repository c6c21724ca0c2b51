// Package api provides the HTTP API server and handlers for the Bookshelf application.
package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bookshelfapp/bookshelf-server/internal/http/response"
	"github.com/bookshelfapp/bookshelf-server/internal/ratelimit"
	"github.com/bookshelfapp/bookshelf-server/internal/service"
	"github.com/bookshelfapp/bookshelf-server/internal/store"
)

const (
	// Credential endpoints allow short bursts, then 5 attempts/second per IP.
	authRateLimit = 5.0
	authRateBurst = 30
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store           store.Store
	authService     *service.AuthService
	bookService     *service.BookService
	listItemService *service.ListItemService
	router          *chi.Mux
	allowOrigins    []string
	authLimiter     *ratelimit.KeyedRateLimiter
	logger          *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(store store.Store, authService *service.AuthService, bookService *service.BookService, listItemService *service.ListItemService, allowOrigins []string, logger *slog.Logger) *Server {
	s := &Server{
		store:           store,
		authService:     authService,
		bookService:     bookService,
		listItemService: listItemService,
		router:          chi.NewRouter(),
		allowOrigins:    allowOrigins,
		authLimiter:     ratelimit.New(authRateLimit, authRateBurst),
		logger:          logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	origins := s.allowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	s.router.Route("/api", func(r chi.Router) {
		// Auth endpoints (register and login are public).
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(s.rateLimitByIP(s.authLimiter))
				r.Post("/register", s.handleRegister)
				r.Post("/login", s.handleLogin)
			})

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Get("/me", s.handleGetCurrentUser)
			})
		})

		// Book catalog (read-only, requires auth).
		r.Route("/books", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleSearchBooks)
			r.Get("/{id}", s.handleGetBook)
		})

		// Reading list items.
		r.Route("/list-items", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleListListItems)
			r.Post("/", s.handleCreateListItem)

			r.Route("/{id}", func(r chi.Router) {
				r.Use(s.loadListItem)
				r.Get("/", s.handleGetListItem)
				r.Put("/", s.handleUpdateListItem)
				r.Delete("/", s.handleDeleteListItem)
			})
		})
	})
}

// handleHealthCheck returns server health status, probing the store with a
// cheap lookup. A missing record is fine; any other failure is not.
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	httpStatus := http.StatusOK

	if _, err := s.store.GetUser(r.Context(), "user-healthcheck"); err != nil && !errors.Is(err, store.ErrUserNotFound) {
		if s.logger != nil {
			s.logger.Error("Health check store probe failed", "error", err)
		}
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	response.JSON(w, httpStatus, map[string]string{
		"status": status,
	}, s.logger)
}

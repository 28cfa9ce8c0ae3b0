// Package api provides the HTTP API server and handlers for the bookz
// depository service.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bookzapp/bookz-server/internal/config"
	"github.com/bookzapp/bookz-server/internal/service"
)

// Services groups the business logic services used by the API server.
type Services struct {
	Depository *service.DepositoryService
	Author     *service.AuthorService
	Book       *service.BookService
	Copy       *service.CopyService
	Customer   *service.CustomerService
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	services *Services
	grid     config.DepositoryConfig
	router   *chi.Mux
	api      huma.API
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured. The
// grid config supplies default dimensions for depository initialisation.
func NewServer(services *Services, grid config.DepositoryConfig, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	humaConfig := huma.DefaultConfig("Bookz API", "1.0.0")
	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		services: services,
		grid:     grid,
		router:   router,
		api:      api,
		logger:   logger,
	}

	s.registerHealthRoutes()
	s.registerDepositoryRoutes()
	s.registerAuthorRoutes()
	s.registerBookRoutes()
	s.registerCopyRoutes()
	s.registerCustomerRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

package server

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"catalog-admin/internal/apiclient"
	"catalog-admin/internal/config"
	custommiddleware "catalog-admin/internal/middleware"
	"catalog-admin/internal/repository"
	"catalog-admin/internal/service"
	"catalog-admin/internal/tokenstore"
	"catalog-admin/internal/transport"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config  *config.Config
	logger  *zap.Logger
	closers []io.Closer
}

// NewServer wires the dashboard around store. closers are released by Close.
func NewServer(cfg *config.Config, logger *zap.Logger, store tokenstore.Store, closers ...io.Closer) (*Server, error) {
	router, err := NewRouter(cfg, logger, store)
	if err != nil {
		return nil, err
	}

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
		config:  cfg,
		logger:  logger,
		closers: closers,
	}

	return server, nil
}

// NewRouter builds the full route tree. Everything except /login and /health
// requires a stored token.
func NewRouter(cfg *config.Config, logger *zap.Logger, store tokenstore.Store) (http.Handler, error) {
	router := chi.NewRouter()

	router.Use(custommiddleware.DefaultMiddlewareStack()...)
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoadSession(store, logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))

	router.Route("/health", func(r chi.Router) {
		r.Use(custommiddleware.HealthCORS(cfg.CORS.AllowedOrigins))
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			custommiddleware.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		custommiddleware.RespondWithError(w, r, http.StatusNotFound, "Resource not found")
	})

	renderer, err := transport.NewRenderer(service.NewAssetResolver(cfg.Assets.BaseURL, cfg.Assets.StripPrefix), logger)
	if err != nil {
		return nil, err
	}

	// Initialize repositories
	client := apiclient.NewClient(cfg.API.BaseURL, cfg.API.Timeout, logger)
	authRepo := repository.NewAuthRepository(client)
	productRepo := repository.NewProductRepository(client)
	userRepo := repository.NewUserRepository(repository.SeedUsers())

	// Initialize services
	authService := service.NewAuthService(authRepo, logger)
	catalogService := service.NewCatalogService(productRepo, logger)
	userService := service.NewUserService(userRepo, logger)

	// Initialize handlers
	authHandler := transport.NewAuthHandler(authService, store, renderer, logger)
	productHandler := transport.NewProductHandler(catalogService, renderer, logger)
	userHandler := transport.NewUserHandler(userService, renderer, logger)

	authHandler.RegisterRoutes(router)

	router.Group(func(r chi.Router) {
		r.Use(custommiddleware.RequireSession(logger))

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, custommiddleware.CatalogPath, http.StatusSeeOther)
		})
		productHandler.RegisterRoutes(r)
		userHandler.RegisterRoutes(r)
	})

	return router, nil
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			s.logger.Error("Failed to close resource", zap.Error(err))
		}
	}

	_ = s.logger.Sync()
	return nil
}

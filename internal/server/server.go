// Package server assembles the HTTP API: middleware, routes and the
// listener lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"creatorlink/internal/config"
	"creatorlink/internal/server/handlers"
	"creatorlink/internal/server/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Deps are the collaborators the routes are wired to.
type Deps struct {
	Service     handlers.Service
	Tokens      middleware.TokenVerifier
	Webhooks    handlers.WebhookVerifier
	RateCounter middleware.RateCounter
	Backends    map[string]handlers.Pinger
}

type Server struct {
	engine *gin.Engine
	http   *http.Server
	config *config.Config
	logger *zap.Logger
}

func New(cfg *config.Config, deps Deps, logger *zap.Logger) *Server {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	s := &Server{
		engine: engine,
		config: cfg,
		logger: logger,
		http: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           engine,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}

	s.setupMiddleware()

	s.registerRoutes(deps)

	logger.Info("http server initialized", zap.String("addr", cfg.HTTPAddr))

	return s
}

func (s *Server) setupMiddleware() {
	s.engine.Use(middleware.Recovery(s.logger))

	s.engine.Use(middleware.Logger(s.logger))

	s.engine.Use(cors.New(corsConfig(s.config.CORSAllowedOrigins)))
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	cfg.MaxAge = 12 * time.Hour

	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

func (s *Server) registerRoutes(deps Deps) {
	hc := &handlers.Context{
		Service:  deps.Service,
		Webhooks: deps.Webhooks,
		Backends: deps.Backends,
		Logger:   s.logger,
	}

	limit := middleware.RateLimit(deps.RateCounter, s.config.RateLimitPerMinute, s.logger)

	api := s.engine.Group("/api")

	api.GET("/health", handlers.HandleHealth(hc))
	api.POST("/webhooks/clerk", handlers.HandleClerkWebhook(hc))

	public := api.Group("", middleware.OptionalAuth(deps.Tokens, s.logger), limit)
	public.GET("/creators", handlers.HandleListCreators(hc))
	public.GET("/creators/countries", handlers.HandleCountries(hc))
	public.GET("/creators/:username", handlers.HandleGetCreator(hc))
	public.GET("/jobs/:id", handlers.HandleGetJob(hc))

	private := api.Group("", middleware.RequireAuth(deps.Tokens, s.logger), limit)
	private.POST("/onboarding/complete", handlers.HandleCompleteOnboarding(hc))
	private.GET("/profile", handlers.HandleGetProfile(hc))
	private.PATCH("/profile", handlers.HandleUpdateProfile(hc))
	private.GET("/dashboard", handlers.HandleDashboard(hc))

	private.GET("/jobs", handlers.HandleListJobs(hc))
	private.POST("/jobs", handlers.HandlePostJob(hc))
	private.PATCH("/jobs/:id", handlers.HandleUpdateJob(hc))
	private.DELETE("/jobs/:id", handlers.HandleDeleteJob(hc))
	private.GET("/jobs/:id/applicants", handlers.HandleListApplicants(hc))

	private.GET("/applications", handlers.HandleListApplications(hc))
	private.POST("/applications", handlers.HandleApply(hc))

	private.GET("/saved-jobs", handlers.HandleListSavedJobs(hc))
	private.POST("/saved-jobs", handlers.HandleSaveJob(hc))
	private.DELETE("/saved-jobs", handlers.HandleUnsaveJob(hc))

	private.GET("/travels", handlers.HandleListTravels(hc))
	private.POST("/travels", handlers.HandleCreateTravel(hc))
	private.PATCH("/travels/:id", handlers.HandleUpdateTravel(hc))
	private.DELETE("/travels/:id", handlers.HandleDeleteTravel(hc))

	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	s.logger.Info("routes registered", zap.Int("count", len(s.engine.Routes())))
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("starting http server...", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("stopping http server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	s.logger.Info("http server stopped")
	return nil
}

package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/vzahanych/trip-planner-app/internal/config"
	"github.com/vzahanych/trip-planner-app/internal/server/handlers"
	"github.com/vzahanych/trip-planner-app/internal/server/middlewares"
	"github.com/vzahanych/trip-planner-app/pkg/telemetry"
	"go.uber.org/zap"
)

// Deps are the components the HTTP surface serves. Metrics and HTTPMetrics
// should be the same instances the planner records into.
type Deps struct {
	Planner         handlers.Planner
	Metrics         *handlers.MetricsHandler
	HTTPMetrics     *middlewares.MetricsMiddleware
	ReadinessChecks map[string]handlers.ReadinessCheck
}

type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	server *http.Server
	deps   Deps
	logger *zap.Logger
	tele   *telemetry.Telemetry
}

func New(cfg *config.Config, deps Deps, logger *zap.Logger, tele *telemetry.Telemetry) *Server {
	if deps.HTTPMetrics == nil {
		deps.HTTPMetrics = middlewares.NewMetricsMiddleware(logger, tele)
	}
	if deps.Metrics == nil {
		deps.Metrics = handlers.NewMetricsHandler(logger, deps.HTTPMetrics)
	}

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.SetHTMLTemplate(handlers.Templates())

	engine.Use(middlewares.RequestIDMiddleware())
	engine.Use(middlewares.LoggingMiddleware(logger, true))
	engine.Use(middlewares.RecoveryMiddleware(logger, true))
	engine.Use(corsMiddleware(cfg.Server.CORSOrigins))
	engine.Use(middlewares.TelemetryMiddleware(logger, tele))
	engine.Use(deps.HTTPMetrics.Handler())

	s := &Server{
		cfg:    cfg,
		engine: engine,
		deps:   deps,
		logger: logger,
		tele:   tele,
	}
	s.setupRoutes()

	return s
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cc := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middlewares.RequestIDHeader},
		ExposeHeaders: []string{"Content-Disposition", middlewares.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	cc.AllowAllOrigins = len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			cc.AllowAllOrigins = true
		}
	}
	if !cc.AllowAllOrigins {
		cc.AllowOrigins = origins
	}

	return cors.New(cc)
}

func (s *Server) setupRoutes() {
	plan := handlers.NewPlanHandler(s.deps.Planner, s.cfg.Planner.Currency, s.logger)
	exp := handlers.NewExportHandler(s.cfg.Export, s.logger)
	health := handlers.NewHealthHandler(s.logger, s.deps.ReadinessChecks)

	// HTML form
	s.engine.GET("/", plan.Index)
	s.engine.POST("/plan", plan.SubmitForm)

	api := s.engine.Group("/api/v1")
	api.POST("/plans", plan.CreatePlan)
	api.POST("/exports/:format", exp.Export)

	// Health endpoints (Kubernetes friendly)
	s.engine.GET("/health", health.Health)
	s.engine.GET("/health/live", health.Liveness)
	s.engine.GET("/health/ready", health.Readiness)

	s.engine.GET("/metrics", s.deps.Metrics.ServeMetrics)
}

// Handler exposes the engine, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port),
		Handler:      s.engine,
		ReadTimeout:  time.Duration(s.cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.cfg.Server.IdleTimeout) * time.Second,
	}

	s.logger.Info("Starting server", zap.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

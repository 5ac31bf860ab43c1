package cmd

import (
	"context"
	"fmt"

	"github.com/vzahanych/trip-planner-app/internal/cache"
	"github.com/vzahanych/trip-planner-app/internal/config"
	"github.com/vzahanych/trip-planner-app/internal/llm"
	"github.com/vzahanych/trip-planner-app/internal/planner"
	"github.com/vzahanych/trip-planner-app/internal/server/handlers"
	"github.com/vzahanych/trip-planner-app/internal/server/middlewares"
	"github.com/vzahanych/trip-planner-app/internal/service"
	"github.com/vzahanych/trip-planner-app/pkg/telemetry"
	"go.uber.org/zap"
)

// app holds the wired planning pipeline shared by the server and plan
// commands.
type app struct {
	planner     *planner.Orchestrator
	metrics     *handlers.MetricsHandler
	httpMetrics *middlewares.MetricsMiddleware
	readiness   map[string]handlers.ReadinessCheck
	closers     []func() error
}

// newCacheStore is replaced in tests.
var newCacheStore = cache.NewStore

func buildApp(ctx context.Context, cfg *config.Config, logger *zap.Logger, tele *telemetry.Telemetry) (_ *app, err error) {
	a := &app{
		readiness: make(map[string]handlers.ReadinessCheck),
	}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()
	a.httpMetrics = middlewares.NewMetricsMiddleware(logger, tele)
	a.metrics = handlers.NewMetricsHandler(logger, a.httpMetrics)

	var store cache.Store
	if cfg.Cache.Enabled {
		s, err := newCacheStore(cfg.Cache)
		if err != nil {
			return nil, fmt.Errorf("failed to create cache store: %w", err)
		}
		if p, ok := s.(interface{ Ping(context.Context) error }); ok {
			a.readiness["cache"] = p.Ping
		}
		if c, ok := s.(interface{ Close() error }); ok {
			a.closers = append(a.closers, c.Close)
		}
		store = s
	}

	weatherSvc, err := service.NewWeatherService(cfg.Weather)
	if err != nil {
		return nil, fmt.Errorf("failed to create weather service: %w", err)
	}
	geocodeSvc, err := service.NewGeocodeService(cfg.Geocode)
	if err != nil {
		return nil, fmt.Errorf("failed to create geocode service: %w", err)
	}

	weather := service.NewWeatherLookup(weatherSvc, store, logger, tele)
	weather.SetMetricsRecorder(a.metrics)
	geocode := service.NewGeocodeLookup(geocodeSvc, store, logger, tele)
	geocode.SetMetricsRecorder(a.metrics)

	provider, err := llm.NewProvider(ctx, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create llm provider: %w", err)
	}
	if c, ok := provider.(interface{ Close() error }); ok {
		a.closers = append(a.closers, c.Close)
	}

	gen := llm.NewItineraryGenerator(provider, llm.OptionsFromConfig(cfg.LLM, cfg.Planner), logger, tele)

	a.planner = planner.New(planner.Deps{
		Generator: gen,
		Weather:   weather,
		Geocode:   geocode,
		Tips:      gen,
		Metrics:   a.metrics,
	}, planner.Options{TipsEnabled: cfg.Planner.TipsEnabled}, logger, tele)

	logger.Info("Planner initialized",
		zap.String("llm_provider", provider.Name()),
		zap.String("weather_provider", weatherSvc.Name()),
		zap.String("geocode_provider", geocodeSvc.Name()),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.String("cache_backend", cfg.Cache.Backend))

	return a, nil
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil && log != nil {
			log.Warn("Failed to close resource", zap.Error(err))
		}
	}
}

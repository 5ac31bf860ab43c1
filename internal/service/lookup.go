package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/vzahanych/trip-planner-app/internal/cache"
	"github.com/vzahanych/trip-planner-app/internal/trip"
	"github.com/vzahanych/trip-planner-app/pkg/logger"
	"github.com/vzahanych/trip-planner-app/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// CallRecorder receives one notification per provider call.
type CallRecorder interface {
	RecordProviderCall(ctx context.Context, provider string, success bool)
}

// WeatherLookup turns a WeatherService into a best-effort lookup: failures
// become trip.WeatherUnavailable and never reach the caller as errors.
type WeatherLookup struct {
	svc     WeatherService
	memo    *cache.Memo[trip.WeatherResult]
	logger  *zap.Logger
	tele    *telemetry.Telemetry
	metrics CallRecorder
}

func NewWeatherLookup(svc WeatherService, store cache.Store, logger *zap.Logger, tele *telemetry.Telemetry) *WeatherLookup {
	l := &WeatherLookup{
		svc:    svc,
		logger: logger,
		tele:   tele,
	}
	if store != nil {
		l.memo = cache.NewMemo[trip.WeatherResult]("weather", store, logger)
	}
	return l
}

// SetMetricsRecorder wires provider call and cache metrics.
func (l *WeatherLookup) SetMetricsRecorder(metrics interface {
	CallRecorder
	cache.HitRecorder
}) {
	l.metrics = metrics
	if l.memo != nil {
		l.memo.SetMetricsRecorder(metrics)
	}
}

func (l *WeatherLookup) Lookup(ctx context.Context, city string) trip.WeatherResult {
	ctx, span := l.tele.GetTracer().Start(ctx, "lookup.weather")
	defer span.End()
	span.SetAttributes(
		attribute.String("city", city),
		attribute.String("provider", l.svc.Name()),
	)

	result := l.memo.GetOrFetch(ctx, "weather:"+cacheKey(city), func(ctx context.Context) (trip.WeatherResult, bool) {
		cw, err := l.call(ctx, city)
		if err != nil {
			kind := KindOf(err)
			logger.ForContext(ctx, l.logger).Warn("Weather lookup failed",
				zap.String("provider", l.svc.Name()),
				zap.String("city", city),
				zap.String("kind", string(kind)),
				zap.Error(err))
			l.tele.RecordError(ctx, err, map[string]string{"kind": string(kind)})
			return trip.WeatherUnavailable(kind), false
		}
		return trip.Weather(cw.TemperatureC, cw.Condition), true
	})

	span.SetAttributes(attribute.Bool("available", result.Available()))
	return result
}

func (l *WeatherLookup) call(ctx context.Context, city string) (cw CurrentWeather, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = lookupErr(l.svc.Name(), trip.FailureParse, fmt.Errorf("panic: %v", r))
		}
		if l.metrics != nil {
			l.metrics.RecordProviderCall(ctx, l.svc.Name(), err == nil)
		}
	}()
	return l.svc.CurrentWeather(ctx, city)
}

// GeocodeLookup is the best-effort counterpart of WeatherLookup for
// coordinates.
type GeocodeLookup struct {
	svc     GeocodeService
	memo    *cache.Memo[trip.GeoCoordinates]
	logger  *zap.Logger
	tele    *telemetry.Telemetry
	metrics CallRecorder
}

func NewGeocodeLookup(svc GeocodeService, store cache.Store, logger *zap.Logger, tele *telemetry.Telemetry) *GeocodeLookup {
	l := &GeocodeLookup{
		svc:    svc,
		logger: logger,
		tele:   tele,
	}
	if store != nil {
		l.memo = cache.NewMemo[trip.GeoCoordinates]("geocode", store, logger)
	}
	return l
}

func (l *GeocodeLookup) SetMetricsRecorder(metrics interface {
	CallRecorder
	cache.HitRecorder
}) {
	l.metrics = metrics
	if l.memo != nil {
		l.memo.SetMetricsRecorder(metrics)
	}
}

func (l *GeocodeLookup) Lookup(ctx context.Context, city string) trip.GeoCoordinates {
	ctx, span := l.tele.GetTracer().Start(ctx, "lookup.geocode")
	defer span.End()
	span.SetAttributes(
		attribute.String("city", city),
		attribute.String("provider", l.svc.Name()),
	)

	result := l.memo.GetOrFetch(ctx, "geocode:"+cacheKey(city), func(ctx context.Context) (trip.GeoCoordinates, bool) {
		loc, err := l.call(ctx, city)
		if err != nil {
			kind := KindOf(err)
			logger.ForContext(ctx, l.logger).Warn("Geocode lookup failed",
				zap.String("provider", l.svc.Name()),
				zap.String("city", city),
				zap.String("kind", string(kind)),
				zap.Error(err))
			l.tele.RecordError(ctx, err, map[string]string{"kind": string(kind)})
			return trip.CoordinatesUnavailable(kind), false
		}
		return trip.Coordinates(loc.Latitude, loc.Longitude), true
	})

	span.SetAttributes(attribute.Bool("available", result.Available()))
	return result
}

func (l *GeocodeLookup) call(ctx context.Context, city string) (loc Location, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = lookupErr(l.svc.Name(), trip.FailureParse, fmt.Errorf("panic: %v", r))
		}
		if l.metrics != nil {
			l.metrics.RecordProviderCall(ctx, l.svc.Name(), err == nil)
		}
	}()
	return l.svc.Geocode(ctx, city)
}

func cacheKey(city string) string {
	return strings.ToLower(strings.Join(strings.Fields(city), " "))
}

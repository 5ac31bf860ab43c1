package planner

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vzahanych/trip-planner-app/internal/trip"
	"github.com/vzahanych/trip-planner-app/pkg/logger"
	"github.com/vzahanych/trip-planner-app/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type ItineraryGenerator interface {
	Generate(ctx context.Context, req trip.Request) trip.ItineraryResult
}

type TipsGenerator interface {
	Tips(ctx context.Context, city string) (string, error)
}

type WeatherLookup interface {
	Lookup(ctx context.Context, city string) trip.WeatherResult
}

type GeocodeLookup interface {
	Lookup(ctx context.Context, city string) trip.GeoCoordinates
}

type BudgetSplitter interface {
	Split(total trip.Money) trip.BudgetBreakdown
}

// MetricsRecorder interface for recording run outcomes
type MetricsRecorder interface {
	RecordRun(ctx context.Context, state State, duration time.Duration)
}

// Deps are the collaborators of an Orchestrator. Tips and Metrics are
// optional; a nil Splitter uses the default ratios.
type Deps struct {
	Generator ItineraryGenerator
	Weather   WeatherLookup
	Geocode   GeocodeLookup
	Splitter  BudgetSplitter
	Tips      TipsGenerator
	Metrics   MetricsRecorder
}

type Options struct {
	TipsEnabled bool
}

type Orchestrator struct {
	deps   Deps
	opts   Options
	logger *zap.Logger
	tele   *telemetry.Telemetry
	now    func() time.Time
}

func New(deps Deps, opts Options, logger *zap.Logger, tele *telemetry.Telemetry) *Orchestrator {
	if deps.Splitter == nil {
		deps.Splitter = trip.FixedRatioSplitter{}
	}
	return &Orchestrator{
		deps:   deps,
		opts:   opts,
		logger: logger,
		tele:   tele,
		now:    time.Now,
	}
}

// Run processes one submission from Idle to Ready or Failed. Every call
// starts a new Run; nothing from earlier runs is reused.
func (o *Orchestrator) Run(ctx context.Context, form trip.Form) *Run {
	id := logger.RequestIDFromContext(ctx)
	if id == "" {
		id = uuid.New().String()
		ctx = logger.WithRequestID(ctx, id)
	}

	ctx, span := o.tele.GetTracer().Start(ctx, "planner.Run")
	defer span.End()
	span.SetAttributes(attribute.String("run_id", id))

	log := logger.ForContext(ctx, o.logger)
	start := o.now()
	run := newRun(id, o.now)

	step := func(to State) {
		from := run.State
		run.advance(to)
		log.Debug("Run state changed", zap.String("from", string(from)), zap.String("to", string(to)))
	}
	defer func() {
		span.SetAttributes(attribute.String("state", string(run.State)))
		if o.deps.Metrics != nil {
			o.deps.Metrics.RecordRun(ctx, run.State, o.now().Sub(start))
		}
	}()

	step(StateValidating)
	req, err := trip.NewRequest(form)
	if err != nil {
		log.Info("Trip request rejected", zap.Error(err))
		run.Err = err
		step(StateFailed)
		return run
	}
	span.SetAttributes(attribute.String("destination", req.Destination()))

	step(StateGeneratingItinerary)
	itinerary := o.deps.Generator.Generate(ctx, req)
	if !itinerary.OK() {
		genErr := &GenerationError{Failure: *itinerary.Failure}
		o.tele.RecordError(ctx, genErr, map[string]string{"failure_kind": string(itinerary.Failure.Kind)})
		run.Err = genErr
		step(StateFailed)
		return run
	}

	step(StateEnrichingContext)
	bundle := o.enrich(ctx, req)
	bundle.Itinerary = itinerary
	bundle.GeneratedAt = o.now().UTC()

	run.Bundle = bundle
	step(StateReady)
	log.Info("Trip plan ready",
		zap.String("destination", req.Destination()),
		zap.Bool("weather_available", bundle.Weather.Available()),
		zap.Bool("location_available", bundle.Location.Available()),
		zap.Duration("duration", o.now().Sub(start)))

	return run
}

// enrich runs the independent best-effort lookups concurrently. None of
// them can fail the run.
func (o *Orchestrator) enrich(ctx context.Context, req trip.Request) *trip.Bundle {
	ctx, span := o.tele.GetTracer().Start(ctx, "planner.enrich")
	defer span.End()

	b := &trip.Bundle{Request: req}
	city := req.Destination()

	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		b.Weather = o.deps.Weather.Lookup(ctx, city)
	}()
	go func() {
		defer wg.Done()
		b.Location = o.deps.Geocode.Lookup(ctx, city)
	}()
	go func() {
		defer wg.Done()
		b.Budget = o.deps.Splitter.Split(req.Budget())
	}()

	if o.opts.TipsEnabled && o.deps.Tips != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tips, err := o.deps.Tips.Tips(ctx, city)
			if err != nil {
				logger.ForContext(ctx, o.logger).Warn("Travel tips unavailable", zap.Error(err))
				return
			}
			b.Tips = tips
		}()
	}

	wg.Wait()

	span.SetAttributes(
		attribute.Bool("weather_available", b.Weather.Available()),
		attribute.Bool("location_available", b.Location.Available()),
		attribute.Bool("tips_available", b.Tips != ""),
	)
	return b
}

package llm

import (
	"context"
	"time"

	"github.com/vzahanych/trip-planner-app/internal/config"
	"github.com/vzahanych/trip-planner-app/internal/trip"
	"github.com/vzahanych/trip-planner-app/pkg/logger"
	"github.com/vzahanych/trip-planner-app/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// GenerationOptions bounds every request the generator sends.
type GenerationOptions struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
	Currency    string
}

func OptionsFromConfig(llmCfg config.LLMConfig, plannerCfg config.PlannerConfig) GenerationOptions {
	return GenerationOptions{
		MaxTokens:   llmCfg.MaxTokens,
		Temperature: llmCfg.Temperature,
		Timeout:     time.Duration(llmCfg.Timeout) * time.Second,
		Currency:    plannerCfg.Currency,
	}
}

// ItineraryGenerator turns a trip request into a single completion call.
type ItineraryGenerator struct {
	provider TextProvider
	opts     GenerationOptions
	logger   *zap.Logger
	tele     *telemetry.Telemetry
}

func NewItineraryGenerator(provider TextProvider, opts GenerationOptions, logger *zap.Logger, tele *telemetry.Telemetry) *ItineraryGenerator {
	return &ItineraryGenerator{
		provider: provider,
		opts:     opts,
		logger:   logger,
		tele:     tele,
	}
}

// Generate sends exactly one request. Provider failures are returned as the
// failure variant, never retried.
func (g *ItineraryGenerator) Generate(ctx context.Context, req trip.Request) trip.ItineraryResult {
	ctx, span := g.tele.GetTracer().Start(ctx, "llm.generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("provider", g.provider.Name()),
		attribute.String("destination", req.Destination()),
		attribute.Int("duration", req.Duration()),
	)

	log := logger.ForContext(ctx, g.logger)
	start := time.Now()

	text, err := g.complete(ctx, RenderItineraryPrompt(req, g.opts.Currency))
	if err != nil {
		failure := AsFailure(err)
		span.SetAttributes(attribute.Bool("success", false), attribute.String("failure_kind", string(failure.Kind)))
		g.tele.RecordError(ctx, err, map[string]string{"failure_kind": string(failure.Kind)})
		log.Error("Itinerary generation failed",
			zap.String("provider", g.provider.Name()),
			zap.String("kind", string(failure.Kind)),
			zap.Int("status_code", failure.StatusCode),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return trip.ItineraryFailure(failure)
	}

	span.SetAttributes(attribute.Bool("success", true), attribute.Int("length", len(text)))
	log.Info("Itinerary generated",
		zap.String("provider", g.provider.Name()),
		zap.Int("length", len(text)),
		zap.Duration("duration", time.Since(start)))

	return trip.ItinerarySuccess(text)
}

// Tips asks for budget travel tips about city.
func (g *ItineraryGenerator) Tips(ctx context.Context, city string) (string, error) {
	ctx, span := g.tele.GetTracer().Start(ctx, "llm.tips")
	defer span.End()
	span.SetAttributes(attribute.String("provider", g.provider.Name()))

	text, err := g.complete(ctx, RenderTipsPrompt(city))
	if err != nil {
		g.tele.RecordError(ctx, err, nil)
		return "", err
	}
	return text, nil
}

func (g *ItineraryGenerator) complete(ctx context.Context, prompt string) (string, error) {
	if g.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.opts.Timeout)
		defer cancel()
	}

	return g.provider.Complete(ctx, Completion{
		System:      SystemInstruction,
		Prompt:      prompt,
		MaxTokens:   g.opts.MaxTokens,
		Temperature: g.opts.Temperature,
	})
}

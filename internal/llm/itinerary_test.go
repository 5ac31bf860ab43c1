package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vzahanych/trip-planner-app/internal/trip"
	"go.uber.org/zap/zaptest"
)

type stubProvider struct {
	calls    []Completion
	deadline bool
	text     string
	err      error
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Complete(ctx context.Context, c Completion) (string, error) {
	s.calls = append(s.calls, c)
	_, s.deadline = ctx.Deadline()
	return s.text, s.err
}

func TestGenerateSendsOneRequest(t *testing.T) {
	p := &stubProvider{text: "Day 1: Calangute"}
	g := NewItineraryGenerator(p, GenerationOptions{MaxTokens: 900, Temperature: 0.7, Timeout: time.Minute, Currency: "INR"}, zaptest.NewLogger(t), nil)

	res := g.Generate(context.Background(), goaRequest(t))
	require.True(t, res.OK())
	assert.Equal(t, "Day 1: Calangute", res.Text)

	require.Len(t, p.calls, 1)
	assert.Equal(t, SystemInstruction, p.calls[0].System)
	assert.Equal(t, 900, p.calls[0].MaxTokens)
	assert.Equal(t, 0.7, p.calls[0].Temperature)
	assert.Equal(t, RenderItineraryPrompt(goaRequest(t), "INR"), p.calls[0].Prompt)
	assert.True(t, p.deadline)
}

func TestGenerateReturnsFailureVerbatim(t *testing.T) {
	p := &stubProvider{err: &ProviderError{
		Provider:   "stub",
		Kind:       trip.GenerationAuth,
		StatusCode: 401,
		Detail:     "Invalid username or password.",
	}}
	g := NewItineraryGenerator(p, GenerationOptions{MaxTokens: 900}, zaptest.NewLogger(t), nil)

	res := g.Generate(context.Background(), goaRequest(t))
	require.False(t, res.OK())
	assert.Empty(t, res.Text)
	assert.Equal(t, trip.GenerationFailure{Kind: trip.GenerationAuth, StatusCode: 401, Detail: "Invalid username or password."}, *res.Failure)
	assert.Len(t, p.calls, 1)
}

func TestGenerateUntypedErrorIsTransport(t *testing.T) {
	p := &stubProvider{err: errors.New("dial tcp: connection refused")}
	g := NewItineraryGenerator(p, GenerationOptions{}, zaptest.NewLogger(t), nil)

	res := g.Generate(context.Background(), goaRequest(t))
	require.False(t, res.OK())
	assert.Equal(t, trip.GenerationTransport, res.Failure.Kind)
	assert.Equal(t, "dial tcp: connection refused", res.Failure.Detail)
	assert.False(t, p.deadline)
}

func TestTips(t *testing.T) {
	p := &stubProvider{text: "1. Travel off-season"}
	g := NewItineraryGenerator(p, GenerationOptions{MaxTokens: 900}, zaptest.NewLogger(t), nil)

	tips, err := g.Tips(context.Background(), "Goa")
	require.NoError(t, err)
	assert.Equal(t, "1. Travel off-season", tips)
	assert.Equal(t, RenderTipsPrompt("Goa"), p.calls[0].Prompt)

	p.err = errors.New("boom")
	_, err = g.Tips(context.Background(), "Goa")
	assert.Error(t, err)
}

func TestNewProviderSelectsStrategy(t *testing.T) {
	p, err := NewProvider(context.Background(), configFor("anthropic"))
	require.NoError(t, err)
	assert.Equal(t, "anthropic", p.Name())

	p, err = NewProvider(context.Background(), configFor("openai"))
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())

	_, err = NewProvider(context.Background(), configFor("markov"))
	assert.Error(t, err)
}

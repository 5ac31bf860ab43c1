package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/vzahanych/trip-planner-app/internal/config"
	"github.com/vzahanych/trip-planner-app/internal/trip"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// GeminiProvider generates text with Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, cfg config.LLMConfig) (*GeminiProvider, error) {
	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(cfg.BaseURL))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		model:  orDefault(cfg.Model, defaultGeminiModel),
	}, nil
}

func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Close releases the underlying client.
func (p *GeminiProvider) Close() error {
	return p.client.Close()
}

func (p *GeminiProvider) Complete(ctx context.Context, c Completion) (string, error) {
	model := p.client.GenerativeModel(p.model)
	if c.System != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(c.System)}}
	}
	model.SetTemperature(float32(c.Temperature))
	if c.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(c.MaxTokens))
	}

	resp, err := model.GenerateContent(ctx, genai.Text(c.Prompt))
	if err != nil {
		return "", classifyGeminiError(err)
	}

	text := geminiText(resp)
	if strings.TrimSpace(text) == "" {
		return "", emptyResponseError(p.Name())
	}
	return text, nil
}

func geminiText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	return text.String()
}

// classifyGeminiError maps REST (googleapi) and gRPC status errors onto
// generation failure kinds.
func classifyGeminiError(err error) *ProviderError {
	pe := &ProviderError{Provider: "gemini", Kind: trip.GenerationProvider, Detail: err.Error(), Err: err}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		pe.StatusCode = gerr.Code
		pe.Kind = kindForStatus(gerr.Code)
		if gerr.Message != "" {
			pe.Detail = gerr.Message
		}
		return pe
	}

	if isTransportError(err) {
		pe.Kind = trip.GenerationTransport
		return pe
	}

	if st, ok := status.FromError(err); ok {
		pe.Detail = st.Message()
		switch st.Code() {
		case codes.Unauthenticated:
			pe.Kind = trip.GenerationAuth
			pe.StatusCode = http.StatusUnauthorized
		case codes.PermissionDenied:
			pe.Kind = trip.GenerationAuth
			pe.StatusCode = http.StatusForbidden
		case codes.DeadlineExceeded, codes.Unavailable, codes.Canceled:
			pe.Kind = trip.GenerationTransport
		}
	}
	return pe
}

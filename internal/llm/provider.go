package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/vzahanych/trip-planner-app/internal/config"
)

// Completion is one single-turn generation request.
type Completion struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// TextProvider sends a Completion to a hosted language model. Errors are
// *ProviderError.
type TextProvider interface {
	Complete(ctx context.Context, c Completion) (string, error)
	Name() string
}

const (
	defaultOpenAIBaseURL    = "https://router.huggingface.co/v1"
	defaultOpenAIModel      = "HuggingFaceH4/zephyr-7b-beta:featherless-ai"
	defaultAnthropicBaseURL = "https://api.anthropic.com/v1"
	defaultAnthropicModel   = "claude-sonnet-4-20250514"
	defaultGeminiModel      = "gemini-2.0-flash"
)

// NewProvider builds the provider selected by cfg.Provider.
func NewProvider(ctx context.Context, cfg config.LLMConfig) (TextProvider, error) {
	switch cfg.Provider {
	case "", "openai":
		return NewOpenAIProvider(cfg), nil
	case "anthropic":
		return NewAnthropicProvider(cfg), nil
	case "gemini":
		return NewGeminiProvider(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func httpClient(timeoutSeconds int) *http.Client {
	timeout := 60 * time.Second
	if timeoutSeconds > 0 {
		timeout = time.Duration(timeoutSeconds) * time.Second
	}
	return &http.Client{Timeout: timeout}
}

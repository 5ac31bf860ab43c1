package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/vzahanych/trip-planner-app/internal/config"
	"github.com/vzahanych/trip-planner-app/internal/trip"
)

const anthropicVersion = "2023-06-01"

// AnthropicProvider calls the Anthropic Messages API.
type AnthropicProvider struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

type messagesRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	System      string        `json:"system,omitempty"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func NewAnthropicProvider(cfg config.LLMConfig) *AnthropicProvider {
	return &AnthropicProvider{
		baseURL: strings.TrimRight(orDefault(cfg.BaseURL, defaultAnthropicBaseURL), "/"),
		apiKey:  cfg.APIKey,
		model:   orDefault(cfg.Model, defaultAnthropicModel),
		client:  httpClient(cfg.Timeout),
	}
}

func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

func (p *AnthropicProvider) Complete(ctx context.Context, c Completion) (string, error) {
	payload := messagesRequest{
		Model:       p.model,
		MaxTokens:   c.MaxTokens,
		System:      c.System,
		Temperature: c.Temperature,
		Messages:    []chatMessage{{Role: "user", Content: c.Prompt}},
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode messages request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/messages", bytes.NewReader(b))
	if err != nil {
		return "", transportError(p.Name(), err)
	}
	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", transportError(p.Name(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", transportError(p.Name(), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", statusError(p.Name(), resp.StatusCode, body)
	}

	var out messagesResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", &ProviderError{
			Provider:   p.Name(),
			Kind:       trip.GenerationProvider,
			StatusCode: resp.StatusCode,
			Detail:     fmt.Sprintf("undecodable response: %v", err),
			Err:        err,
		}
	}

	var text strings.Builder
	for _, block := range out.Content {
		if block.Type == "" || block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", emptyResponseError(p.Name())
	}

	return text.String(), nil
}

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

// OpenAIProvider talks to any OpenAI-compatible /chat/completions endpoint,
// including the Hugging Face inference router.
type OpenAIProvider struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func NewOpenAIProvider(cfg config.LLMConfig) *OpenAIProvider {
	return &OpenAIProvider{
		baseURL: strings.TrimRight(orDefault(cfg.BaseURL, defaultOpenAIBaseURL), "/"),
		apiKey:  cfg.APIKey,
		model:   orDefault(cfg.Model, defaultOpenAIModel),
		client:  httpClient(cfg.Timeout),
	}
}

func (p *OpenAIProvider) Name() string {
	return "openai"
}

func (p *OpenAIProvider) Complete(ctx context.Context, c Completion) (string, error) {
	payload := chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: c.System},
			{Role: "user", Content: c.Prompt},
		},
		MaxTokens:   c.MaxTokens,
		Temperature: c.Temperature,
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", transportError(p.Name(), err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

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

	var out chatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", &ProviderError{
			Provider:   p.Name(),
			Kind:       trip.GenerationProvider,
			StatusCode: resp.StatusCode,
			Detail:     fmt.Sprintf("undecodable response: %v", err),
			Err:        err,
		}
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", emptyResponseError(p.Name())
	}

	return out.Choices[0].Message.Content, nil
}

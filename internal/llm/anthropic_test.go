package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vzahanych/trip-planner-app/internal/config"
	"github.com/vzahanych/trip-planner-app/internal/trip"
)

func TestAnthropicComplete(t *testing.T) {
	var got messagesRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "sk-ant-test", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"content":[{"type":"text","text":"Day 1: "},{"type":"text","text":"Fort Aguada"}]}`))
	}))
	defer srv.Close()

	p := NewAnthropicProvider(config.LLMConfig{BaseURL: srv.URL, APIKey: "sk-ant-test"})
	text, err := p.Complete(context.Background(), testCompletion())
	require.NoError(t, err)

	assert.Equal(t, "Day 1: Fort Aguada", text)
	assert.Equal(t, defaultAnthropicModel, got.Model)
	assert.Equal(t, SystemInstruction, got.System)
	assert.Equal(t, 900, got.MaxTokens)
	assert.Equal(t, []chatMessage{{Role: "user", Content: "Plan Goa"}}, got.Messages)
}

func TestAnthropicAuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer srv.Close()

	p := NewAnthropicProvider(config.LLMConfig{BaseURL: srv.URL, APIKey: "bad"})
	_, err := p.Complete(context.Background(), testCompletion())
	require.Error(t, err)

	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, trip.GenerationAuth, pe.Kind)
	assert.Equal(t, http.StatusUnauthorized, pe.StatusCode)
	assert.Equal(t, "invalid x-api-key", pe.Detail)
}

func TestAnthropicEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":[]}`))
	}))
	defer srv.Close()

	p := NewAnthropicProvider(config.LLMConfig{BaseURL: srv.URL, APIKey: "k"})
	_, err := p.Complete(context.Background(), testCompletion())
	assert.Equal(t, trip.GenerationEmptyResponse, AsFailure(err).Kind)
}

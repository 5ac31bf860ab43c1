package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/vzahanych/trip-planner-app/internal/trip"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestClassifyGeminiError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantKind   trip.GenerationFailureKind
		wantStatus int
		wantDetail string
	}{
		{
			name:       "rest api key rejected",
			err:        fmt.Errorf("generate: %w", &googleapi.Error{Code: 400, Message: "API key not valid. Please pass a valid API key."}),
			wantKind:   trip.GenerationProvider,
			wantStatus: 400,
			wantDetail: "API key not valid. Please pass a valid API key.",
		},
		{
			name:       "rest permission denied",
			err:        &googleapi.Error{Code: 403, Message: "Permission denied"},
			wantKind:   trip.GenerationAuth,
			wantStatus: 403,
			wantDetail: "Permission denied",
		},
		{
			name:       "grpc unauthenticated",
			err:        status.Error(codes.Unauthenticated, "missing credentials"),
			wantKind:   trip.GenerationAuth,
			wantStatus: http.StatusUnauthorized,
			wantDetail: "missing credentials",
		},
		{
			name:       "grpc quota",
			err:        status.Error(codes.ResourceExhausted, "quota exceeded"),
			wantKind:   trip.GenerationProvider,
			wantDetail: "quota exceeded",
		},
		{
			name:       "grpc unavailable",
			err:        status.Error(codes.Unavailable, "connection refused"),
			wantKind:   trip.GenerationTransport,
			wantDetail: "connection refused",
		},
		{
			name:       "deadline",
			err:        context.DeadlineExceeded,
			wantKind:   trip.GenerationTransport,
			wantDetail: context.DeadlineExceeded.Error(),
		},
		{
			name:       "opaque",
			err:        errors.New("blocked: safety"),
			wantKind:   trip.GenerationProvider,
			wantDetail: "blocked: safety",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pe := classifyGeminiError(tt.err)
			assert.Equal(t, tt.wantKind, pe.Kind)
			assert.Equal(t, tt.wantStatus, pe.StatusCode)
			assert.Equal(t, tt.wantDetail, pe.Detail)
			assert.ErrorIs(t, pe, tt.err)
		})
	}
}

func TestGeminiText(t *testing.T) {
	assert.Empty(t, geminiText(nil))
	assert.Empty(t, geminiText(&genai.GenerateContentResponse{}))

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("Day 1"), genai.Text(": Baga")}},
		}},
	}
	assert.Equal(t, "Day 1: Baga", geminiText(resp))
}

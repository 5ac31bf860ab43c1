package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/vzahanych/trip-planner-app/internal/trip"
)

// ProviderError is a failed generation call. Detail carries the provider's
// own message unchanged.
type ProviderError struct {
	Provider   string
	Kind       trip.GenerationFailureKind
	StatusCode int
	Detail     string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s error (status %d): %s", e.Provider, e.Kind, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s: %s error: %s", e.Provider, e.Kind, e.Detail)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Failure converts e into the failure variant of an itinerary result.
func (e *ProviderError) Failure() trip.GenerationFailure {
	return trip.GenerationFailure{
		Kind:       e.Kind,
		StatusCode: e.StatusCode,
		Detail:     e.Detail,
	}
}

// AsFailure converts any error returned by a TextProvider into a
// GenerationFailure. Untyped errors are treated as transport failures.
func AsFailure(err error) trip.GenerationFailure {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Failure()
	}
	return trip.GenerationFailure{Kind: trip.GenerationTransport, Detail: err.Error()}
}

func transportError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Kind: trip.GenerationTransport, Detail: err.Error(), Err: err}
}

func emptyResponseError(provider string) *ProviderError {
	return &ProviderError{Provider: provider, Kind: trip.GenerationEmptyResponse, Detail: "provider returned no text"}
}

// statusError builds the error for a non-2xx HTTP response.
func statusError(provider string, code int, body []byte) *ProviderError {
	return &ProviderError{
		Provider:   provider,
		Kind:       kindForStatus(code),
		StatusCode: code,
		Detail:     errorDetail(code, body),
	}
}

func kindForStatus(code int) trip.GenerationFailureKind {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return trip.GenerationAuth
	default:
		return trip.GenerationProvider
	}
}

// errorDetail extracts the message from the common {"error":{"message":..}}
// and {"error":"..."} bodies, falling back to the raw body.
func errorDetail(code int, body []byte) string {
	var obj struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &obj); err == nil && len(obj.Error) > 0 {
		var msg struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(obj.Error, &msg); err == nil && msg.Message != "" {
			return msg.Message
		}
		var s string
		if err := json.Unmarshal(obj.Error, &s); err == nil && s != "" {
			return s
		}
	}

	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return http.StatusText(code)
}

func isTransportError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var urlErr *url.Error
	var netErr net.Error
	return errors.As(err, &urlErr) || errors.As(err, &netErr)
}

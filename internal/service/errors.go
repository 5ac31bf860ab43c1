package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"

	"github.com/vzahanych/trip-planner-app/internal/trip"
)

// LookupError is the typed failure of a weather or geocoding provider call.
type LookupError struct {
	Provider string
	Kind     trip.FailureKind
	Err      error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s lookup failed (%s): %v", e.Provider, e.Kind, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

func lookupErr(provider string, kind trip.FailureKind, err error) *LookupError {
	return &LookupError{Provider: provider, Kind: kind, Err: err}
}

// KindOf classifies err. Untyped errors count as network failures.
func KindOf(err error) trip.FailureKind {
	var le *LookupError
	if errors.As(err, &le) {
		return le.Kind
	}
	return trip.FailureNetwork
}

func isTransportError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var urlErr *url.Error
	var netErr net.Error
	return errors.As(err, &urlErr) || errors.As(err, &netErr)
}

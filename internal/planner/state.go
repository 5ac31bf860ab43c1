package planner

import (
	"fmt"
	"time"

	"github.com/vzahanych/trip-planner-app/internal/trip"
)

type State string

const (
	StateIdle                State = "idle"
	StateValidating          State = "validating"
	StateGeneratingItinerary State = "generating_itinerary"
	StateEnrichingContext    State = "enriching_context"
	StateReady               State = "ready"
	StateFailed              State = "failed"
)

// allowed lists the legal successors of each state.
var allowed = map[State][]State{
	StateIdle:                {StateValidating},
	StateValidating:          {StateGeneratingItinerary, StateFailed},
	StateGeneratingItinerary: {StateEnrichingContext, StateFailed},
	StateEnrichingContext:    {StateReady},
}

func (s State) Terminal() bool {
	return s == StateReady || s == StateFailed
}

func canTransition(from, to State) bool {
	for _, next := range allowed[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Transition struct {
	From State     `json:"from"`
	To   State     `json:"to"`
	At   time.Time `json:"at"`
}

// GenerationError aborts a run when the itinerary could not be generated.
type GenerationError struct {
	Failure trip.GenerationFailure
}

func (e *GenerationError) Error() string {
	if e.Failure.StatusCode != 0 {
		return fmt.Sprintf("itinerary generation failed (%s, status %d): %s", e.Failure.Kind, e.Failure.StatusCode, e.Failure.Detail)
	}
	return fmt.Sprintf("itinerary generation failed (%s): %s", e.Failure.Kind, e.Failure.Detail)
}

// Run is the record of one submission. Bundle is set only in StateReady and
// Err only in StateFailed.
type Run struct {
	ID          string       `json:"id"`
	State       State        `json:"state"`
	Transitions []Transition `json:"transitions"`
	Bundle      *trip.Bundle `json:"bundle,omitempty"`
	Err         error        `json:"-"`

	now func() time.Time
}

func newRun(id string, now func() time.Time) *Run {
	return &Run{ID: id, State: StateIdle, now: now}
}

func (r *Run) advance(to State) {
	if !canTransition(r.State, to) {
		panic(fmt.Sprintf("planner: illegal transition %s -> %s", r.State, to))
	}
	r.Transitions = append(r.Transitions, Transition{From: r.State, To: to, At: r.now()})
	r.State = to
}

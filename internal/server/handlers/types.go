package handlers

import (
	"github.com/vzahanych/trip-planner-app/internal/planner"
	"github.com/vzahanych/trip-planner-app/internal/server/utils"
	"github.com/vzahanych/trip-planner-app/internal/trip"
)

// ErrorResponse represents an error response with validation
type ErrorResponse struct {
	Error   string `json:"error" validate:"required,min=1,max=500"`
	Code    string `json:"code,omitempty" validate:"omitempty,min=1,max=50"`
	Details string `json:"details,omitempty" validate:"omitempty,max=1000"`
}

// ValidationErrorResponse lists every invalid field of a trip request.
type ValidationErrorResponse struct {
	ErrorResponse
	Fields []trip.FieldError `json:"fields"`
}

// GenerationErrorResponse carries the language-model provider's failure
// unchanged.
type GenerationErrorResponse struct {
	ErrorResponse
	Kind           trip.GenerationFailureKind `json:"kind"`
	ProviderStatus int                        `json:"provider_status,omitempty"`
}

type BudgetSummary struct {
	Total          trip.Money `json:"total"`
	EstimatedSpend trip.Money `json:"estimated_spend"`
	Remaining      trip.Money `json:"remaining"`
}

// PlanResponse is the JSON body of a successful planning run.
type PlanResponse struct {
	RunID         string               `json:"run_id"`
	State         planner.State        `json:"state"`
	Transitions   []planner.Transition `json:"transitions"`
	Plan          *trip.Bundle         `json:"plan"`
	BudgetSummary BudgetSummary        `json:"budget_summary"`
	Currency      string               `json:"currency"`
}

// ExportRequest is the body of an export call; Format comes from the path.
type ExportRequest struct {
	Format    string `uri:"format" form:"-" json:"-" validate:"export_format"`
	Itinerary string `form:"itinerary" json:"itinerary" validate:"required,max=200000"`
}

// HealthResponse represents health check response with validation
type HealthResponse struct {
	Status    string            `json:"status" validate:"required,oneof=ok alive ready degraded unavailable"`
	Uptime    string            `json:"uptime" validate:"required"`
	Timestamp string            `json:"timestamp,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Checks    map[string]string `json:"checks,omitempty"`
}

func validationResponse(fields []utils.ValidationError) ErrorResponse {
	return ErrorResponse{
		Error:   "Invalid request parameters",
		Code:    "INVALID_PARAMS",
		Details: utils.Messages(fields),
	}
}

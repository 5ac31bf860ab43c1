package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vzahanych/trip-planner-app/internal/planner"
	"github.com/vzahanych/trip-planner-app/internal/server/utils"
	"github.com/vzahanych/trip-planner-app/internal/trip"
	"go.uber.org/zap"
)

// Planner runs one trip planning submission.
type Planner interface {
	Run(ctx context.Context, form trip.Form) *planner.Run
}

type PlanHandler struct {
	planner  Planner
	currency string
	logger   *zap.Logger
}

func NewPlanHandler(p Planner, currency string, logger *zap.Logger) *PlanHandler {
	return &PlanHandler{
		planner:  p,
		currency: currency,
		logger:   logger,
	}
}

// CreatePlan handles POST /api/v1/plans.
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	ctx := utils.GetContextFromGinContext(c)
	reqLogger := utils.RequestLogger(c, h.logger)

	var form trip.Form
	if err := c.ShouldBind(&form); err != nil {
		reqLogger.Warn("Invalid request parameters", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request parameters",
			Code:    "INVALID_PARAMS",
			Details: err.Error(),
		})
		return
	}

	run := h.planner.Run(ctx, form)

	var verr *trip.ValidationError
	var genErr *planner.GenerationError
	switch {
	case run.State == planner.StateReady:
		reqLogger.Info("Plan request completed", zap.String("destination", run.Bundle.Request.Destination()))
		c.JSON(http.StatusOK, h.planResponse(run))
	case errors.As(run.Err, &verr):
		c.JSON(http.StatusUnprocessableEntity, ValidationErrorResponse{
			ErrorResponse: ErrorResponse{
				Error:   "Invalid trip request",
				Code:    "VALIDATION_ERROR",
				Details: verr.Error(),
			},
			Fields: verr.Fields,
		})
	case errors.As(run.Err, &genErr):
		c.JSON(http.StatusBadGateway, GenerationErrorResponse{
			ErrorResponse: ErrorResponse{
				Error:   "Failed to generate itinerary",
				Code:    "GENERATION_ERROR",
				Details: genErr.Failure.Detail,
			},
			Kind:           genErr.Failure.Kind,
			ProviderStatus: genErr.Failure.StatusCode,
		})
	default:
		reqLogger.Error("Plan run ended without a result", zap.String("state", string(run.State)), zap.Error(run.Err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Failed to plan trip",
			Code:  "INTERNAL_ERROR",
		})
	}
}

func (h *PlanHandler) planResponse(run *planner.Run) PlanResponse {
	b := run.Bundle
	return PlanResponse{
		RunID:       run.ID,
		State:       run.State,
		Transitions: run.Transitions,
		Plan:        b,
		BudgetSummary: BudgetSummary{
			Total:          b.Request.Budget(),
			EstimatedSpend: b.Budget.Total(),
			Remaining:      b.Budget.Remaining(b.Request.Budget()),
		},
		Currency: h.currency,
	}
}

// Index renders the empty planning form.
func (h *PlanHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", h.page(trip.Form{
		Duration:       3,
		Budget:         15000,
		TravelStyle:    string(trip.TravelSolo),
		FoodPreference: string(trip.FoodLocalCuisine),
		Accommodation:  string(trip.StayBudgetHotel),
	}))
}

// SubmitForm handles POST /plan from the HTML form. A failed run shows a
// single error and nothing else.
func (h *PlanHandler) SubmitForm(c *gin.Context) {
	ctx := utils.GetContextFromGinContext(c)

	var form trip.Form
	if err := c.ShouldBind(&form); err != nil {
		page := h.page(form)
		page.Error = "Please check the form: " + err.Error()
		c.HTML(http.StatusBadRequest, "index.html", page)
		return
	}

	run := h.planner.Run(ctx, form)
	page := h.page(form)

	var verr *trip.ValidationError
	var genErr *planner.GenerationError
	switch {
	case run.State == planner.StateReady:
		page.Plan = newPlanView(run.Bundle, h.currency)
		c.HTML(http.StatusOK, "index.html", page)
	case errors.As(run.Err, &verr):
		for _, f := range verr.Fields {
			page.FieldErrors[f.Field] = f.Message
		}
		c.HTML(http.StatusUnprocessableEntity, "index.html", page)
	case errors.As(run.Err, &genErr):
		page.Error = "Could not generate the itinerary: " + genErr.Failure.Detail
		c.HTML(http.StatusBadGateway, "index.html", page)
	default:
		page.Error = "Could not plan the trip"
		c.HTML(http.StatusInternalServerError, "index.html", page)
	}
}

type pageData struct {
	Form            trip.Form
	Currency        string
	TravelStyles    []trip.TravelStyle
	FoodPreferences []trip.FoodPreference
	Accommodations  []trip.Accommodation
	FieldErrors     map[string]string
	Error           string
	Plan            *planView
}

func (h *PlanHandler) page(form trip.Form) *pageData {
	return &pageData{
		Form:            form,
		Currency:        h.currency,
		TravelStyles:    trip.TravelStyles,
		FoodPreferences: trip.FoodPreferences,
		Accommodations:  trip.Accommodations,
		FieldErrors:     map[string]string{},
	}
}

type budgetRow struct {
	Category trip.Category
	Amount   string
	Share    string
}

type planView struct {
	Destination    string
	Duration       int
	Itinerary      string
	Weather        string
	Coordinates    string
	MapURL         string
	Budget         []budgetRow
	EstimatedSpend string
	Remaining      string
	Tips           string
}

func newPlanView(b *trip.Bundle, currency string) *planView {
	v := &planView{
		Destination:    b.Request.Destination(),
		Duration:       b.Request.Duration(),
		Itinerary:      b.Itinerary.Text,
		Weather:        "Weather unavailable",
		EstimatedSpend: b.Budget.Total().Format(currency),
		Remaining:      b.Budget.Remaining(b.Request.Budget()).Format(currency),
		Tips:           b.Tips,
	}

	if b.Weather.Available() {
		v.Weather = fmt.Sprintf("%.1f°C, %s", *b.Weather.TemperatureC, *b.Weather.Condition)
	}

	if b.Location.Available() {
		lat, lon := *b.Location.Latitude, *b.Location.Longitude
		v.Coordinates = fmt.Sprintf("%.4f, %.4f", lat, lon)
		v.MapURL = fmt.Sprintf("https://www.openstreetmap.org/?mlat=%.6f&mlon=%.6f#map=12/%.6f/%.6f", lat, lon, lat, lon)
	}

	total := b.Request.Budget()
	for _, item := range b.Budget.Items {
		share := "0%"
		if total > 0 {
			share = fmt.Sprintf("%.0f%%", float64(item.Amount)*100/float64(total))
		}
		v.Budget = append(v.Budget, budgetRow{
			Category: item.Category,
			Amount:   item.Amount.Format(currency),
			Share:    share,
		})
	}

	return v
}

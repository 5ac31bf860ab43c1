package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vzahanych/trip-planner-app/pkg/logger"
)

type exportBody struct {
	Format    string `uri:"format" json:"-" validate:"export_format"`
	Itinerary string `json:"itinerary" validate:"required,max=10"`
}

func TestValidateStruct(t *testing.T) {
	assert.Empty(t, ValidateStruct(exportBody{Format: "PDF", Itinerary: "Day 1"}))

	errs := ValidateStruct(exportBody{Format: "docx", Itinerary: "Day 1, Day 2, Day 3"})
	require.Len(t, errs, 2)
	assert.Equal(t, "format", errs[0].Field)
	assert.Equal(t, "format must be one of: pdf, txt", errs[0].Message)
	assert.Equal(t, "itinerary", errs[1].Field)
	assert.Equal(t, "itinerary must be at most 10 characters long", errs[1].Message)
	assert.Equal(t, "format must be one of: pdf, txt; itinerary must be at most 10 characters long", Messages(errs))

	errs = ValidateStruct(exportBody{Format: "txt"})
	require.Len(t, errs, 1)
	assert.Equal(t, "itinerary is required", errs[0].Message)
}

func TestGetRequestIDFromGinContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", GetRequestIDFromGinContext(c))

	c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), "from-ctx"))
	assert.Equal(t, "from-ctx", GetRequestIDFromGinContext(c))

	c.Set(RequestIDKey, "from-gin")
	assert.Equal(t, "from-gin", GetRequestIDFromGinContext(c))
	assert.Equal(t, c.Request.Context(), GetContextFromGinContext(c))
}

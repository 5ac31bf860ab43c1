package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vzahanych/trip-planner-app/internal/config"
	"github.com/vzahanych/trip-planner-app/internal/trip"
)

func goaBundle(t *testing.T) *trip.Bundle {
	t.Helper()
	req, err := trip.NewRequest(trip.Form{
		Destination:    "Goa",
		Duration:       3,
		Budget:         15000,
		TravelStyle:    "Solo",
		FoodPreference: "Vegetarian",
		Accommodation:  "Hostel",
	})
	require.NoError(t, err)

	return &trip.Bundle{
		Request:   req,
		Itinerary: trip.ItinerarySuccess("Day 1: Baga beach"),
		Weather:   trip.Weather(29, "Sunny"),
		Location:  trip.CoordinatesUnavailable(trip.FailureNetwork),
		Budget:    trip.FixedRatioSplitter{}.Split(req.Budget()),
	}
}

func TestPrintBundle(t *testing.T) {
	var out bytes.Buffer
	printBundle(&out, goaBundle(t), "INR")

	s := out.String()
	assert.Contains(t, s, "3-day trip to Goa")
	assert.Contains(t, s, "Day 1: Baga beach")
	assert.Contains(t, s, "Weather: 29.0°C, Sunny")
	assert.Contains(t, s, "Coordinates: unavailable")
	assert.Contains(t, s, "Accommodation  ₹5250")
	assert.Contains(t, s, "Estimated spend: ₹15000, remaining: ₹0")
	assert.NotContains(t, s, "Tips:")
}

func TestWriteExport(t *testing.T) {
	cfg = config.NewDefaultConfig()
	dir := t.TempDir()

	txt := filepath.Join(dir, "plan.txt")
	require.NoError(t, writeExport("txt", txt, "Day 1\nDay 2"))
	data, err := os.ReadFile(txt)
	require.NoError(t, err)
	assert.Equal(t, "Day 1\nDay 2", string(data))

	pdf := filepath.Join(dir, "plan.pdf")
	require.NoError(t, writeExport("pdf", pdf, "Day 1\nDay 2"))
	data, err = os.ReadFile(pdf)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	assert.Error(t, writeExport("docx", filepath.Join(dir, "plan.docx"), "Day 1"))
}

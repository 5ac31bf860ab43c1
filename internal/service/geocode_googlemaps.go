package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/vzahanych/trip-planner-app/internal/config"
	"github.com/vzahanych/trip-planner-app/internal/trip"
	"googlemaps.github.io/maps"
)

// GoogleMapsGeocoder geocodes city names with the Google Geocoding API.
type GoogleMapsGeocoder struct {
	client *maps.Client
}

func NewGoogleMapsGeocoderWithConfig(cfg config.GeocodeConfig) (*GoogleMapsGeocoder, error) {
	opts := []maps.ClientOption{
		maps.WithAPIKey(cfg.APIKey),
		maps.WithHTTPClient(&http.Client{Timeout: timeoutOrDefault(cfg.Timeout)}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, maps.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")))
	}

	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleMapsGeocoder{client: client}, nil
}

func (g *GoogleMapsGeocoder) Name() string {
	return "google-maps"
}

func (g *GoogleMapsGeocoder) Geocode(ctx context.Context, city string) (Location, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: city})
	if err != nil {
		return Location{}, lookupErr(g.Name(), classifyMapsError(err), err)
	}
	if len(results) == 0 {
		return Location{}, lookupErr(g.Name(), trip.FailureEmpty, fmt.Errorf("no results for %q", city))
	}

	loc := results[0].Geometry.Location
	return Location{Latitude: loc.Lat, Longitude: loc.Lng}, nil
}

// classifyMapsError maps the client's "maps: STATUS - message" errors and
// transport failures onto lookup failure kinds.
func classifyMapsError(err error) trip.FailureKind {
	switch {
	case isTransportError(err):
		return trip.FailureNetwork
	case strings.Contains(err.Error(), "ZERO_RESULTS"):
		return trip.FailureEmpty
	case strings.HasPrefix(err.Error(), "maps: "):
		return trip.FailureStatus
	default:
		return trip.FailureParse
	}
}

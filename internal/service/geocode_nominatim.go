package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/vzahanych/trip-planner-app/internal/config"
	"github.com/vzahanych/trip-planner-app/internal/trip"
)

const (
	defaultNominatimURL = "https://nominatim.openstreetmap.org"
	defaultUserAgent    = "travel-app"
)

// NominatimService geocodes city names with OpenStreetMap Nominatim. The
// public instance rejects requests without a User-Agent.
type NominatimService struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func NewNominatimServiceWithConfig(cfg config.GeocodeConfig) *NominatimService {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultNominatimURL
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return &NominatimService{
		baseURL:   baseURL,
		userAgent: ua,
		client: &http.Client{
			Timeout: timeoutOrDefault(cfg.Timeout),
		},
	}
}

func (s *NominatimService) Name() string {
	return "nominatim"
}

func (s *NominatimService) Geocode(ctx context.Context, city string) (Location, error) {
	u, err := url.Parse(s.baseURL + "/search")
	if err != nil {
		return Location{}, lookupErr(s.Name(), trip.FailureNetwork, err)
	}

	q := u.Query()
	q.Set("city", city)
	q.Set("format", "json")
	q.Set("limit", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Location{}, lookupErr(s.Name(), trip.FailureNetwork, err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return Location{}, lookupErr(s.Name(), trip.FailureNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Location{}, lookupErr(s.Name(), trip.FailureStatus,
			fmt.Errorf("API request failed with status: %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Location{}, lookupErr(s.Name(), trip.FailureNetwork, err)
	}

	var places []nominatimPlace
	if err := json.Unmarshal(body, &places); err != nil {
		return Location{}, lookupErr(s.Name(), trip.FailureParse, err)
	}
	if len(places) == 0 {
		return Location{}, lookupErr(s.Name(), trip.FailureEmpty, fmt.Errorf("no results for %q", city))
	}

	lat, latErr := strconv.ParseFloat(places[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(places[0].Lon, 64)
	if err := errors.Join(latErr, lonErr); err != nil {
		return Location{}, lookupErr(s.Name(), trip.FailureParse, err)
	}

	return Location{Latitude: lat, Longitude: lon}, nil
}

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
	"time"

	"github.com/vzahanych/trip-planner-app/internal/config"
	"github.com/vzahanych/trip-planner-app/internal/trip"
)

const defaultWttrURL = "https://wttr.in"

// WttrService reads current conditions from wttr.in's j1 JSON format.
type WttrService struct {
	baseURL string
	client  *http.Client
}

type wttrResponse struct {
	CurrentCondition []struct {
		TempC       string `json:"temp_C"`
		WeatherDesc []struct {
			Value string `json:"value"`
		} `json:"weatherDesc"`
	} `json:"current_condition"`
}

func NewWttrServiceWithConfig(cfg config.WeatherConfig) *WttrService {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultWttrURL
	}
	return &WttrService{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeoutOrDefault(cfg.Timeout),
		},
	}
}

func (s *WttrService) Name() string {
	return "wttr"
}

func (s *WttrService) CurrentWeather(ctx context.Context, city string) (CurrentWeather, error) {
	u := fmt.Sprintf("%s/%s?format=j1", s.baseURL, url.PathEscape(city))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return CurrentWeather{}, lookupErr(s.Name(), trip.FailureNetwork, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return CurrentWeather{}, lookupErr(s.Name(), trip.FailureNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return CurrentWeather{}, lookupErr(s.Name(), trip.FailureStatus,
			fmt.Errorf("API request failed with status: %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return CurrentWeather{}, lookupErr(s.Name(), trip.FailureNetwork, err)
	}

	var result wttrResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return CurrentWeather{}, lookupErr(s.Name(), trip.FailureParse, err)
	}

	if len(result.CurrentCondition) == 0 {
		return CurrentWeather{}, lookupErr(s.Name(), trip.FailureEmpty, errors.New("no current_condition in response"))
	}
	cur := result.CurrentCondition[0]

	temp, err := strconv.ParseFloat(strings.TrimSpace(cur.TempC), 64)
	if err != nil {
		return CurrentWeather{}, lookupErr(s.Name(), trip.FailureParse, fmt.Errorf("temp_C %q: %w", cur.TempC, err))
	}
	if len(cur.WeatherDesc) == 0 || strings.TrimSpace(cur.WeatherDesc[0].Value) == "" {
		return CurrentWeather{}, lookupErr(s.Name(), trip.FailureParse, errors.New("missing weatherDesc"))
	}

	return CurrentWeather{
		TemperatureC: temp,
		Condition:    strings.TrimSpace(cur.WeatherDesc[0].Value),
	}, nil
}

func timeoutOrDefault(seconds int) time.Duration {
	if seconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(seconds) * time.Second
}

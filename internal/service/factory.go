package service

import (
	"fmt"

	"github.com/vzahanych/trip-planner-app/internal/config"
)

func NewWeatherService(cfg config.WeatherConfig) (WeatherService, error) {
	switch cfg.Type {
	case "", "wttr":
		return NewWttrServiceWithConfig(cfg), nil
	default:
		return nil, fmt.Errorf("unknown weather type %q", cfg.Type)
	}
}

func NewGeocodeService(cfg config.GeocodeConfig) (GeocodeService, error) {
	switch cfg.Type {
	case "", "nominatim":
		return NewNominatimServiceWithConfig(cfg), nil
	case "google-maps":
		return NewGoogleMapsGeocoderWithConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown geocode type %q", cfg.Type)
	}
}

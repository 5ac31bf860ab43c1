package service

import "context"

// CurrentWeather is the parsed current condition at a place.
type CurrentWeather struct {
	TemperatureC float64
	Condition    string
}

// Location is a geocoded point.
type Location struct {
	Latitude  float64
	Longitude float64
}

type WeatherService interface {
	CurrentWeather(ctx context.Context, city string) (CurrentWeather, error)
	Name() string
}

type GeocodeService interface {
	Geocode(ctx context.Context, city string) (Location, error)
	Name() string
}

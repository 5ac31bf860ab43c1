package trip

import "time"

// FailureKind enumerates why a best-effort lookup produced no value.
type FailureKind string

const (
	FailureNetwork FailureKind = "network"
	FailureStatus  FailureKind = "status"
	FailureParse   FailureKind = "parse"
	FailureEmpty   FailureKind = "empty"
)

type WeatherResult struct {
	TemperatureC *float64    `json:"temperature_c,omitempty"`
	Condition    *string     `json:"condition,omitempty"`
	Unavailable  FailureKind `json:"unavailable,omitempty"`
}

func Weather(tempC float64, condition string) WeatherResult {
	return WeatherResult{TemperatureC: &tempC, Condition: &condition}
}

func WeatherUnavailable(kind FailureKind) WeatherResult {
	return WeatherResult{Unavailable: kind}
}

func (w WeatherResult) Available() bool {
	return w.TemperatureC != nil && w.Condition != nil
}

type GeoCoordinates struct {
	Latitude    *float64    `json:"latitude,omitempty"`
	Longitude   *float64    `json:"longitude,omitempty"`
	Unavailable FailureKind `json:"unavailable,omitempty"`
}

func Coordinates(lat, lon float64) GeoCoordinates {
	return GeoCoordinates{Latitude: &lat, Longitude: &lon}
}

func CoordinatesUnavailable(kind FailureKind) GeoCoordinates {
	return GeoCoordinates{Unavailable: kind}
}

func (g GeoCoordinates) Available() bool {
	return g.Latitude != nil && g.Longitude != nil
}

type GenerationFailureKind string

const (
	GenerationTransport     GenerationFailureKind = "transport"
	GenerationAuth          GenerationFailureKind = "auth"
	GenerationProvider      GenerationFailureKind = "provider"
	GenerationEmptyResponse GenerationFailureKind = "empty_response"
)

type GenerationFailure struct {
	Kind       GenerationFailureKind `json:"kind"`
	StatusCode int                   `json:"status_code,omitempty"`
	Detail     string                `json:"detail"`
}

// ItineraryResult holds either the generated text or the failure, never both.
type ItineraryResult struct {
	Text    string             `json:"text,omitempty"`
	Failure *GenerationFailure `json:"failure,omitempty"`
}

func ItinerarySuccess(text string) ItineraryResult {
	return ItineraryResult{Text: text}
}

func ItineraryFailure(f GenerationFailure) ItineraryResult {
	return ItineraryResult{Failure: &f}
}

func (r ItineraryResult) OK() bool { return r.Failure == nil }

// Bundle is the result of one successful planning run.
type Bundle struct {
	Request     Request         `json:"request"`
	Itinerary   ItineraryResult `json:"itinerary"`
	Weather     WeatherResult   `json:"weather"`
	Location    GeoCoordinates  `json:"location"`
	Budget      BudgetBreakdown `json:"budget"`
	Tips        string          `json:"tips,omitempty"`
	GeneratedAt time.Time       `json:"generated_at"`
}

package trip

import (
	"encoding/json"
	"strings"
)

const (
	MinDuration = 1
	MaxDuration = 7
	MinBudget   = 1000
)

// MaxBudget bounds the accepted budget in major units. It keeps every
// amount derived from a request well inside int64 minor units.
const MaxBudget = 1_000_000_000_000

type TravelStyle string

const (
	TravelSolo    TravelStyle = "Solo"
	TravelFriends TravelStyle = "Friends"
	TravelFamily  TravelStyle = "Family"
)

type FoodPreference string

const (
	FoodVegetarian    FoodPreference = "Vegetarian"
	FoodNonVegetarian FoodPreference = "Non-Vegetarian"
	FoodLocalCuisine  FoodPreference = "Local Cuisine"
)

type Accommodation string

const (
	StayHostel      Accommodation = "Hostel"
	StayBudgetHotel Accommodation = "Budget Hotel"
	StayAirbnb      Accommodation = "Airbnb"
)

var (
	TravelStyles    = []TravelStyle{TravelSolo, TravelFriends, TravelFamily}
	FoodPreferences = []FoodPreference{FoodVegetarian, FoodNonVegetarian, FoodLocalCuisine}
	Accommodations  = []Accommodation{StayHostel, StayBudgetHotel, StayAirbnb}
)

func ParseTravelStyle(s string) (TravelStyle, bool)       { return parseLabel(s, TravelStyles) }
func ParseFoodPreference(s string) (FoodPreference, bool) { return parseLabel(s, FoodPreferences) }
func ParseAccommodation(s string) (Accommodation, bool)   { return parseLabel(s, Accommodations) }

// parseLabel matches either the display label ("Budget Hotel") or its key
// form ("budget_hotel"), case-insensitively.
func parseLabel[T ~string](s string, options []T) (T, bool) {
	want := normalizeLabel(s)
	for _, opt := range options {
		if normalizeLabel(string(opt)) == want {
			return opt, true
		}
	}
	var zero T
	return zero, false
}

func normalizeLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// Form carries the raw fields of one submission, as bound from the HTTP
// body or CLI flags.
type Form struct {
	Destination    string `form:"destination" json:"destination" validate:"notblank,max=100"`
	Duration       int    `form:"duration" json:"duration" validate:"min=1,max=7"`
	Budget         int64  `form:"budget" json:"budget" validate:"min=1000,max=1000000000000"`
	TravelStyle    string `form:"travel_style" json:"travel_style" validate:"travel_style"`
	FoodPreference string `form:"food_preference" json:"food_preference" validate:"food_preference"`
	Accommodation  string `form:"accommodation" json:"accommodation" validate:"accommodation"`
}

// Request is a validated trip request. The zero value is not valid; build
// one with NewRequest.
type Request struct {
	destination    string
	duration       int
	budget         Money
	travelStyle    TravelStyle
	foodPreference FoodPreference
	accommodation  Accommodation
}

// NewRequest validates f and returns an immutable Request, or a
// *ValidationError describing every invalid field.
func NewRequest(f Form) (Request, error) {
	if err := validateForm(f); err != nil {
		return Request{}, err
	}

	style, _ := ParseTravelStyle(f.TravelStyle)
	food, _ := ParseFoodPreference(f.FoodPreference)
	stay, _ := ParseAccommodation(f.Accommodation)

	return Request{
		destination:    strings.TrimSpace(f.Destination),
		duration:       f.Duration,
		budget:         FromMajor(f.Budget),
		travelStyle:    style,
		foodPreference: food,
		accommodation:  stay,
	}, nil
}

func (r Request) Destination() string           { return r.destination }
func (r Request) Duration() int                 { return r.duration }
func (r Request) Budget() Money                 { return r.budget }
func (r Request) TravelStyle() TravelStyle       { return r.travelStyle }
func (r Request) FoodPreference() FoodPreference { return r.foodPreference }
func (r Request) Accommodation() Accommodation   { return r.accommodation }

func (r Request) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Destination    string         `json:"destination"`
		Duration       int            `json:"duration"`
		Budget         Money          `json:"budget"`
		TravelStyle    TravelStyle    `json:"travel_style"`
		FoodPreference FoodPreference `json:"food_preference"`
		Accommodation  Accommodation  `json:"accommodation"`
	}{r.destination, r.duration, r.budget, r.travelStyle, r.foodPreference, r.accommodation})
}

package llm

import (
	"fmt"
	"strings"

	"github.com/vzahanych/trip-planner-app/internal/trip"
)

// SystemInstruction is sent with every generation request.
const SystemInstruction = "You are a professional travel planner."

// RenderItineraryPrompt renders the generation prompt for req. The output
// depends only on its arguments.
func RenderItineraryPrompt(req trip.Request, currency string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a detailed %d-day itinerary for %s.\n", req.Duration(), req.Destination())
	fmt.Fprintf(&b, "Budget: %s\n", req.Budget().Format(currency))
	fmt.Fprintf(&b, "Travel style: %s\n", req.TravelStyle())
	fmt.Fprintf(&b, "Food preference: %s\n", req.FoodPreference())
	fmt.Fprintf(&b, "Accommodation: %s\n", req.Accommodation())
	b.WriteString("\n")
	b.WriteString("Format the plan as follows:\n")
	fmt.Fprintf(&b, "- A day-wise breakdown from Day 1 to Day %d.\n", req.Duration())
	b.WriteString("- Split every day into Morning, Afternoon and Evening.\n")
	fmt.Fprintf(&b, "- An estimated cost for each day in %s.\n", strings.ToUpper(currency))
	b.WriteString("- Local transport suggestions between places.\n")
	b.WriteString("- A total estimated cost summary at the end that stays within the budget.\n")

	return b.String()
}

// RenderTipsPrompt asks for short budget tips about city.
func RenderTipsPrompt(city string) string {
	return fmt.Sprintf("Give 5 smart budget travel tips for students visiting %s", city)
}

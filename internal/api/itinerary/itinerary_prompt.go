package itinerary

import (
	"fmt"
	"strings"

	"github.com/tripgenie/tripgenie/internal/types"
)

// buildItineraryPrompt interpolates the trip parameters into the template
// instructing the model to reply with a single JSON object matching the
// documented itinerary schema.
func buildItineraryPrompt(params types.TripParameters) string {
	accessibility := "None"
	if params.Accessibility != types.AccessibilityNone {
		accessibility = "Yes"
	}

	foodPrefs := "No specific preferences"
	if len(params.FoodPreferences) > 0 {
		prefs := make([]string, len(params.FoodPreferences))
		for i, p := range params.FoodPreferences {
			prefs[i] = string(p)
		}
		foodPrefs = strings.Join(prefs, ", ")
	}

	interests := "General exploration and sightseeing"
	if len(params.Interests) > 0 {
		interests = strings.Join(params.Interests, ", ")
	}

	overview := fmt.Sprintf(`You are an expert travel planning assistant specializing in personalized, culturally rich, and practical itineraries.

Generate a day-by-day travel itinerary for a trip to %s, lasting %d days, for %d traveler(s).

### TRIP OVERVIEW
- Destination: %s
- Duration: %d days
- Number of Travelers: %d
- Group Type: %s
- Budget Level: %s
- Travel Pace: %s (Relaxed / Medium / Packed)
- Accessibility Needs: %s

### TRAVEL PREFERENCES
- Food Preferences: %s
- Interest Areas: %s

### BUDGET GUIDELINES (Per Person Per Day)
- Budget: ₹%d–%d
- Mid-range: ₹%d–%d
- Luxury: ₹%d–%d

### ITINERARY OBJECTIVE
Build a complete daily itinerary with the following:
- A unique theme for each day (e.g. "Cultural Immersion", "Nature Escape", "Urban Adventure")
- 3–5 curated activities per day, blending popular sights with local gems
- For every activity, include: title, description (short, vivid, engaging), location, start_time and end_time, cost (in ₹), category (e.g. sightseeing, culinary, adventure, shopping), insider_tip (local advice, hack, or recommendation)
- Add estimated meal_cost, transport_cost, and daily_total

Ensure the plan:
- Is logistically practical and well-paced
- Reflects group type, travel pace, budget, and preferences
- Offers a mix of free, budget, and premium options

### OUTPUT FORMAT (STRICTLY JSON ONLY)
Return only valid, clean JSON in this structure:
`,
		params.City, params.Days, params.Travelers,
		params.City, params.Days, params.Travelers,
		params.GroupType, params.Budget, params.Pace, accessibility,
		foodPrefs, interests,
		types.BudgetRanges[types.BudgetLevelBudget].Min, types.BudgetRanges[types.BudgetLevelBudget].Max,
		types.BudgetRanges[types.BudgetLevelMidRange].Min, types.BudgetRanges[types.BudgetLevelMidRange].Max,
		types.BudgetRanges[types.BudgetLevelLuxury].Min, types.BudgetRanges[types.BudgetLevelLuxury].Max,
	)

	schema := fmt.Sprintf("```json\n"+`{
  "destination_info": {
    "city": "%s",
    "best_time_to_visit": "e.g. October to March for pleasant weather",
    "local_currency": "e.g. Indian Rupee (INR)",
    "language": "e.g. Hindi, English widely spoken"
  },
  "days": [
    {
      "day": 1,
      "theme": "Theme of the day",
      "activities": [
        {
          "title": "Activity Name",
          "description": "Short vivid description including what to expect",
          "location": "Specific place / landmark",
          "start_time": "9:30 AM",
          "end_time": "11:30 AM",
          "cost": "₹1200",
          "category": "e.g. culture, food, adventure, shopping",
          "insider_tip": "Local advice or tip"
        }
      ],
      "meal_cost": "₹1500",
      "transport_cost": "₹800",
      "daily_total": "₹5200"
    }
  ],
  "local_tips": [
    "Cultural etiquette to follow",
    "Transport or safety advice",
    "Budget-saving tip or booking hack"
  ]
}`+"\n```\n", params.City)

	footer := "Respond only with the formatted JSON. Do not include commentary or text outside the JSON object. Keep it engaging, informative, and highly relevant."

	return overview + schema + footer
}

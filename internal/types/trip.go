package types

import (
	"errors"
	"fmt"
	"time"
)

// Trip limits enforced before any prompt is built.
const (
	MaxTripDays  = 30
	MaxTravelers = 20

	DefaultTripDays  = 3
	DefaultTravelers = 2
)

type GroupType string

const (
	GroupTypeSolo    GroupType = "Solo"
	GroupTypeCouple  GroupType = "Couple"
	GroupTypeFamily  GroupType = "Family"
	GroupTypeFriends GroupType = "Friends"
)

type BudgetLevel string

const (
	BudgetLevelBudget   BudgetLevel = "Budget"
	BudgetLevelMidRange BudgetLevel = "Mid-range"
	BudgetLevelLuxury   BudgetLevel = "Luxury"
)

type TravelPace string

const (
	TravelPaceRelaxed TravelPace = "Relaxed"
	TravelPaceMedium  TravelPace = "Medium"
	TravelPacePacked  TravelPace = "Packed"
)

type Accessibility string

const (
	AccessibilityNone       Accessibility = "None"
	AccessibilityWheelchair Accessibility = "Wheelchair Access"
	AccessibilityVisual     Accessibility = "Visual Assistance"
	AccessibilityHearing    Accessibility = "Hearing Assistance"
)

type FoodPreference string

const (
	FoodPreferenceVegetarian   FoodPreference = "Vegetarian"
	FoodPreferenceVegan        FoodPreference = "Vegan"
	FoodPreferenceLocalCuisine FoodPreference = "Local Cuisine"
	FoodPreferenceStreetFood   FoodPreference = "Street Food"
	FoodPreferenceFineDining   FoodPreference = "Fine Dining"
)

// InterestCategories maps a preference key directly to the label used in the
// AI prompt, so adding or reordering keys cannot shift the meaning of another.
var InterestCategories = map[string]string{
	"art":           "Art & Culture",
	"museums":       "Museums",
	"outdoor":       "Outdoor Activities",
	"indoor":        "Indoor Activities",
	"kids_friendly": "Kid-Friendly",
	"young_people":  "Trendy Spots",
	"nightlife":     "Nightlife",
	"shopping":      "Shopping",
}

// BudgetRange is the per-person per-day guideline band (INR) surfaced in the
// prompt for each budget level.
type BudgetRange struct {
	Min int
	Max int
}

var BudgetRanges = map[BudgetLevel]BudgetRange{
	BudgetLevelBudget:   {Min: 2000, Max: 4000},
	BudgetLevelMidRange: {Min: 4000, Max: 8000},
	BudgetLevelLuxury:   {Min: 8000, Max: 20000},
}

// TripParameters is the full set of user-chosen inputs that shape the AI prompt.
type TripParameters struct {
	City            string           `json:"city"`
	Days            int              `json:"days"`
	Travelers       int              `json:"travelers"`
	GroupType       GroupType        `json:"group_type"`
	Budget          BudgetLevel      `json:"budget"`
	Pace            TravelPace       `json:"pace"`
	Accessibility   Accessibility    `json:"accessibility"`
	FoodPreferences []FoodPreference `json:"food_preferences,omitempty"`
	Interests       []string         `json:"interests,omitempty"`
	StartDate       time.Time        `json:"start_date"`
}

// Validate checks ranges and enum membership. Zero-valued enum fields fall
// back to sensible defaults instead of failing, mirroring the form defaults.
func (p *TripParameters) Validate() error {
	if p.City == "" {
		return errors.New("destination city is required")
	}
	if p.Days < 1 || p.Days > MaxTripDays {
		return fmt.Errorf("trip length must be between 1 and %d days", MaxTripDays)
	}
	if p.Travelers < 1 || p.Travelers > MaxTravelers {
		return fmt.Errorf("traveler count must be between 1 and %d", MaxTravelers)
	}

	if p.GroupType == "" {
		p.GroupType = GroupTypeSolo
	}
	if p.Budget == "" {
		p.Budget = BudgetLevelMidRange
	}
	if p.Pace == "" {
		p.Pace = TravelPaceMedium
	}
	if p.Accessibility == "" {
		p.Accessibility = AccessibilityNone
	}

	switch p.GroupType {
	case GroupTypeSolo, GroupTypeCouple, GroupTypeFamily, GroupTypeFriends:
	default:
		return fmt.Errorf("unknown group type %q", p.GroupType)
	}
	switch p.Budget {
	case BudgetLevelBudget, BudgetLevelMidRange, BudgetLevelLuxury:
	default:
		return fmt.Errorf("unknown budget level %q", p.Budget)
	}
	switch p.Pace {
	case TravelPaceRelaxed, TravelPaceMedium, TravelPacePacked:
	default:
		return fmt.Errorf("unknown travel pace %q", p.Pace)
	}
	switch p.Accessibility {
	case AccessibilityNone, AccessibilityWheelchair, AccessibilityVisual, AccessibilityHearing:
	default:
		return fmt.Errorf("unknown accessibility option %q", p.Accessibility)
	}

	return nil
}

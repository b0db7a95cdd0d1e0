package types

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors for the generation and session lifecycle. Handlers map
// these onto HTTP statuses; everything else is treated as an internal error.
var (
	ErrMalformedResponse = errors.New("AI response is not valid JSON")
	ErrItineraryExists   = errors.New("an itinerary has already been generated for this session")
	ErrNoItinerary       = errors.New("no itinerary has been generated for this session")
)

// DestinationInfo carries the free-text destination summary returned by the
// model. Every field may be absent; renderers substitute "N/A".
type DestinationInfo struct {
	City            string `json:"city,omitempty"`
	BestTimeToVisit string `json:"best_time_to_visit,omitempty"`
	LocalCurrency   string `json:"local_currency,omitempty"`
	Language        string `json:"language,omitempty"`
}

// Activity is one scheduled item inside a day plan. Start and end times are
// descriptive text from the model and are never parsed as structured time.
type Activity struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	StartTime   string `json:"start_time,omitempty"`
	EndTime     string `json:"end_time,omitempty"`
	Cost        string `json:"cost,omitempty"`
	Category    string `json:"category,omitempty"`
	InsiderTip  string `json:"insider_tip,omitempty"`
}

// DayPlan is one day of the itinerary. Cost fields are raw strings exactly as
// the model produced them; DailyTotal is model-reported and trusted verbatim.
type DayPlan struct {
	Day           int        `json:"day"`
	Theme         string     `json:"theme,omitempty"`
	Activities    []Activity `json:"activities,omitempty"`
	MealCost      string     `json:"meal_cost,omitempty"`
	TransportCost string     `json:"transport_cost,omitempty"`
	DailyTotal    string     `json:"daily_total,omitempty"`
}

// Itinerary is the structured multi-day plan parsed from one AI reply. It is
// produced once per generation request and replaced wholesale on regeneration.
type Itinerary struct {
	DestinationInfo DestinationInfo `json:"destination_info,omitempty"`
	Days            []DayPlan       `json:"days,omitempty"`
	LocalTips       []string        `json:"local_tips,omitempty"`
}

// ActivityTitles flattens every activity title across all days, in day order
// then activity order. Used by the packing list keyword scan.
func (it *Itinerary) ActivityTitles() []string {
	var titles []string
	for _, day := range it.Days {
		for _, act := range day.Activities {
			titles = append(titles, act.Title)
		}
	}
	return titles
}

// ActivityCost holds the normalized cost of a single activity.
type ActivityCost struct {
	PerPerson int `json:"per_person"`
	Total     int `json:"total"`
}

// DayTotals holds the normalized cost aggregates of a single day. Total is the
// parsed model-reported daily_total; PerPerson is Total divided by the
// traveler count with truncation.
type DayTotals struct {
	Day        int            `json:"day"`
	Total      int            `json:"total"`
	PerPerson  int            `json:"per_person"`
	Activities []ActivityCost `json:"activities,omitempty"`
}

// CostBreakdown groups trip-wide spend by category, each already multiplied
// by the traveler count.
type CostBreakdown struct {
	Activities int `json:"activities"`
	Meals      int `json:"meals"`
	Transport  int `json:"transport"`
}

// TripTotals is the single computed set of cost aggregates shared by every
// renderer. It is computed once at generation time and never recomputed, so
// the on-screen view, the PDF and the calendar always show identical figures.
type TripTotals struct {
	TripTotal int           `json:"trip_total"`
	PerPerson int           `json:"per_person"`
	Days      []DayTotals   `json:"days,omitempty"`
	Breakdown CostBreakdown `json:"breakdown"`
}

// TripSession holds the state of one interactive planning session. It is
// mutated only by the session's own actions and reset wholesale on a
// new-journey request.
type TripSession struct {
	ID           uuid.UUID      `json:"id"`
	Params       TripParameters `json:"params"`
	Itinerary    *Itinerary     `json:"itinerary,omitempty"`
	Totals       *TripTotals    `json:"totals,omitempty"`
	ExpandedDays map[int]bool   `json:"expanded_days,omitempty"`
	Generated    bool           `json:"generated"`
	CreatedAt    time.Time      `json:"created_at"`
}

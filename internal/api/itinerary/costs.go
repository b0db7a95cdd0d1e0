package itinerary

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tripgenie/tripgenie/internal/types"
)

// First numeric token, optionally suffixed with "k" for thousands.
var costPattern = regexp.MustCompile(`(\d+(\.\d+)?)(k?)`)

// ExtractCost maps a free-form price string ("₹1,200", "1.5k", "N/A", "free")
// to an integer amount. Total over all inputs: anything without a numeric
// token yields 0, never an error.
func ExtractCost(raw string) int {
	if raw == "" || raw == "N/A" {
		return 0
	}

	cleaned := strings.NewReplacer(",", "", "₹", "").Replace(raw)
	cleaned = strings.ToLower(cleaned)

	match := costPattern.FindStringSubmatch(cleaned)
	if match == nil {
		return 0
	}

	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0
	}
	if match[3] == "k" {
		value *= 1000
	}
	return int(value)
}

// ComputeTotals walks the itinerary once and produces the cost aggregates
// every renderer shares. Day totals come from the model-reported daily_total
// verbatim and are not reconciled against summed activity costs. The caller
// guarantees travelers >= 1 (TripParameters.Validate), so the integer
// divisions here need no zero guard.
func ComputeTotals(it *types.Itinerary, travelers int) *types.TripTotals {
	totals := &types.TripTotals{}

	for _, day := range it.Days {
		dayTotal := ExtractCost(day.DailyTotal)
		dt := types.DayTotals{
			Day:       day.Day,
			Total:     dayTotal,
			PerPerson: dayTotal / travelers,
		}

		for _, act := range day.Activities {
			perPerson := ExtractCost(act.Cost)
			dt.Activities = append(dt.Activities, types.ActivityCost{
				PerPerson: perPerson,
				Total:     perPerson * travelers,
			})
			totals.Breakdown.Activities += perPerson * travelers
		}

		totals.Breakdown.Meals += ExtractCost(day.MealCost) * travelers
		totals.Breakdown.Transport += ExtractCost(day.TransportCost) * travelers

		totals.TripTotal += dayTotal
		totals.Days = append(totals.Days, dt)
	}

	totals.PerPerson = totals.TripTotal / travelers
	return totals
}

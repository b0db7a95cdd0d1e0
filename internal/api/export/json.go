package export

import (
	"encoding/json"
	"fmt"

	"github.com/tripgenie/tripgenie/internal/types"
)

// BuildJSON produces the pretty-printed dump of the itinerary document.
func BuildJSON(it *types.Itinerary) ([]byte, error) {
	data, err := json.MarshalIndent(it, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal itinerary: %w", err)
	}
	return data, nil
}

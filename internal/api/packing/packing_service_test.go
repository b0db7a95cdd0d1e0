package packing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func categoryNames(list List) []string {
	names := make([]string, len(list))
	for i, c := range list {
		names[i] = c.Name
	}
	return names
}

func TestGeneratePackingList_BaseCategories(t *testing.T) {
	list := GeneratePackingList("Paris", 3, nil)

	require.Len(t, list, 4)
	assert.Equal(t, []string{"Travel Documents", "Electronics", "Clothing", "Personal Care"}, categoryNames(list))
	assert.Contains(t, list[0].Items, "Passport/ID")
	assert.Contains(t, list[3].Items, "First aid kit")
}

func TestGeneratePackingList_OutdoorTriggers(t *testing.T) {
	tests := []struct {
		name   string
		titles []string
	}{
		{"outdoor keyword", []string{"Outdoor market tour"}},
		{"hiking keyword", []string{"Sunrise HIKING trail"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := GeneratePackingList("Kathmandu", 5, tt.titles)
			assert.Contains(t, categoryNames(list), "Outdoor Equipment")
			assert.NotContains(t, categoryNames(list), "Beach/Pool Items")
		})
	}
}

func TestGeneratePackingList_BeachTriggers(t *testing.T) {
	list := GeneratePackingList("Goa", 4, []string{"Morning swim at Baga Beach"})

	names := categoryNames(list)
	assert.Contains(t, names, "Beach/Pool Items")
	assert.NotContains(t, names, "Outdoor Equipment")
}

func TestGeneratePackingList_NoTriggerNoExtraCategories(t *testing.T) {
	list := GeneratePackingList("Vienna", 2, []string{"Opera night", "Museum quarter"})
	assert.Len(t, list, 4)
}

func TestGeneratePackingList_DestinationAndLengthDoNotAlterOutput(t *testing.T) {
	// Keyword-triggered category presence only; destination and trip length
	// are accepted but deliberately unused.
	a := GeneratePackingList("Reykjavik", 1, []string{"City walk"})
	b := GeneratePackingList("Mumbai", 30, []string{"City walk"})
	assert.Equal(t, a, b)
}

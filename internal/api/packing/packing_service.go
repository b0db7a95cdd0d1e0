package packing

import "strings"

// Category is one packing checklist section with its ordered items.
type Category struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// List is the ordered packing checklist. A slice rather than a map so every
// render shows categories in the same order.
type List []Category

// GeneratePackingList derives a categorized checklist from the flattened
// activity titles. The four base categories are always present with fixed
// contents; "Outdoor Equipment" and "Beach/Pool Items" are appended only when
// an activity title contains the trigger keywords. Destination and trip
// length are accepted but deliberately do not alter the output today;
// category presence is keyword-triggered only.
func GeneratePackingList(destination string, days int, activityTitles []string) List {
	list := List{
		{Name: "Travel Documents", Items: []string{"Passport/ID", "Travel insurance", "Booking confirmations", "Emergency contacts"}},
		{Name: "Electronics", Items: []string{"Phone charger", "Power bank", "Camera", "Travel adapter", "Headphones"}},
		{Name: "Clothing", Items: []string{"Weather-appropriate clothing", "Comfortable walking shoes", "Sleepwear", "Undergarments"}},
		{Name: "Personal Care", Items: []string{"Toiletries", "Medications", "Sunscreen", "Hand sanitizer", "First aid kit"}},
	}

	activityText := strings.ToLower(strings.Join(activityTitles, " "))

	if strings.Contains(activityText, "outdoor") || strings.Contains(activityText, "hiking") {
		list = append(list, Category{
			Name:  "Outdoor Equipment",
			Items: []string{"Sunglasses", "Hat", "Water bottle", "Backpack", "Weather protection"},
		})
	}

	if strings.Contains(activityText, "swim") || strings.Contains(activityText, "beach") {
		list = append(list, Category{
			Name:  "Beach/Pool Items",
			Items: []string{"Swimwear", "Beach towel", "Flip-flops", "Waterproof bag"},
		})
	}

	return list
}

package export

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/tripgenie/tripgenie/internal/api/packing"
	"github.com/tripgenie/tripgenie/internal/types"
)

const (
	pageWidth   = 180.0 // usable width on A4 with 15mm margins
	labelWidth  = 55.0
	rowHeight   = 7.0
	lineHeight  = 5.0
	dateLayout  = "2006-01-02"
	amountGroup = 3
)

// formatAmount renders an integer rupee amount with thousands separators.
// Core PDF fonts cannot encode the rupee glyph, so amounts carry an "Rs"
// prefix in the document.
func formatAmount(amount int) string {
	digits := strconv.Itoa(amount)
	if len(digits) <= amountGroup {
		return "Rs " + digits
	}
	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%amountGroup == 0 {
			out = append(out, ',')
		}
		out = append(out, d)
	}
	return "Rs " + string(out)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// BuildPDF renders the session's itinerary and packing checklist into a
// paginated A4 document. It consumes the session's precomputed totals so the
// figures always match the on-screen view and the other exports.
func BuildPDF(session *types.TripSession, list packing.List) ([]byte, error) {
	it := session.Itinerary
	params := session.Params
	totals := session.Totals

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerFill := func() { pdf.SetFillColor(30, 41, 59) }   // slate
	rowFill := func() { pdf.SetFillColor(248, 250, 252) }   // light gray
	accentFill := func() { pdf.SetFillColor(59, 130, 246) } // blue

	twoColRow := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 10)
		rowFill()
		pdf.CellFormat(labelWidth, rowHeight, tr(label), "1", 0, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(pageWidth-labelWidth, rowHeight, tr(value), "1", 1, "L", false, 0, "")
	}

	sectionHeader := func(title string) {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetTextColor(30, 41, 59)
		pdf.CellFormat(pageWidth, 9, tr(title), "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	// Cover
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(30, 41, 59)
	pdf.CellFormat(pageWidth, 14, tr("TripGenie Travel Itinerary"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 16)
	pdf.SetTextColor(59, 130, 246)
	pdf.CellFormat(pageWidth, 10, tr(params.City), "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(8)

	// Trip overview table
	endDate := params.StartDate.AddDate(0, 0, params.Days)
	headerFill()
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(pageWidth, rowHeight+1, tr("Trip Details"), "1", 1, "L", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	twoColRow("Destination", params.City)
	twoColRow("Duration", fmt.Sprintf("%s to %s", params.StartDate.Format(dateLayout), endDate.Format(dateLayout)))
	twoColRow("Number of Travelers", strconv.Itoa(params.Travelers))
	twoColRow("Total Cost", formatAmount(totals.TripTotal))
	twoColRow("Cost per Person", formatAmount(totals.PerPerson))

	// Destination info
	sectionHeader("Destination Information")
	twoColRow("Best Time to Visit", orNA(it.DestinationInfo.BestTimeToVisit))
	twoColRow("Local Currency", orNA(it.DestinationInfo.LocalCurrency))
	twoColRow("Language", orNA(it.DestinationInfo.Language))

	// Daily itinerary
	pdf.AddPage()
	sectionHeader("Detailed Itinerary")

	for dayIdx, day := range it.Days {
		headerFill()
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(pageWidth, rowHeight+1, tr(fmt.Sprintf("DAY %d: %s", day.Day, orNA(day.Theme))), "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)

		for actIdx, activity := range day.Activities {
			timeInfo := fmt.Sprintf("%s - %s", activity.StartTime, activity.EndTime)
			pdf.SetFont("Helvetica", "B", 11)
			pdf.MultiCell(pageWidth, lineHeight+1, tr(fmt.Sprintf("%d. %s (%s)", actIdx+1, activity.Title, timeInfo)), "", "L", false)

			pdf.SetFont("Helvetica", "", 9)
			pdf.MultiCell(pageWidth, lineHeight, tr("Description: "+orNA(activity.Description)), "", "L", false)
			pdf.MultiCell(pageWidth, lineHeight, tr("Location: "+orNA(activity.Location)), "", "L", false)

			if activity.Cost != "" && activity.Cost != "N/A" && dayIdx < len(totals.Days) && actIdx < len(totals.Days[dayIdx].Activities) {
				actTotal := totals.Days[dayIdx].Activities[actIdx].Total
				pdf.MultiCell(pageWidth, lineHeight, tr(fmt.Sprintf("Cost: %s per person (%s total)", activity.Cost, formatAmount(actTotal))), "", "L", false)
			} else {
				pdf.MultiCell(pageWidth, lineHeight, tr("Cost: "+orNA(activity.Cost)), "", "L", false)
			}

			if activity.InsiderTip != "" {
				pdf.SetFont("Helvetica", "I", 9)
				pdf.SetTextColor(5, 150, 105)
				pdf.MultiCell(pageWidth, lineHeight, tr("Insider Tip: "+activity.InsiderTip), "", "L", false)
				pdf.SetTextColor(0, 0, 0)
			}
			pdf.Ln(2)
		}

		// Daily summary table from the shared totals
		var dayTotals types.DayTotals
		if dayIdx < len(totals.Days) {
			dayTotals = totals.Days[dayIdx]
		}
		accentFill()
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(pageWidth, rowHeight, tr("Daily Summary"), "1", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		twoColRow("Total Cost", formatAmount(dayTotals.Total))
		twoColRow("Cost per Person", formatAmount(dayTotals.PerPerson))
		twoColRow("Meals", orNA(day.MealCost))
		twoColRow("Transport", orNA(day.TransportCost))
		pdf.Ln(5)
	}

	// Local tips
	if len(it.LocalTips) > 0 {
		pdf.AddPage()
		sectionHeader("Local Tips & Recommendations")
		pdf.SetFont("Helvetica", "", 10)
		for i, tip := range it.LocalTips {
			pdf.MultiCell(pageWidth, lineHeight+1, tr(fmt.Sprintf("%d. %s", i+1, tip)), "", "L", false)
			pdf.Ln(1)
		}
	}

	// Packing checklist
	pdf.AddPage()
	sectionHeader("Packing Checklist")
	for _, category := range list {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(pageWidth, rowHeight, tr(category.Name), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, item := range category.Items {
			pdf.CellFormat(pageWidth, lineHeight+1, tr("[ ] "+item), "", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(100, 116, 139)
	pdf.CellFormat(pageWidth, lineHeight, tr("Generated by TripGenie | Safe travels and enjoy your adventure!"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF generation error: %w", err)
	}
	return buf.Bytes(), nil
}

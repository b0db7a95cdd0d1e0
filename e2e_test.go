package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	appMiddleware "github.com/tripgenie/tripgenie/app/middleware"
	"github.com/tripgenie/tripgenie/internal/api/export"
	"github.com/tripgenie/tripgenie/internal/api/itinerary"
	"github.com/tripgenie/tripgenie/internal/api/packing"
	api "github.com/tripgenie/tripgenie/internal/router"
)

const e2eItineraryJSON = `{
  "destination_info": {
    "city": "Paris",
    "best_time_to_visit": "April to June",
    "local_currency": "Euro (EUR)",
    "language": "French"
  },
  "days": [
    {
      "day": 1,
      "theme": "Cultural Immersion",
      "activities": [
        {
          "title": "Louvre Museum",
          "description": "World-class art collection",
          "location": "Rue de Rivoli",
          "start_time": "9:30 AM",
          "end_time": "12:00 PM",
          "cost": "₹1,200",
          "category": "culture",
          "insider_tip": "Book tickets online"
        },
        {
          "title": "Seine River Cruise",
          "location": "Pont Neuf",
          "cost": "₹800",
          "category": "sightseeing"
        }
      ],
      "meal_cost": "₹1,500",
      "transport_cost": "₹800",
      "daily_total": "₹5,200"
    },
    {
      "day": 2,
      "theme": "Outdoor Escape",
      "activities": [
        {"title": "Outdoor hiking in Fontainebleau", "cost": "₹500"}
      ],
      "meal_cost": "₹1,200",
      "transport_cost": "₹900",
      "daily_total": "₹5,200"
    },
    {
      "day": 3,
      "theme": "Local Life",
      "activities": [
        {"title": "Montmartre Walk", "cost": "N/A"}
      ],
      "daily_total": "₹5,200"
    }
  ],
  "local_tips": ["Validate metro tickets before boarding"]
}`

// stubAI returns a canned completion without any network call.
type stubAI struct {
	reply string
}

func (s *stubAI) GenerateResponse(ctx context.Context, prompt string) (string, error) {
	return s.reply, nil
}

// TripFlowTestSuite drives the complete planning workflow over the real
// router: generate, read, derive a packing list, export in every format,
// toggle a day, hit the regeneration gate, reset, start over.
type TripFlowTestSuite struct {
	suite.Suite
	server    *httptest.Server
	client    *http.Client
	sessionID string
}

func (s *TripFlowTestSuite) SetupSuite() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))

	itineraryService := itinerary.NewItineraryService(&stubAI{reply: "```json\n" + e2eItineraryJSON + "\n```"}, logger, time.Hour, time.Hour)
	routerConfig := &api.Config{
		ItineraryHandler: itinerary.NewItineraryHandler(itineraryService, logger),
		PackingHandler:   packing.NewPackingHandler(itineraryService, logger),
		ExportHandler:    export.NewExportHandler(export.NewExportService(itineraryService, logger), logger),
	}

	s.server = httptest.NewServer(api.SetupRouter(routerConfig))
	s.client = &http.Client{Timeout: 10 * time.Second}
}

func (s *TripFlowTestSuite) TearDownSuite() {
	if s.server != nil {
		s.server.Close()
	}
}

func (s *TripFlowTestSuite) do(method, path string, body any) *http.Response {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, s.server.URL+path, reader)
	require.NoError(s.T(), err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.sessionID != "" {
		req.Header.Set(appMiddleware.SessionHeader, s.sessionID)
	}

	resp, err := s.client.Do(req)
	require.NoError(s.T(), err)

	// Pin all subsequent requests to the session minted on the first one.
	if echoed := resp.Header.Get(appMiddleware.SessionHeader); echoed != "" && s.sessionID == "" {
		s.sessionID = echoed
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (s *TripFlowTestSuite) generateBody() map[string]any {
	return map[string]any{
		"city":      "Paris",
		"days":      3,
		"travelers": 2,
		"budget":    "Mid-range",
	}
}

func (s *TripFlowTestSuite) TestCompleteTripWorkflow() {
	t := s.T()

	// No itinerary yet.
	resp := s.do(http.MethodGet, "/api/v1/itinerary", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
	require.NotEmpty(t, s.sessionID, "session header should be minted on first contact")

	// Generate.
	resp = s.do(http.MethodPost, "/api/v1/itinerary", s.generateBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	session := decodeBody(t, resp)

	totals, ok := session["totals"].(map[string]any)
	require.True(t, ok, "session payload must carry totals")
	require.EqualValues(t, 15600, totals["trip_total"])
	require.EqualValues(t, 7800, totals["per_person"])

	// Read back.
	resp = s.do(http.MethodGet, "/api/v1/itinerary", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	current := decodeBody(t, resp)
	require.Equal(t, session["id"], current["id"])

	// Packing list reacts to the hiking activity on day 2.
	resp = s.do(http.MethodGet, "/api/v1/itinerary/packing-list", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	packingBody := decodeBody(t, resp)
	categories, ok := packingBody["packing_list"].([]any)
	require.True(t, ok)
	var names []string
	for _, c := range categories {
		names = append(names, c.(map[string]any)["name"].(string))
	}
	require.Contains(t, names, "Travel Documents")
	require.Contains(t, names, "Outdoor Equipment")
	require.NotContains(t, names, "Beach/Pool Items")

	// Exports, each with an attachment filename.
	for _, tc := range []struct {
		path        string
		contentType string
		filename    string
	}{
		{"/api/v1/itinerary/export/json", "application/json", "Paris_itinerary.json"},
		{"/api/v1/itinerary/export/calendar", "text/calendar", "Paris_itinerary.ics"},
		{"/api/v1/itinerary/export/pdf", "application/pdf", "Paris_itinerary.pdf"},
	} {
		resp = s.do(http.MethodGet, tc.path, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, tc.path)
		require.Equal(t, tc.contentType, resp.Header.Get("Content-Type"))
		require.Contains(t, resp.Header.Get("Content-Disposition"), tc.filename)
		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)
		require.NotEmpty(t, data)
		if strings.HasSuffix(tc.path, "/calendar") {
			require.Contains(t, string(data), "BEGIN:VCALENDAR")
		}
		if strings.HasSuffix(tc.path, "/pdf") {
			require.True(t, bytes.HasPrefix(data, []byte("%PDF")))
		}
	}

	// Toggle day 2 open.
	resp = s.do(http.MethodPost, "/api/v1/itinerary/days/2/toggle", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	toggled := decodeBody(t, resp)
	expanded, ok := toggled["expanded_days"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, true, expanded["2"])

	// Regeneration without reset is refused.
	resp = s.do(http.MethodPost, "/api/v1/itinerary", s.generateBody())
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Reset, then the session is blank and generation works again.
	resp = s.do(http.MethodDelete, "/api/v1/itinerary", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(http.MethodGet, "/api/v1/itinerary", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(http.MethodPost, "/api/v1/itinerary", s.generateBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

func (s *TripFlowTestSuite) TestInvalidParametersRejected() {
	t := s.T()

	resp := s.do(http.MethodPost, "/api/v1/itinerary", map[string]any{
		"city":      "",
		"days":      3,
		"travelers": 2,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(http.MethodPost, "/api/v1/itinerary", map[string]any{
		"city":      "Paris",
		"days":      45,
		"travelers": 2,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestTripFlowSuite(t *testing.T) {
	suite.Run(t, new(TripFlowTestSuite))
}

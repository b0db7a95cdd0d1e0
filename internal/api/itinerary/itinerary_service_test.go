package itinerary

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tripgenie/tripgenie/internal/types"
)

// --- Mocks for Dependencies ---

type MockAIClient struct {
	mock.Mock
}

func (m *MockAIClient) GenerateResponse(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

const parisResponse = `{
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
        {"title": "Louvre Museum", "description": "World-class art", "location": "Rue de Rivoli", "start_time": "9:30 AM", "end_time": "12:00 PM", "cost": "₹1,200", "category": "culture", "insider_tip": "Book online"},
        {"title": "Seine River Cruise", "cost": "1.5k"}
      ],
      "meal_cost": "₹1,500",
      "transport_cost": "₹800",
      "daily_total": "₹5,200"
    },
    {
      "day": 2,
      "theme": "Urban Adventure",
      "activities": [{"title": "Montmartre Walk", "cost": "free"}],
      "daily_total": "₹5,200"
    },
    {
      "day": 3,
      "theme": "Nature Escape",
      "activities": [{"title": "Luxembourg Gardens"}],
      "daily_total": "₹5,200"
    }
  ],
  "local_tips": ["Validate metro tickets", "Tipping is optional"]
}`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func parisParams() types.TripParameters {
	return types.TripParameters{
		City:          "Paris",
		Days:          3,
		Travelers:     2,
		GroupType:     types.GroupTypeCouple,
		Budget:        types.BudgetLevelMidRange,
		Pace:          types.TravelPaceMedium,
		Accessibility: types.AccessibilityNone,
		StartDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newTestService(t *testing.T, aiClient AIService) *ItineraryServiceImpl {
	t.Helper()
	return NewItineraryService(aiClient, testLogger(), time.Hour, 10*time.Minute)
}

func TestGenerateItinerary_EndToEnd(t *testing.T) {
	aiClient := new(MockAIClient)
	aiClient.On("GenerateResponse", mock.Anything, mock.AnythingOfType("string")).Return(parisResponse, nil)

	service := newTestService(t, aiClient)
	sessionID := uuid.New()

	session, err := service.GenerateItinerary(context.Background(), sessionID, parisParams())
	require.NoError(t, err)
	require.NotNil(t, session)

	assert.True(t, session.Generated)
	require.NotNil(t, session.Itinerary)
	assert.Len(t, session.Itinerary.Days, 3)
	assert.Equal(t, "Paris", session.Itinerary.DestinationInfo.City)

	// Three days at ₹5,200 each; per person halves the trip total.
	require.NotNil(t, session.Totals)
	assert.Equal(t, 15600, session.Totals.TripTotal)
	assert.Equal(t, 7800, session.Totals.PerPerson)

	// Louvre at ₹1,200 per person for two travelers.
	assert.Equal(t, 2400, session.Totals.Days[0].Activities[0].Total)

	aiClient.AssertExpectations(t)
}

func TestGenerateItinerary_FencedReplyParsesIdentically(t *testing.T) {
	fenced := new(MockAIClient)
	fenced.On("GenerateResponse", mock.Anything, mock.Anything).Return("```json\n"+parisResponse+"\n```", nil)
	bare := new(MockAIClient)
	bare.On("GenerateResponse", mock.Anything, mock.Anything).Return(parisResponse, nil)

	fromFenced, err := newTestService(t, fenced).GenerateItinerary(context.Background(), uuid.New(), parisParams())
	require.NoError(t, err)
	fromBare, err := newTestService(t, bare).GenerateItinerary(context.Background(), uuid.New(), parisParams())
	require.NoError(t, err)

	assert.Equal(t, fromBare.Itinerary, fromFenced.Itinerary)
	assert.Equal(t, fromBare.Totals, fromFenced.Totals)
}

func TestGenerateItinerary_MalformedResponse(t *testing.T) {
	aiClient := new(MockAIClient)
	aiClient.On("GenerateResponse", mock.Anything, mock.Anything).Return("{\"days\": [", nil)

	service := newTestService(t, aiClient)
	sessionID := uuid.New()

	_, err := service.GenerateItinerary(context.Background(), sessionID, parisParams())
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrMalformedResponse)

	// A generation failure leaves no partial session behind.
	_, err = service.CurrentSession(context.Background(), sessionID)
	assert.ErrorIs(t, err, types.ErrNoItinerary)
}

func TestGenerateItinerary_TransportFailure(t *testing.T) {
	aiClient := new(MockAIClient)
	aiClient.On("GenerateResponse", mock.Anything, mock.Anything).Return("", errors.New("connection refused"))

	service := newTestService(t, aiClient)

	_, err := service.GenerateItinerary(context.Background(), uuid.New(), parisParams())
	require.Error(t, err)
	assert.NotErrorIs(t, err, types.ErrMalformedResponse)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestGenerateItinerary_GateBlocksReentry(t *testing.T) {
	aiClient := new(MockAIClient)
	aiClient.On("GenerateResponse", mock.Anything, mock.Anything).Return(parisResponse, nil).Once()

	service := newTestService(t, aiClient)
	sessionID := uuid.New()

	_, err := service.GenerateItinerary(context.Background(), sessionID, parisParams())
	require.NoError(t, err)

	// Second generation without a reset must not reach the AI collaborator.
	_, err = service.GenerateItinerary(context.Background(), sessionID, parisParams())
	assert.ErrorIs(t, err, types.ErrItineraryExists)
	aiClient.AssertNumberOfCalls(t, "GenerateResponse", 1)
}

func TestResetSession_AllowsRegeneration(t *testing.T) {
	aiClient := new(MockAIClient)
	aiClient.On("GenerateResponse", mock.Anything, mock.Anything).Return(parisResponse, nil)

	service := newTestService(t, aiClient)
	sessionID := uuid.New()

	_, err := service.GenerateItinerary(context.Background(), sessionID, parisParams())
	require.NoError(t, err)

	require.NoError(t, service.ResetSession(context.Background(), sessionID))
	_, err = service.CurrentSession(context.Background(), sessionID)
	assert.ErrorIs(t, err, types.ErrNoItinerary)

	_, err = service.GenerateItinerary(context.Background(), sessionID, parisParams())
	assert.NoError(t, err)
}

func TestToggleDayExpansion(t *testing.T) {
	aiClient := new(MockAIClient)
	aiClient.On("GenerateResponse", mock.Anything, mock.Anything).Return(parisResponse, nil)

	service := newTestService(t, aiClient)
	sessionID := uuid.New()

	_, err := service.GenerateItinerary(context.Background(), sessionID, parisParams())
	require.NoError(t, err)

	expanded, err := service.ToggleDayExpansion(context.Background(), sessionID, 2)
	require.NoError(t, err)
	assert.True(t, expanded[2])

	expanded, err = service.ToggleDayExpansion(context.Background(), sessionID, 2)
	require.NoError(t, err)
	assert.NotContains(t, expanded, 2)
}

func TestToggleDayExpansion_NoItinerary(t *testing.T) {
	service := newTestService(t, new(MockAIClient))

	_, err := service.ToggleDayExpansion(context.Background(), uuid.New(), 1)
	assert.ErrorIs(t, err, types.ErrNoItinerary)
}

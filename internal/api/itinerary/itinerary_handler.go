package itinerary

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	appMiddleware "github.com/tripgenie/tripgenie/app/middleware"
	"github.com/tripgenie/tripgenie/internal/api"
	"github.com/tripgenie/tripgenie/internal/types"
)

// GenerateItineraryRequest is the wire form of the trip parameters.
// Preferences carries the interest checkboxes keyed by preference key; keys
// are resolved through types.InterestCategories, never by position.
type GenerateItineraryRequest struct {
	City            string                 `json:"city"`
	Days            int                    `json:"days"`
	Travelers       int                    `json:"travelers"`
	GroupType       types.GroupType        `json:"group_type,omitempty"`
	Budget          types.BudgetLevel      `json:"budget,omitempty"`
	Pace            types.TravelPace       `json:"pace,omitempty"`
	Accessibility   types.Accessibility    `json:"accessibility,omitempty"`
	FoodPreferences []types.FoodPreference `json:"food_preferences,omitempty"`
	Interests       []string               `json:"interests,omitempty"`
	Preferences     map[string]bool        `json:"preferences,omitempty"`
	StartDate       string                 `json:"start_date,omitempty"` // YYYY-MM-DD, defaults to today
}

// ToParams converts the request into validated trip parameters.
func (req *GenerateItineraryRequest) ToParams() (types.TripParameters, error) {
	startDate := time.Now().Truncate(24 * time.Hour)
	if req.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return types.TripParameters{}, fmt.Errorf("invalid start_date %q, expected YYYY-MM-DD", req.StartDate)
		}
		startDate = parsed
	}

	interests := append([]string(nil), req.Interests...)
	for key, checked := range req.Preferences {
		if !checked {
			continue
		}
		category, ok := types.InterestCategories[key]
		if !ok {
			return types.TripParameters{}, fmt.Errorf("unknown preference key %q", key)
		}
		interests = append(interests, category)
	}

	params := types.TripParameters{
		City:            req.City,
		Days:            req.Days,
		Travelers:       req.Travelers,
		GroupType:       req.GroupType,
		Budget:          req.Budget,
		Pace:            req.Pace,
		Accessibility:   req.Accessibility,
		FoodPreferences: req.FoodPreferences,
		Interests:       interests,
		StartDate:       startDate,
	}
	if err := params.Validate(); err != nil {
		return types.TripParameters{}, err
	}
	return params, nil
}

type ItineraryHandler struct {
	itineraryService ItineraryService
	logger           *slog.Logger
}

func NewItineraryHandler(itineraryService ItineraryService, logger *slog.Logger) *ItineraryHandler {
	return &ItineraryHandler{
		itineraryService: itineraryService,
		logger:           logger,
	}
}

// Generate creates the session's itinerary from the submitted trip parameters.
func (h *ItineraryHandler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Generate").Start(r.Context(), "Generate", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itinerary"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Generate"))
	l.DebugContext(ctx, "Generate itinerary handler invoked")

	sessionID, ok := appMiddleware.GetSessionIDFromContext(ctx)
	if !ok {
		l.ErrorContext(ctx, "Session ID not found in context")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Session not established")
		return
	}

	var req GenerateItineraryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	params, err := req.ToParams()
	if err != nil {
		l.ErrorContext(ctx, "Invalid trip parameters", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.itineraryService.GenerateItinerary(ctx, sessionID, params)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrItineraryExists):
			l.WarnContext(ctx, "Itinerary already generated for session")
			api.ErrorResponse(w, r, http.StatusConflict, err.Error())
		case errors.Is(err, types.ErrMalformedResponse):
			l.ErrorContext(ctx, "AI returned malformed itinerary", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusBadGateway, err.Error())
		default:
			l.ErrorContext(ctx, "Failed to generate itinerary", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, fmt.Sprintf("Failed to generate itinerary: %s", err.Error()))
		}
		return
	}

	l.InfoContext(ctx, "Itinerary generated successfully")
	api.WriteJSONResponse(w, r, http.StatusCreated, session)
}

// Current returns the session's itinerary, totals and expanded-day set.
func (h *ItineraryHandler) Current(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Current").Start(r.Context(), "Current", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itinerary"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Current"))

	sessionID, ok := appMiddleware.GetSessionIDFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Session not established")
		return
	}

	session, err := h.itineraryService.CurrentSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, types.ErrNoItinerary) {
			api.ErrorResponse(w, r, http.StatusNotFound, err.Error())
			return
		}
		l.ErrorContext(ctx, "Failed to fetch session", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch session")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, session)
}

// Reset discards the session state for a new journey.
func (h *ItineraryHandler) Reset(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Reset").Start(r.Context(), "Reset", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itinerary"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Reset"))

	sessionID, ok := appMiddleware.GetSessionIDFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Session not established")
		return
	}

	if err := h.itineraryService.ResetSession(ctx, sessionID); err != nil {
		l.ErrorContext(ctx, "Failed to reset session", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to reset session")
		return
	}

	l.InfoContext(ctx, "Session reset")
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}

// ToggleDay flips the expanded state of one day in the result view.
func (h *ItineraryHandler) ToggleDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ToggleDay").Start(r.Context(), "ToggleDay", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itinerary/days/{day}/toggle"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "ToggleDay"))

	sessionID, ok := appMiddleware.GetSessionIDFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Session not established")
		return
	}

	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil || day < 1 {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid day index")
		return
	}

	expanded, err := h.itineraryService.ToggleDayExpansion(ctx, sessionID, day)
	if err != nil {
		if errors.Is(err, types.ErrNoItinerary) {
			api.ErrorResponse(w, r, http.StatusNotFound, err.Error())
			return
		}
		l.ErrorContext(ctx, "Failed to toggle day", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to toggle day")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{"expanded_days": expanded})
}

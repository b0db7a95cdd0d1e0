package itinerary

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tripgenie/tripgenie/app/observability/metrics"
	"github.com/tripgenie/tripgenie/internal/types"
)

// AIService is the external collaborator boundary: one prompt in, the raw
// reply text out.
type AIService interface {
	GenerateResponse(ctx context.Context, prompt string) (string, error)
}

// Ensure implementation satisfies the interface
var _ ItineraryService = (*ItineraryServiceImpl)(nil)

// ItineraryService defines the business logic contract for one planning
// session: generate once, read many, reset wholesale.
type ItineraryService interface {
	GenerateItinerary(ctx context.Context, sessionID uuid.UUID, params types.TripParameters) (*types.TripSession, error)
	CurrentSession(ctx context.Context, sessionID uuid.UUID) (*types.TripSession, error)
	ResetSession(ctx context.Context, sessionID uuid.UUID) error
	ToggleDayExpansion(ctx context.Context, sessionID uuid.UUID, day int) (map[int]bool, error)
}

type ItineraryServiceImpl struct {
	logger   *slog.Logger
	aiClient AIService
	sessions *cache.Cache
}

func NewItineraryService(aiClient AIService, logger *slog.Logger, sessionTTL, cleanupInterval time.Duration) *ItineraryServiceImpl {
	return &ItineraryServiceImpl{
		logger:   logger,
		aiClient: aiClient,
		sessions: cache.New(sessionTTL, cleanupInterval),
	}
}

// GenerateItinerary performs the one blocking AI call for the session, parses
// the reply and stores the session with its computed totals. A generation
// failure leaves prior session state untouched. Re-entry while a result is
// present returns ErrItineraryExists; the caller must reset first.
func (s *ItineraryServiceImpl) GenerateItinerary(ctx context.Context, sessionID uuid.UUID, params types.TripParameters) (*types.TripSession, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "GenerateItinerary", trace.WithAttributes(
		attribute.String("session.id", sessionID.String()),
		attribute.String("trip.city", params.City),
		attribute.Int("trip.days", params.Days),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "GenerateItinerary"), slog.String("sessionID", sessionID.String()))

	if existing, found := s.sessions.Get(sessionID.String()); found {
		if session, ok := existing.(*types.TripSession); ok && session.Generated {
			span.SetStatus(codes.Error, "Itinerary already generated")
			return nil, types.ErrItineraryExists
		}
	}

	start := time.Now()
	defer func() {
		metrics.Get().GenerationRequestsTotal.Add(ctx, 1)
		metrics.Get().GenerationDurationSeconds.Record(ctx, time.Since(start).Seconds())
	}()

	prompt := buildItineraryPrompt(params)
	l.DebugContext(ctx, "Sending itinerary prompt", slog.Int("prompt_length", len(prompt)))

	response, err := s.aiClient.GenerateResponse(ctx, prompt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "AI call failed")
		return nil, fmt.Errorf("failed to generate itinerary: %w", err)
	}

	cleaned := cleanJSONResponse(response)

	var it types.Itinerary
	if err := json.Unmarshal([]byte(cleaned), &it); err != nil {
		l.ErrorContext(ctx, "Failed to parse AI response", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Malformed AI response")
		return nil, fmt.Errorf("%w: %v", types.ErrMalformedResponse, err)
	}

	totals := ComputeTotals(&it, params.Travelers)

	session := &types.TripSession{
		ID:           sessionID,
		Params:       params,
		Itinerary:    &it,
		Totals:       totals,
		ExpandedDays: make(map[int]bool),
		Generated:    true,
		CreatedAt:    time.Now(),
	}
	s.sessions.Set(sessionID.String(), session, cache.DefaultExpiration)

	l.InfoContext(ctx, "Itinerary generated",
		slog.Int("days", len(it.Days)),
		slog.Int("trip_total", totals.TripTotal),
	)
	span.SetStatus(codes.Ok, "Itinerary generated")
	return session, nil
}

// CurrentSession returns the session's generated itinerary and totals.
func (s *ItineraryServiceImpl) CurrentSession(ctx context.Context, sessionID uuid.UUID) (*types.TripSession, error) {
	_, span := otel.Tracer("ItineraryService").Start(ctx, "CurrentSession", trace.WithAttributes(
		attribute.String("session.id", sessionID.String()),
	))
	defer span.End()

	existing, found := s.sessions.Get(sessionID.String())
	if !found {
		span.SetStatus(codes.Error, "No itinerary for session")
		return nil, types.ErrNoItinerary
	}
	session, ok := existing.(*types.TripSession)
	if !ok || !session.Generated {
		span.SetStatus(codes.Error, "No itinerary for session")
		return nil, types.ErrNoItinerary
	}

	span.SetStatus(codes.Ok, "Session found")
	return session, nil
}

// ResetSession discards the session for a new journey. Resetting an unknown
// session is a no-op.
func (s *ItineraryServiceImpl) ResetSession(ctx context.Context, sessionID uuid.UUID) error {
	_, span := otel.Tracer("ItineraryService").Start(ctx, "ResetSession", trace.WithAttributes(
		attribute.String("session.id", sessionID.String()),
	))
	defer span.End()

	s.sessions.Delete(sessionID.String())
	s.logger.InfoContext(ctx, "Session reset", slog.String("sessionID", sessionID.String()))
	span.SetStatus(codes.Ok, "Session reset")
	return nil
}

// ToggleDayExpansion flips the expanded state of one day and returns the
// resulting expanded-day set.
func (s *ItineraryServiceImpl) ToggleDayExpansion(ctx context.Context, sessionID uuid.UUID, day int) (map[int]bool, error) {
	session, err := s.CurrentSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.ExpandedDays[day] {
		delete(session.ExpandedDays, day)
	} else {
		session.ExpandedDays[day] = true
	}
	return session.ExpandedDays, nil
}

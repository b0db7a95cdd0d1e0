package packing

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	appMiddleware "github.com/tripgenie/tripgenie/app/middleware"
	"github.com/tripgenie/tripgenie/internal/api"
	"github.com/tripgenie/tripgenie/internal/types"
)

// SessionProvider supplies the generated session the checklist derives from.
type SessionProvider interface {
	CurrentSession(ctx context.Context, sessionID uuid.UUID) (*types.TripSession, error)
}

type PackingHandler struct {
	sessions SessionProvider
	logger   *slog.Logger
}

func NewPackingHandler(sessions SessionProvider, logger *slog.Logger) *PackingHandler {
	return &PackingHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// Get returns the packing checklist for the session's current itinerary.
func (h *PackingHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PackingList").Start(r.Context(), "PackingList", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itinerary/packing-list"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "PackingList"))

	sessionID, ok := appMiddleware.GetSessionIDFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Session not established")
		return
	}

	session, err := h.sessions.CurrentSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, types.ErrNoItinerary) {
			api.ErrorResponse(w, r, http.StatusNotFound, err.Error())
			return
		}
		l.ErrorContext(ctx, "Failed to fetch session", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch session")
		return
	}

	list := GeneratePackingList(session.Params.City, session.Params.Days, session.Itinerary.ActivityTitles())
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{"packing_list": list})
}

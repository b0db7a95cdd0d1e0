package export

import (
	"context"
	"errors"
	"fmt"
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

type ExportHandler struct {
	exportService ExportService
	logger        *slog.Logger
}

func NewExportHandler(exportService ExportService, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
		logger:        logger,
	}
}

type exportFunc func(ctx context.Context, sessionID uuid.UUID) ([]byte, string, error)

// serve runs one export kind and writes it as a download. A failure in one
// kind never affects the routes of the other kinds.
func (h *ExportHandler) serve(w http.ResponseWriter, r *http.Request, name, route, contentType string, fn exportFunc) {
	ctx, span := otel.Tracer(name).Start(r.Context(), name, trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String(route),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", name))

	sessionID, ok := appMiddleware.GetSessionIDFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Session not established")
		return
	}

	data, filename, err := fn(ctx, sessionID)
	if err != nil {
		if errors.Is(err, types.ErrNoItinerary) {
			api.ErrorResponse(w, r, http.StatusNotFound, err.Error())
			return
		}
		l.ErrorContext(ctx, "Export failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		l.ErrorContext(ctx, "Failed to write export body", slog.Any("error", err))
	}
}

// JSON serves the pretty-printed itinerary document.
func (h *ExportHandler) JSON(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "ExportJSON", "/itinerary/export/json", "application/json", h.exportService.ExportJSON)
}

// Calendar serves the ICS calendar export.
func (h *ExportHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "ExportCalendar", "/itinerary/export/calendar", "text/calendar", h.exportService.ExportCalendar)
}

// PDF serves the paginated document export.
func (h *ExportHandler) PDF(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "ExportPDF", "/itinerary/export/pdf", "application/pdf", h.exportService.ExportPDF)
}

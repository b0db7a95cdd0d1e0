package export

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/tripgenie/tripgenie/app/observability/metrics"
	"github.com/tripgenie/tripgenie/internal/api/packing"
	"github.com/tripgenie/tripgenie/internal/types"
)

// SessionProvider supplies the generated session an export renders from.
type SessionProvider interface {
	CurrentSession(ctx context.Context, sessionID uuid.UUID) (*types.TripSession, error)
}

// Ensure implementation satisfies the interface
var _ ExportService = (*ExportServiceImpl)(nil)

// ExportService renders the session's itinerary into each export format.
// Exports are pure transformations over already-computed state; each kind
// fails independently of the others.
type ExportService interface {
	ExportJSON(ctx context.Context, sessionID uuid.UUID) ([]byte, string, error)
	ExportCalendar(ctx context.Context, sessionID uuid.UUID) ([]byte, string, error)
	ExportPDF(ctx context.Context, sessionID uuid.UUID) ([]byte, string, error)
}

type ExportServiceImpl struct {
	logger   *slog.Logger
	sessions SessionProvider
}

func NewExportService(sessions SessionProvider, logger *slog.Logger) *ExportServiceImpl {
	return &ExportServiceImpl{
		logger:   logger,
		sessions: sessions,
	}
}

func attributeKind(kind string) trace.SpanStartOption {
	return trace.WithAttributes(attribute.String("export.kind", kind))
}

// fileStem builds the export filename prefix from the destination city.
func fileStem(city string) string {
	stem := strings.ReplaceAll(strings.TrimSpace(city), " ", "_")
	if stem == "" {
		stem = "trip"
	}
	return stem
}

func (s *ExportServiceImpl) export(ctx context.Context, sessionID uuid.UUID, kind string, render func(*types.TripSession) ([]byte, error)) ([]byte, string, error) {
	ctx, span := otel.Tracer("ExportService").Start(ctx, "Export", attributeKind(kind))
	defer span.End()

	kindAttr := metric.WithAttributes(attribute.String("kind", kind))
	metrics.Get().ExportRequestsTotal.Add(ctx, 1, kindAttr)

	session, err := s.sessions.CurrentSession(ctx, sessionID)
	if err != nil {
		span.SetStatus(codes.Error, "No session to export")
		return nil, "", err
	}

	data, err := render(session)
	if err != nil {
		metrics.Get().ExportErrorsTotal.Add(ctx, 1, kindAttr)
		s.logger.ErrorContext(ctx, "Export failed",
			slog.String("kind", kind),
			slog.Any("error", err),
		)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Export failed")
		return nil, "", fmt.Errorf("%s export failed: %w", kind, err)
	}

	span.SetStatus(codes.Ok, "Export complete")
	return data, fileStem(session.Params.City), nil
}

func (s *ExportServiceImpl) ExportJSON(ctx context.Context, sessionID uuid.UUID) ([]byte, string, error) {
	data, stem, err := s.export(ctx, sessionID, "json", func(session *types.TripSession) ([]byte, error) {
		return BuildJSON(session.Itinerary)
	})
	if err != nil {
		return nil, "", err
	}
	return data, stem + "_itinerary.json", nil
}

func (s *ExportServiceImpl) ExportCalendar(ctx context.Context, sessionID uuid.UUID) ([]byte, string, error) {
	data, stem, err := s.export(ctx, sessionID, "calendar", func(session *types.TripSession) ([]byte, error) {
		return []byte(BuildCalendar(session.Itinerary, session.Params.StartDate)), nil
	})
	if err != nil {
		return nil, "", err
	}
	return data, stem + "_itinerary.ics", nil
}

func (s *ExportServiceImpl) ExportPDF(ctx context.Context, sessionID uuid.UUID) ([]byte, string, error) {
	data, stem, err := s.export(ctx, sessionID, "pdf", func(session *types.TripSession) ([]byte, error) {
		list := packing.GeneratePackingList(session.Params.City, session.Params.Days, session.Itinerary.ActivityTitles())
		return BuildPDF(session, list)
	})
	if err != nil {
		return nil, "", err
	}
	return data, stem + "_itinerary.pdf", nil
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appMiddleware "github.com/tripgenie/tripgenie/app/middleware"
	"github.com/tripgenie/tripgenie/internal/api/export"
	"github.com/tripgenie/tripgenie/internal/api/itinerary"
	"github.com/tripgenie/tripgenie/internal/api/packing"
)

// Config contains dependencies needed for the router setup
type Config struct {
	ItineraryHandler *itinerary.ItineraryHandler
	PackingHandler   *packing.PackingHandler
	ExportHandler    *export.ExportHandler
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (like logger, requestID, recoverer) are expected
// to be applied *before* mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", appMiddleware.SessionHeader},
		ExposedHeaders:   []string{"Link", "Content-Disposition", appMiddleware.SessionHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Heartbeat/Health check endpoint
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			// Every planning route is scoped to one session
			r.Use(appMiddleware.Session)

			r.Route("/itinerary", func(r chi.Router) {
				r.Post("/", cfg.ItineraryHandler.Generate)
				r.Get("/", cfg.ItineraryHandler.Current)
				r.Delete("/", cfg.ItineraryHandler.Reset)
				r.Post("/days/{day}/toggle", cfg.ItineraryHandler.ToggleDay)

				r.Get("/packing-list", cfg.PackingHandler.Get)

				r.Route("/export", func(r chi.Router) {
					r.Get("/json", cfg.ExportHandler.JSON)
					r.Get("/calendar", cfg.ExportHandler.Calendar)
					r.Get("/pdf", cfg.ExportHandler.PDF)
				})
			})
		})
	})

	return r
}

package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/eventboard-be/internal/api/handlers"
	"github.com/isdelr/eventboard-be/internal/services"
	"github.com/isdelr/eventboard-be/internal/websocket"
)

// Options carries router settings that come from configuration.
type Options struct {
	AllowedOrigins  []string
	DefaultRadiusKm float64
}

// NewRouter creates and configures a new Chi router.
func NewRouter(hub *websocket.Hub, eventService services.EventServiceProvider, analyticsService services.AnalyticsServiceProvider, opts Options) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	eventHandler := handlers.NewEventHandler(eventService, opts.DefaultRadiusKm)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		if hub != nil {
			wsHandler := handlers.NewWebSocketHandler(hub, opts.AllowedOrigins)
			r.Get("/ws", wsHandler.Serve)
		}

		r.Route("/events", func(r chi.Router) {
			r.Get("/", eventHandler.GetAll)
			r.Post("/", eventHandler.Create)
			r.Get("/search", eventHandler.Search)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", eventHandler.Get)
				r.Put("/", eventHandler.Update)
				r.Patch("/", eventHandler.Patch)
				r.Delete("/", eventHandler.Delete)
				r.Post("/views", analyticsHandler.RecordView)
				r.Post("/shares", analyticsHandler.Share)
				r.Get("/stats", analyticsHandler.Stats)
				r.Get("/weather", analyticsHandler.Weather)
			})
		})

		r.Get("/share/{token}", analyticsHandler.Scan)
		r.Get("/analytics", analyticsHandler.Report)
	})

	return r
}

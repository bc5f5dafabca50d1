package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Dosada05/swiss-tournament/handlers"
	"github.com/Dosada05/swiss-tournament/middleware"
)

type Options struct {
	JWTSecret      []byte
	AllowedOrigins []string
	// Metrics serves GET /metrics when set.
	Metrics http.Handler
}

func SetupRoutes(
	router chi.Router,
	opts Options,
	healthHandler *handlers.HealthHandler,
	tournamentHandler *handlers.TournamentHandler,
	playerHandler *handlers.PlayerHandler,
	matchHandler *handlers.MatchHandler,
	roundHandler *handlers.RoundHandler,
	adminHandler *handlers.AdminHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/health", healthHandler.HealthHandler)
	if opts.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	// The websocket route stays outside the timeout middleware.
	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)

	authenticated := func(r chi.Router) {
		r.Use(middleware.Authenticate(opts.JWTSecret))
		r.Use(middleware.RequireOrganizer)
	}

	router.Group(func(r chi.Router) {
		r.Use(chiMiddleware.Timeout(30 * time.Second))

		r.Route("/tournaments", func(r chi.Router) {
			r.Get("/", tournamentHandler.ListHandler)

			r.Group(func(r chi.Router) {
				authenticated(r)
				r.Post("/", tournamentHandler.CreateHandler)
			})

			r.Route("/{tournamentID}", func(r chi.Router) {
				r.Get("/", tournamentHandler.GetByIDHandler)
				r.Get("/standings", tournamentHandler.StandingsHandler)
				r.Get("/players/count", playerHandler.CountHandler)
				r.Get("/players/{playerID}/bye", playerHandler.ByeHandler)
				r.Get("/matches", matchHandler.ListHandler)
				r.Get("/matches/check", matchHandler.CheckHandler)

				r.Group(func(r chi.Router) {
					authenticated(r)
					r.Post("/players", playerHandler.RegisterHandler)
					r.Post("/players/{playerID}", playerHandler.EnrollHandler)
					r.Post("/matches", matchHandler.ReportHandler)
					r.Post("/rounds", roundHandler.NextRoundHandler)
					r.Post("/standings/export", tournamentHandler.ExportStandingsHandler)
				})
			})
		})

		r.Route("/admin", func(r chi.Router) {
			authenticated(r)
			r.Delete("/records", adminHandler.ResetHandler)
		})
	})
}

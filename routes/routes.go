package routes

import (
	"github.com/Dosada05/sportscore-system/handlers"
	"github.com/Dosada05/sportscore-system/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes собирает все маршруты API. Мутирующие операции закрыты
// JWT-аутентификацией и ролями admin/referee, чтение публичное.
func SetupRoutes(
	router *chi.Mux,
	auth *middleware.Authenticator,
	authHandler *handlers.AuthHandler,
	sportHandler *handlers.SportHandler,
	teamHandler *handlers.TeamHandler,
	playerHandler *handlers.PlayerHandler,
	matchHandler *handlers.MatchHandler,
	dashboardHandler *handlers.DashboardHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/ws", webSocketHandler.ServeWs)

	router.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Route("/sports", func(r chi.Router) {
			r.Get("/", sportHandler.GetAllSports)
			r.Get("/{sportID}", sportHandler.GetSportByID)
			r.Get("/{sportID}/teams", sportHandler.ListSportTeams)

			r.Group(func(r chi.Router) {
				r.Use(auth.Authenticate)
				r.Use(auth.Authorize("admin"))
				r.Post("/", sportHandler.CreateSport)
			})
		})

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", teamHandler.GetAllTeams)
			r.Get("/{teamID}", teamHandler.GetTeamByID)
			r.Get("/{teamID}/players", teamHandler.ListTeamPlayers)

			r.Group(func(r chi.Router) {
				r.Use(auth.Authenticate)
				r.Use(auth.Authorize("admin"))
				r.Post("/", teamHandler.CreateTeam)
				r.Patch("/{teamID}", teamHandler.UpdateTeam)
				r.Post("/{teamID}/photo", teamHandler.UploadTeamPhoto)
			})
		})

		r.Route("/players", func(r chi.Router) {
			r.Get("/", playerHandler.GetAllPlayers)
			r.Get("/{playerID}", playerHandler.GetPlayerByID)

			r.Group(func(r chi.Router) {
				r.Use(auth.Authenticate)
				r.Use(auth.Authorize("admin"))
				r.Post("/", playerHandler.CreatePlayer)
				r.Patch("/{playerID}", playerHandler.UpdatePlayer)
				r.Post("/{playerID}/photo", playerHandler.UploadPlayerPhoto)
			})
		})

		r.Route("/matches", func(r chi.Router) {
			r.Get("/", matchHandler.GetAllMatches)
			r.Get("/live", matchHandler.GetLiveMatches)
			r.Get("/{matchID}", matchHandler.GetMatchByID)
			r.Get("/{matchID}/events", matchHandler.ListMatchEvents)

			r.Group(func(r chi.Router) {
				r.Use(auth.Authenticate)
				r.Use(auth.Authorize("admin", "referee"))
				r.Post("/", matchHandler.CreateMatch)
				r.Patch("/{matchID}/score", matchHandler.UpdateScore)
				r.Post("/{matchID}/start", matchHandler.StartMatch)
				r.Post("/{matchID}/end", matchHandler.EndMatch)
				r.Post("/{matchID}/cancel", matchHandler.CancelMatch)
				r.Post("/{matchID}/events", matchHandler.CreateMatchEvent)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(auth.Authorize("admin", "referee"))
			r.Post("/match-events", matchHandler.CreateMatchEventGlobal)
		})

		r.Get("/dashboard", dashboardHandler.GetSummary)
		r.Get("/rankings", dashboardHandler.GetRankings)
		r.Get("/schedule", dashboardHandler.GetSchedule)
		r.Get("/analytics/top-scorers", dashboardHandler.GetTopScorers)
	})
}

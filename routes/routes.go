package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/markdarcy45-oss/Teams/handlers"
	"github.com/markdarcy45-oss/Teams/middleware"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	Game      *handlers.GameHandler
	Roster    *handlers.RosterHandler
	Team      *handlers.TeamHandler
	Result    *handlers.ResultHandler
	Stats     *handlers.StatsHandler
	WebSocket *handlers.WebSocketHandler
}

func SetupRoutes(h Handlers, jwtSecret []byte) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Post("/auth/register", h.Auth.Register)
	router.Post("/auth/login", h.Auth.Login)

	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))

		r.Get("/games", h.Game.ListGames)
		r.Post("/games/join", h.Game.JoinGame)

		r.Route("/games/{gameID}", func(r chi.Router) {
			r.Get("/players", h.Roster.ListPlayers)
			r.Get("/members", h.Game.ListMembers)
			r.Get("/teams", h.Team.GetLockedTeams)
			r.Get("/statistics", h.Stats.GetStatistics)
			r.Post("/teams/balance", h.Team.BalanceTeams)

			// Game admins manage roles; the service checks the caller's
			// membership role itself.
			r.Patch("/members/role", h.Game.UpdateMemberRole)

			// Remaining mutations require the global admin role.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)

				r.Post("/logo", h.Game.UploadLogo)
				r.Post("/teams/lock", h.Team.LockTeams)
				r.Post("/teams/unlock", h.Team.UnlockTeams)
				r.Post("/teams/swap", h.Team.SwapPlayers)
				r.Post("/results", h.Result.SubmitResults)
			})
		})

		// Roster sync creates games, so it is admin-gated as well.
		r.With(middleware.RequireAdmin).Post("/games", h.Roster.SyncRoster)

		r.Get("/ws/games/{gameID}", h.WebSocket.Subscribe)
	})

	return router
}

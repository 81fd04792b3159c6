package routes

import (
	"net/http"
	"time"

	"github.com/Dosada05/volley-coach/handlers"
	"github.com/Dosada05/volley-coach/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/volley-coach/docs" // registers the swagger spec
)

type Handlers struct {
	Match      *handlers.MatchHandler
	History    *handlers.HistoryHandler
	Team       *handlers.TeamHandler
	Player     *handlers.PlayerHandler
	Tournament *handlers.TournamentHandler
	Account    *handlers.AccountHandler
	WebSocket  *handlers.WebSocketHandler
}

type Options struct {
	JWTSecret      []byte
	AllowedOrigins []string
}

func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	authenticate := middleware.Authenticate(opts.JWTSecret)

	// Websocket connections are long lived, so they stay outside the request timeout.
	router.With(authenticate).Get("/ws/matches/{matchID}", h.WebSocket.ServeMatch)

	router.Route("/api", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(chiMiddleware.Timeout(30 * time.Second))

		r.Route("/matches", func(r chi.Router) {
			r.Get("/", h.Match.ListMatches)
			r.Post("/", h.Match.CreateMatch)

			r.Route("/{matchID}", func(r chi.Router) {
				r.Get("/", h.Match.GetMatch)
				r.Patch("/", h.Match.UpdateMatch)
				r.Delete("/", h.Match.DeleteMatch)

				r.Route("/sets", func(r chi.Router) {
					r.Post("/result", h.Match.RecordSetResult)
					r.Get("/active", h.Match.GetActiveSet)
					r.Get("/completed", h.Match.GetCompletedSets)
					r.Put("/{setIndex}/score", h.Match.CorrectSetScore)
					r.Post("/{setIndex}/lineup/copy", h.Match.CopyLineup)
					r.Put("/{setIndex}/lineup/{slot}", h.Match.AssignLineupSlot)
					r.Delete("/{setIndex}/lineup/{slot}", h.Match.ClearLineupSlot)
				})
			})
		})

		r.Route("/history", func(r chi.Router) {
			r.Get("/", h.History.GetHistory)
			r.Get("/record", h.History.GetRecord)
		})

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", h.Team.ListTeams)
			r.Post("/", h.Team.CreateTeam)
			r.Route("/{teamID}", func(r chi.Router) {
				r.Get("/", h.Team.GetTeam)
				r.Put("/", h.Team.UpdateTeam)
				r.Delete("/", h.Team.DeleteTeam)
				r.Get("/players", h.Team.ListTeamPlayers)
				r.Post("/logo", h.Team.UploadLogo)
			})
		})

		r.Route("/players", func(r chi.Router) {
			r.Get("/", h.Player.ListPlayers)
			r.Post("/", h.Player.CreatePlayer)
			r.Route("/{playerID}", func(r chi.Router) {
				r.Get("/", h.Player.GetPlayer)
				r.Put("/", h.Player.UpdatePlayer)
				r.Delete("/", h.Player.DeletePlayer)
				r.Get("/history", h.History.GetPlayerHistory)
			})
		})

		r.Route("/tournaments", func(r chi.Router) {
			r.Get("/", h.Tournament.ListTournaments)
			r.Post("/", h.Tournament.CreateTournament)
			r.Route("/{tournamentID}", func(r chi.Router) {
				r.Get("/", h.Tournament.GetTournament)
				r.Put("/", h.Tournament.UpdateTournament)
				r.Delete("/", h.Tournament.DeleteTournament)
			})
		})

		r.Delete("/me/data", h.Account.DeleteMyData)
	})
}

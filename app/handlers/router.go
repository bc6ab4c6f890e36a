package handlers

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router builds the HTTP route tree.
func Router(h *Handlers) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.Healthz)

	r.Route("/artists", func(r chi.Router) {
		r.Get("/trending", h.GetTrendingMovers)
		r.Get("/movers", h.GetRankMovers)
		r.Route("/{artistID}", func(r chi.Router) {
			r.Get("/rank", h.GetArtistRank)
			r.Get("/drafting-percentage", h.GetDraftingPercentage)
		})
	})

	r.Route("/users/{userID}", func(r chi.Router) {
		r.Get("/points", h.GetUserPoints)
		r.Get("/roster", h.GetRoster)
		r.Post("/roster", h.SubmitRoster)
	})

	r.Get("/teams/standings", h.GetTeamStandings)
	r.Get("/leaderboard", h.GetLeaderboard)

	r.Route("/bonuses", func(r chi.Router) {
		r.Get("/", h.GetStoredBonuses)
		r.Post("/weekly", h.AwardWeeklyBonuses)
	})

	r.Route("/jobs", func(r chi.Router) {
		r.Post("/daily-scoring", h.TriggerDailyScoring)
		r.Post("/weekly-tiering", h.TriggerWeeklyTiering)
	})

	return r
}

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	pipelinequeue "github.com/Chart-Clash-Club/chartclash-backend/app/modules/scoring/infrastructure/queue"
	standingsservice "github.com/Chart-Clash-Club/chartclash-backend/app/modules/standings/application"
	standingsdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/standings/infrastructure/repositories"
	teamservice "github.com/Chart-Clash-Club/chartclash-backend/app/modules/team/application"
	teamdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/team/infrastructure/repositories"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/attr"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/sharedtypes"
)

// Handlers serves the query layer over the standings, team, and queue
// services. All reads degrade to explicit nulls and zeros for missing data.
type Handlers struct {
	standings standingsservice.Service
	team      teamservice.Service
	queue     pipelinequeue.QueueService
	logger    *slog.Logger
}

func New(standings standingsservice.Service, team teamservice.Service, queue pipelinequeue.QueueService, logger *slog.Logger) *Handlers {
	return &Handlers{
		standings: standings,
		team:      team,
		queue:     queue,
		logger:    logger,
	}
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("Failed to encode response", attr.Error(err))
	}
}

// GetArtistRank serves an artist's rank for a date, defaulting to today.
func (h *Handlers) GetArtistRank(w http.ResponseWriter, r *http.Request) {
	artistID := sharedtypes.ArtistID(chi.URLParam(r, "artistID"))

	date := time.Now().UTC()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid date %q, want YYYY-MM-DD", raw), http.StatusBadRequest)
			return
		}
		date = parsed
	}

	rank, err := h.standings.GetRankOnDate(r.Context(), artistID, date)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to fetch rank: %v", err), http.StatusInternalServerError)
		return
	}
	if rank == nil {
		http.Error(w, "artist has no score on that date", http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, rank)
}

// GetDraftingPercentage serves the category-scoped drafting percentage.
func (h *Handlers) GetDraftingPercentage(w http.ResponseWriter, r *http.Request) {
	artistID := sharedtypes.ArtistID(chi.URLParam(r, "artistID"))

	category := sharedtypes.Tier(r.URL.Query().Get("category"))
	switch category {
	case sharedtypes.TierTopTier, sharedtypes.TierRising, sharedtypes.TierEmerging, sharedtypes.TierBaseline:
	default:
		http.Error(w, fmt.Sprintf("unknown category %q", category), http.StatusBadRequest)
		return
	}

	pct, err := h.standings.GetDraftingPercentage(r.Context(), artistID, category)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to compute drafting percentage: %v", err), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"artist_id":  artistID,
		"category":   category,
		"percentage": pct,
	})
}

// GetTrendingMovers serves the biggest day-over-day score climbers.
func (h *Handlers) GetTrendingMovers(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, fmt.Sprintf("invalid limit %q", raw), http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	movers, err := h.standings.TrendingMovers(r.Context(), limit)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to fetch trending movers: %v", err), http.StatusInternalServerError)
		return
	}
	if movers == nil {
		movers = []standingsservice.TrendingMover{}
	}

	h.writeJSON(w, http.StatusOK, movers)
}

// GetRankMovers serves the biggest day-over-day rank climbers.
func (h *Handlers) GetRankMovers(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, fmt.Sprintf("invalid limit %q", raw), http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	movers, err := h.standings.RankMovers(r.Context(), limit)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to fetch rank movers: %v", err), http.StatusInternalServerError)
		return
	}
	if movers == nil {
		movers = []standingsservice.RankMover{}
	}

	h.writeJSON(w, http.StatusOK, movers)
}

// GetLeaderboard serves the all-time user leaderboard.
func (h *Handlers) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, fmt.Sprintf("invalid limit %q", raw), http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	entries, err := h.standings.GetLeaderboard(r.Context(), limit)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to fetch leaderboard: %v", err), http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []standingsservice.LeaderboardEntry{}
	}

	h.writeJSON(w, http.StatusOK, entries)
}

// AwardWeeklyBonuses computes and stores the current week's artist bonuses,
// returning the pair.
func (h *Handlers) AwardWeeklyBonuses(w http.ResponseWriter, r *http.Request) {
	awards, err := h.standings.AwardWeeklyBonuses(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to award weekly bonuses: %v", err), http.StatusInternalServerError)
		return
	}
	if awards == nil {
		http.Error(w, "no scored days this week", http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, awards)
}

// GetStoredBonuses serves the award history, most recent week first.
func (h *Handlers) GetStoredBonuses(w http.ResponseWriter, r *http.Request) {
	bonuses, err := h.standings.ListWeeklyBonuses(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to fetch bonuses: %v", err), http.StatusInternalServerError)
		return
	}
	if bonuses == nil {
		bonuses = []standingsdb.WeeklyBonus{}
	}

	h.writeJSON(w, http.StatusOK, bonuses)
}

// GetUserPoints serves a user's point breakdown for one timeframe.
func (h *Handlers) GetUserPoints(w http.ResponseWriter, r *http.Request) {
	userID := sharedtypes.UserID(chi.URLParam(r, "userID"))

	timeframe := sharedtypes.Timeframe(r.URL.Query().Get("timeframe"))
	if timeframe == "" {
		timeframe = sharedtypes.TimeframeAll
	}
	if !timeframe.Valid() {
		http.Error(w, fmt.Sprintf("unknown timeframe %q", timeframe), http.StatusBadRequest)
		return
	}

	breakdown, err := h.standings.GetUserPointsBreakdown(r.Context(), userID, timeframe)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to fetch points: %v", err), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, breakdown)
}

// GetTeamStandings serves the weekly team leaderboard.
func (h *Handlers) GetTeamStandings(w http.ResponseWriter, r *http.Request) {
	standings, err := h.standings.TeamStandings(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to fetch team standings: %v", err), http.StatusInternalServerError)
		return
	}
	if standings == nil {
		standings = []standingsservice.TeamStanding{}
	}

	h.writeJSON(w, http.StatusOK, standings)
}

// SubmitRosterDto is the request body for a roster submission.
type SubmitRosterDto struct {
	TeamName  string                 `json:"team_name"`
	ArtistIDs []sharedtypes.ArtistID `json:"artist_ids"`
}

// SubmitRoster replaces a user's roster.
func (h *Handlers) SubmitRoster(w http.ResponseWriter, r *http.Request) {
	userID := sharedtypes.UserID(chi.URLParam(r, "userID"))

	var input SubmitRosterDto
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, fmt.Sprintf("failed to decode request body: %v", err), http.StatusBadRequest)
		return
	}

	result, err := h.team.SubmitRoster(r.Context(), userID, input.TeamName, input.ArtistIDs)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to submit roster: %v", err), http.StatusInternalServerError)
		return
	}
	if result.IsFailure() {
		h.writeJSON(w, http.StatusConflict, result.Failure)
		return
	}

	h.writeJSON(w, http.StatusOK, result.Success)
}

// GetRoster serves a user's team and members.
func (h *Handlers) GetRoster(w http.ResponseWriter, r *http.Request) {
	userID := sharedtypes.UserID(chi.URLParam(r, "userID"))

	team, members, err := h.team.GetRoster(r.Context(), userID)
	if err != nil {
		if errors.Is(err, teamdb.ErrTeamNotFound) {
			http.Error(w, "user has no team", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("failed to fetch roster: %v", err), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"team":    team,
		"members": members,
	})
}

// TriggerDailyScoring enqueues an immediate scoring pass.
func (h *Handlers) TriggerDailyScoring(w http.ResponseWriter, r *http.Request) {
	if err := h.queue.TriggerDailyScoring(r.Context()); err != nil {
		http.Error(w, fmt.Sprintf("failed to enqueue daily scoring: %v", err), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// TriggerWeeklyTiering enqueues an immediate tiering pass.
func (h *Handlers) TriggerWeeklyTiering(w http.ResponseWriter, r *http.Request) {
	if err := h.queue.TriggerWeeklyTiering(r.Context()); err != nil {
		http.Error(w, fmt.Sprintf("failed to enqueue weekly tiering: %v", err), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// Healthz reports process liveness.
func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

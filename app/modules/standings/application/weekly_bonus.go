package standingsservice

import (
	"context"
	"sort"

	"github.com/google/uuid"

	scoringdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/scoring/infrastructure/repositories"
	standingsdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/standings/infrastructure/repositories"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/attr"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/sharedtypes"
)

const (
	topScorerBonusPoints    = 100
	mostImprovedBonusPoints = 50
)

// artistWeek accumulates one artist's scored days within the bonus week.
// firstTotal and lastTotal hold the earliest and latest scored day, not the
// window edges; gap days in between do not matter.
type artistWeek struct {
	total      int
	firstTotal int
	lastTotal  int
}

func (w *artistWeek) gain() int { return w.lastTotal - w.firstTotal }

// AwardWeeklyBonuses grants the week's two artist bonuses: the highest
// weekly total and the largest first-to-last-day gain. Awards upsert on
// (artist, type, week_start), so a rerun within the same week overwrites
// instead of stacking. Nil awards mean no day in the window has any data.
func (s *StandingsService) AwardWeeklyBonuses(ctx context.Context) (*WeeklyBonusAwards, error) {
	now := s.now()
	today := scoringdb.Day(now)
	weekStart := today.AddDate(0, 0, -(weeklyWindowDays - 1))

	weeks := make(map[sharedtypes.ArtistID]*artistWeek)
	for d := weekStart; !d.After(today); d = d.AddDate(0, 0, 1) {
		totals, err := s.scores.TotalsOnDate(ctx, d)
		if err != nil {
			return nil, err
		}
		for _, t := range totals {
			w := weeks[t.ArtistID]
			if w == nil {
				w = &artistWeek{firstTotal: t.Total}
				weeks[t.ArtistID] = w
			}
			w.total += t.Total
			w.lastTotal = t.Total
		}
	}
	if len(weeks) == 0 {
		return nil, nil
	}

	ids := make([]sharedtypes.ArtistID, 0, len(weeks))
	for id := range weeks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	// Ascending iteration with strict > keeps ties on the lowest artist id.
	top, improved := ids[0], ids[0]
	for _, id := range ids[1:] {
		if weeks[id].total > weeks[top].total {
			top = id
		}
		if weeks[id].gain() > weeks[improved].gain() {
			improved = id
		}
	}

	bonuses := []*standingsdb.WeeklyBonus{
		{
			ID:          uuid.NewString(),
			ArtistID:    top,
			BonusType:   standingsdb.BonusTopScorer,
			WeekStart:   weekStart,
			BonusPoints: topScorerBonusPoints,
			CreatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			ArtistID:    improved,
			BonusType:   standingsdb.BonusMostImproved,
			WeekStart:   weekStart,
			BonusPoints: mostImprovedBonusPoints,
			CreatedAt:   now,
		},
	}
	for _, bonus := range bonuses {
		if err := s.points.UpsertWeeklyBonus(ctx, bonus); err != nil {
			return nil, err
		}
	}

	s.logger.InfoContext(ctx, "Weekly bonuses awarded",
		attr.ExtractCorrelationID(ctx),
		attr.Time("week_start", weekStart),
		attr.ArtistID("top_scorer", top),
		attr.ArtistID("most_improved", improved),
	)

	return &WeeklyBonusAwards{
		WeekStart: weekStart,
		TopScorer: TopScorerAward{
			ArtistID:    top,
			WeeklyTotal: weeks[top].total,
			Points:      topScorerBonusPoints,
		},
		MostImproved: MostImprovedAward{
			ArtistID: improved,
			Gain:     weeks[improved].gain(),
			Points:   mostImprovedBonusPoints,
		},
	}, nil
}

// ListWeeklyBonuses returns the stored award history, most recent week
// first.
func (s *StandingsService) ListWeeklyBonuses(ctx context.Context) ([]standingsdb.WeeklyBonus, error) {
	return s.points.ListWeeklyBonuses(ctx)
}

package standingsservice

import (
	"context"
	"sort"
	"time"

	scoringdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/scoring/infrastructure/repositories"
	standingsdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/standings/infrastructure/repositories"
	teamdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/team/infrastructure/repositories"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/sharedtypes"
)

// FakeScoreRepository serves queries off an in-memory record list.
type FakeScoreRepository struct {
	Records []scoringdb.DailyScore
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (f *FakeScoreRepository) UpsertDailyScore(ctx context.Context, score *scoringdb.DailyScore) error {
	f.Records = append(f.Records, *score)
	return nil
}

func (f *FakeScoreRepository) TotalsOnDate(ctx context.Context, d time.Time) ([]scoringdb.ArtistDayTotal, error) {
	d = day(d)
	sums := make(map[sharedtypes.ArtistID]int)
	for _, r := range f.Records {
		if day(r.ScoreDate).Equal(d) {
			sums[r.ArtistID] += r.TotalScore
		}
	}
	totals := make([]scoringdb.ArtistDayTotal, 0, len(sums))
	for id, total := range sums {
		totals = append(totals, scoringdb.ArtistDayTotal{ArtistID: id, Total: total})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].ArtistID < totals[j].ArtistID })
	return totals, nil
}

func (f *FakeScoreRepository) LatestDayWithData(ctx context.Context, before time.Time, lookbackDays int) (time.Time, bool, error) {
	before = day(before)
	floor := before.AddDate(0, 0, -lookbackDays)
	var best time.Time
	found := false
	for _, r := range f.Records {
		d := day(r.ScoreDate)
		if d.Before(before) && !d.Before(floor) && (!found || d.After(best)) {
			best = d
			found = true
		}
	}
	return best, found, nil
}

func (f *FakeScoreRepository) LatestScore(ctx context.Context, artistID sharedtypes.ArtistID) (*scoringdb.DailyScore, error) {
	var latest *scoringdb.DailyScore
	for i := range f.Records {
		r := &f.Records[i]
		if r.ArtistID != artistID {
			continue
		}
		if latest == nil || r.ScoreDate.After(latest.ScoreDate) {
			latest = r
		}
	}
	return latest, nil
}

func (f *FakeScoreRepository) TotalAllTime(ctx context.Context, artistIDs []sharedtypes.ArtistID) (int, error) {
	wanted := make(map[sharedtypes.ArtistID]struct{}, len(artistIDs))
	for _, id := range artistIDs {
		wanted[id] = struct{}{}
	}
	total := 0
	for _, r := range f.Records {
		if _, ok := wanted[r.ArtistID]; ok {
			total += r.TotalScore
		}
	}
	return total, nil
}

func (f *FakeScoreRepository) TotalInWindow(ctx context.Context, artistIDs []sharedtypes.ArtistID, from, to time.Time) (int, error) {
	wanted := make(map[sharedtypes.ArtistID]struct{}, len(artistIDs))
	for _, id := range artistIDs {
		wanted[id] = struct{}{}
	}
	total := 0
	for _, r := range f.Records {
		d := day(r.ScoreDate)
		if _, ok := wanted[r.ArtistID]; ok && !d.Before(day(from)) && d.Before(day(to)) {
			total += r.TotalScore
		}
	}
	return total, nil
}

func (f *FakeScoreRepository) HistoryInWindow(ctx context.Context, artistID sharedtypes.ArtistID, from, to time.Time) ([]scoringdb.DailyScore, error) {
	var history []scoringdb.DailyScore
	for _, r := range f.Records {
		d := day(r.ScoreDate)
		if r.ArtistID == artistID && !d.Before(day(from)) && d.Before(day(to)) {
			history = append(history, r)
		}
	}
	sort.Slice(history, func(i, j int) bool { return history[i].ScoreDate.Before(history[j].ScoreDate) })
	return history, nil
}

type FakeTeamRepository struct {
	Teams   []teamdb.UserTeam
	Members map[sharedtypes.TeamID][]teamdb.TeamMember
}

func (f *FakeTeamRepository) GetTeamByUser(ctx context.Context, userID sharedtypes.UserID) (*teamdb.UserTeam, error) {
	for i := range f.Teams {
		if f.Teams[i].UserID == userID {
			copied := f.Teams[i]
			return &copied, nil
		}
	}
	return nil, teamdb.ErrTeamNotFound
}

func (f *FakeTeamRepository) CreateTeam(ctx context.Context, team *teamdb.UserTeam) error {
	f.Teams = append(f.Teams, *team)
	return nil
}

func (f *FakeTeamRepository) ListAllTeams(ctx context.Context) ([]teamdb.UserTeam, error) {
	return f.Teams, nil
}

func (f *FakeTeamRepository) ReplaceRoster(ctx context.Context, teamID sharedtypes.TeamID, members []teamdb.TeamMember, updatedAt time.Time) error {
	if f.Members == nil {
		f.Members = make(map[sharedtypes.TeamID][]teamdb.TeamMember)
	}
	f.Members[teamID] = members
	return nil
}

func (f *FakeTeamRepository) ListMembers(ctx context.Context, teamID sharedtypes.TeamID) ([]teamdb.TeamMember, error) {
	return f.Members[teamID], nil
}

func (f *FakeTeamRepository) CountPicks(ctx context.Context, artistID sharedtypes.ArtistID, category sharedtypes.Tier) (int, error) {
	count := 0
	for _, members := range f.Members {
		for _, m := range members {
			if m.ArtistID == artistID && m.Category == category {
				count++
			}
		}
	}
	return count, nil
}

func (f *FakeTeamRepository) CountDistinctTeams(ctx context.Context, category sharedtypes.Tier) (int, error) {
	teams := make(map[sharedtypes.TeamID]struct{})
	for teamID, members := range f.Members {
		for _, m := range members {
			if m.Category == category {
				teams[teamID] = struct{}{}
				break
			}
		}
	}
	return len(teams), nil
}

type FakePointsRepository struct {
	Points     map[sharedtypes.UserID]standingsdb.UserPoints
	Bonuses    map[bonusKey]standingsdb.WeeklyBonus
	UpsertFunc func(ctx context.Context, points *standingsdb.UserPoints) error
}

func (f *FakePointsRepository) UpsertUserPoints(ctx context.Context, points *standingsdb.UserPoints) error {
	if f.UpsertFunc != nil {
		if err := f.UpsertFunc(ctx, points); err != nil {
			return err
		}
	}
	if f.Points == nil {
		f.Points = make(map[sharedtypes.UserID]standingsdb.UserPoints)
	}
	f.Points[points.UserID] = *points
	return nil
}

func (f *FakePointsRepository) GetUserPoints(ctx context.Context, userID sharedtypes.UserID) (*standingsdb.UserPoints, error) {
	points, ok := f.Points[userID]
	if !ok {
		return nil, nil
	}
	return &points, nil
}

func (f *FakePointsRepository) Leaderboard(ctx context.Context, limit int) ([]standingsdb.UserPoints, error) {
	rows := make([]standingsdb.UserPoints, 0, len(f.Points))
	for _, p := range f.Points {
		rows = append(rows, p)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalPoints != rows[j].TotalPoints {
			return rows[i].TotalPoints > rows[j].TotalPoints
		}
		return rows[i].UserID < rows[j].UserID
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

type bonusKey struct {
	artistID  sharedtypes.ArtistID
	bonusType standingsdb.BonusType
	weekStart time.Time
}

func (f *FakePointsRepository) UpsertWeeklyBonus(ctx context.Context, bonus *standingsdb.WeeklyBonus) error {
	if f.Bonuses == nil {
		f.Bonuses = make(map[bonusKey]standingsdb.WeeklyBonus)
	}
	f.Bonuses[bonusKey{bonus.ArtistID, bonus.BonusType, bonus.WeekStart}] = *bonus
	return nil
}

func (f *FakePointsRepository) ListWeeklyBonuses(ctx context.Context) ([]standingsdb.WeeklyBonus, error) {
	rows := make([]standingsdb.WeeklyBonus, 0, len(f.Bonuses))
	for _, b := range f.Bonuses {
		rows = append(rows, b)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].WeekStart.Equal(rows[j].WeekStart) {
			return rows[i].WeekStart.After(rows[j].WeekStart)
		}
		return rows[i].BonusType < rows[j].BonusType
	})
	return rows, nil
}

package scoringdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/sharedtypes"
	"github.com/uptrace/bun"
)

// ScoringDBImpl implements Repository on bun.
type ScoringDBImpl struct {
	DB *bun.DB
}

// Day truncates t to its UTC calendar day.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (db *ScoringDBImpl) UpsertDailyScore(ctx context.Context, score *DailyScore) error {
	if score.TotalScore < 0 || score.TotalScore != score.BreakdownSum() {
		return fmt.Errorf("%w: artist %s total %d breakdown sum %d",
			ErrInvalidScore, score.ArtistID, score.TotalScore, score.BreakdownSum())
	}

	score.ScoreDate = Day(score.ScoreDate)

	_, err := db.DB.NewInsert().
		Model(score).
		On("CONFLICT (artist_id, score_date) DO UPDATE").
		Set("streaming_streams = EXCLUDED.streaming_streams").
		Set("video_views = EXCLUDED.video_views").
		Set("engagement_rate = EXCLUDED.engagement_rate").
		Set("analytics_buzz = EXCLUDED.analytics_buzz").
		Set("cross_platform_spike = EXCLUDED.cross_platform_spike").
		Set("new_release = EXCLUDED.new_release").
		Set("short_video_followers = EXCLUDED.short_video_followers").
		Set("short_video_likes = EXCLUDED.short_video_likes").
		Set("short_video_views = EXCLUDED.short_video_views").
		Set("breakdown = EXCLUDED.breakdown").
		Set("total_score = EXCLUDED.total_score").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert daily score for artist %s on %s: %w",
			score.ArtistID, score.ScoreDate.Format("2006-01-02"), err)
	}
	return nil
}

func (db *ScoringDBImpl) TotalsOnDate(ctx context.Context, day time.Time) ([]ArtistDayTotal, error) {
	day = Day(day)

	var totals []ArtistDayTotal
	err := db.DB.NewSelect().
		Model((*DailyScore)(nil)).
		ColumnExpr("artist_id").
		ColumnExpr("SUM(total_score) AS total").
		Where("score_date = ?", day).
		GroupExpr("artist_id").
		Scan(ctx, &totals)
	if err != nil {
		return nil, fmt.Errorf("failed to sum scores on %s: %w", day.Format("2006-01-02"), err)
	}
	return totals, nil
}

func (db *ScoringDBImpl) LatestDayWithData(ctx context.Context, before time.Time, lookbackDays int) (time.Time, bool, error) {
	day := Day(before)
	floor := day.AddDate(0, 0, -lookbackDays)

	var latest time.Time
	err := db.DB.NewSelect().
		Model((*DailyScore)(nil)).
		ColumnExpr("MAX(score_date)").
		Where("score_date < ?", day).
		Where("score_date >= ?", floor).
		Scan(ctx, &latest)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("failed to find latest scored day before %s: %w",
			day.Format("2006-01-02"), err)
	}
	if latest.IsZero() {
		return time.Time{}, false, nil
	}
	return Day(latest), true, nil
}

func (db *ScoringDBImpl) LatestScore(ctx context.Context, artistID sharedtypes.ArtistID) (*DailyScore, error) {
	var score DailyScore
	err := db.DB.NewSelect().
		Model(&score).
		Where("artist_id = ?", artistID).
		Order("score_date DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch latest score for artist %s: %w", artistID, err)
	}
	return &score, nil
}

func (db *ScoringDBImpl) TotalAllTime(ctx context.Context, artistIDs []sharedtypes.ArtistID) (int, error) {
	if len(artistIDs) == 0 {
		return 0, nil
	}

	var total sql.NullInt64
	err := db.DB.NewSelect().
		Model((*DailyScore)(nil)).
		ColumnExpr("SUM(total_score)").
		Where("artist_id IN (?)", bun.In(artistIDs)).
		Scan(ctx, &total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum all-time scores: %w", err)
	}
	return int(total.Int64), nil
}

func (db *ScoringDBImpl) TotalInWindow(ctx context.Context, artistIDs []sharedtypes.ArtistID, from, to time.Time) (int, error) {
	if len(artistIDs) == 0 {
		return 0, nil
	}

	var total sql.NullInt64
	err := db.DB.NewSelect().
		Model((*DailyScore)(nil)).
		ColumnExpr("SUM(total_score)").
		Where("artist_id IN (?)", bun.In(artistIDs)).
		Where("score_date >= ?", Day(from)).
		Where("score_date < ?", Day(to)).
		Scan(ctx, &total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum windowed scores: %w", err)
	}
	return int(total.Int64), nil
}

func (db *ScoringDBImpl) HistoryInWindow(ctx context.Context, artistID sharedtypes.ArtistID, from, to time.Time) ([]DailyScore, error) {
	var scores []DailyScore
	err := db.DB.NewSelect().
		Model(&scores).
		Where("artist_id = ?", artistID).
		Where("score_date >= ?", Day(from)).
		Where("score_date < ?", Day(to)).
		Order("score_date ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch score history for artist %s: %w", artistID, err)
	}
	return scores, nil
}

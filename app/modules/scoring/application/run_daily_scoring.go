package scoringservice

import (
	"context"
	"errors"
	"sync"
	"time"

	artistdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/artist/infrastructure/repositories"
	"github.com/Chart-Clash-Club/chartclash-backend/app/eventbus"
	"github.com/Chart-Clash-Club/chartclash-backend/app/modules/gateway"
	scoringdomain "github.com/Chart-Clash-Club/chartclash-backend/app/modules/scoring/domain"
	scoringdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/scoring/infrastructure/repositories"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/attr"
)

type artistOutcome int

const (
	outcomeScored artistOutcome = iota
	outcomeSkipped
	outcomeFailed
)

// RunDailyScoring scores every catalog artist for today's UTC calendar day.
// A metrics-fetch failure for one artist never aborts the pass; that
// artist's platform contribution is treated as zero or the artist is
// skipped. Only a catalog or database failure fails the whole run, which the
// scheduler retries on its next tick.
func (s *ScoringService) RunDailyScoring(ctx context.Context) (DayScoringResult, error) {
	return withTelemetry(s, ctx, "RunDailyScoring", func(ctx context.Context) (DayScoringResult, error) {
		day := scoringdb.Day(s.now())

		artists, err := s.artists.ListAll(ctx)
		if err != nil {
			// Catalog unreadable is fatal to the run.
			return DayScoringResult{}, err
		}

		s.logger.InfoContext(ctx, "Starting daily scoring pass",
			attr.ExtractCorrelationID(ctx),
			attr.Time("day", day),
			attr.Int("artist_count", len(artists)),
		)

		var (
			mu      sync.Mutex
			scored  int
			skipped int
			failed  int
		)

		sem := make(chan struct{}, s.fanOut)
		var wg sync.WaitGroup

		for i := range artists {
			artist := &artists[i]
			wg.Add(1)
			sem <- struct{}{}
			go func() {
				defer wg.Done()
				defer func() { <-sem }()

				outcome := s.scoreArtist(ctx, artist, day)

				mu.Lock()
				switch outcome {
				case outcomeScored:
					scored++
				case outcomeSkipped:
					skipped++
				case outcomeFailed:
					failed++
				}
				mu.Unlock()
			}()
		}
		wg.Wait()

		s.logger.InfoContext(ctx, "Daily scoring pass completed",
			attr.ExtractCorrelationID(ctx),
			attr.Time("day", day),
			attr.Int("scored", scored),
			attr.Int("skipped", skipped),
			attr.Int("failed", failed),
		)

		if s.eventBus != nil {
			payload := eventbus.ScoringDayCompletedPayload{
				Day:           day,
				ArtistsScored: scored,
				ArtistsFailed: failed,
			}
			if err := s.eventBus.Publish(ctx, eventbus.SubjectScoringDayCompleted, payload); err != nil {
				// Point totals will be recomputed on the next cycle; the
				// day's records are already committed.
				s.logger.ErrorContext(ctx, "Failed to publish scoring completion",
					attr.ExtractCorrelationID(ctx),
					attr.Error(err),
				)
			}
		}

		return DayScoringResult{
			Success: &DayScoredPayload{Day: day, Scored: scored, Skipped: skipped, Failed: failed},
		}, nil
	})
}

// scoreArtist fetches whatever platforms the artist is registered on,
// computes the combined score, and upserts the day's record. An artist whose
// every registered platform was unavailable is skipped rather than written as
// a zero score.
func (s *ScoringService) scoreArtist(ctx context.Context, artist *artistdb.Artist, day time.Time) artistOutcome {
	artistAttr := attr.ArtistID("artist_id", artist.ID)
	platforms, unavailable := 1, 0

	tracks, err := s.gateway.FetchTopTracks(ctx, artist.StreamingID)
	if err != nil {
		s.logger.WarnContext(ctx, "Streaming metrics unavailable, contribution zeroed",
			attr.ExtractCorrelationID(ctx), artistAttr, attr.Error(err))
		s.metrics.RecordArtistProcessed(ctx, "streaming_unavailable")
		tracks = nil
		unavailable++
	}
	streaming := scoringdomain.ComputeStreamingScore(tracks, s.now())

	var video scoringdomain.VideoResult
	if artist.HasVideoChannel() {
		platforms++
		stats, err := s.gateway.FetchRecentVideoStats(ctx, *artist.VideoChannelID)
		if err != nil {
			s.logger.WarnContext(ctx, "Video metrics unavailable, contribution zeroed",
				attr.ExtractCorrelationID(ctx), artistAttr, attr.Error(err))
			s.metrics.RecordArtistProcessed(ctx, "video_unavailable")
			stats = nil
			unavailable++
		}
		video = scoringdomain.ComputeVideoScore(stats)
	}

	var snap *gateway.AnalyticsSnapshot
	if artist.HasAnalyticsID() {
		platforms++
		snap, err = s.gateway.FetchAnalyticsSnapshot(ctx, *artist.AnalyticsID)
		if err != nil {
			s.logger.WarnContext(ctx, "Analytics metrics unavailable, contribution zeroed",
				attr.ExtractCorrelationID(ctx), artistAttr, attr.Error(err))
			s.metrics.RecordArtistProcessed(ctx, "analytics_unavailable")
			snap = nil
			unavailable++
		}
	}
	analytics := scoringdomain.ComputeAnalyticsScore(snap)

	if unavailable == platforms {
		s.logger.WarnContext(ctx, "Every platform unavailable, artist skipped",
			attr.ExtractCorrelationID(ctx), artistAttr)
		s.metrics.RecordArtistProcessed(ctx, "skipped")
		return outcomeSkipped
	}

	record := buildDailyScore(artist.ID, day, streaming, video, analytics, snap)

	if err := s.scores.UpsertDailyScore(ctx, record); err != nil {
		if errors.Is(err, scoringdb.ErrInvalidScore) {
			// Corrupt data must never be persisted silently.
			s.logger.ErrorContext(ctx, "Score invariant violation, record discarded",
				attr.ExtractCorrelationID(ctx), artistAttr, attr.Error(err))
			s.metrics.RecordArtistProcessed(ctx, "invariant_violation")
			return outcomeFailed
		}
		s.logger.ErrorContext(ctx, "Failed to persist daily score",
			attr.ExtractCorrelationID(ctx), artistAttr, attr.Error(err))
		s.metrics.RecordArtistProcessed(ctx, "persist_failed")
		return outcomeFailed
	}

	s.metrics.RecordArtistProcessed(ctx, "scored")
	s.logger.DebugContext(ctx, "Artist scored",
		attr.ExtractCorrelationID(ctx),
		artistAttr,
		attr.Int("total_score", record.TotalScore),
	)
	return outcomeScored
}

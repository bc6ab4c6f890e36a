package tieringservice

import (
	"context"

	tieringdomain "github.com/Chart-Clash-Club/chartclash-backend/app/modules/tiering/domain"
	tieringdb "github.com/Chart-Clash-Club/chartclash-backend/app/modules/tiering/infrastructure/repositories"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/attr"
)

// RunWeeklyTiering re-classifies every catalog artist. Artists whose
// analytics snapshot is missing are skipped with a warning rather than being
// defaulted into a misleading tier. Calls to the analytics collaborator are
// serialized through the service limiter.
func (s *TieringService) RunWeeklyTiering(ctx context.Context) (TieringResult, error) {
	return withTelemetry(s, ctx, "RunWeeklyTiering", func(ctx context.Context) (TieringResult, error) {
		artists, err := s.artists.ListAll(ctx)
		if err != nil {
			return TieringResult{}, err
		}

		s.logger.InfoContext(ctx, "Starting weekly tiering pass",
			attr.ExtractCorrelationID(ctx),
			attr.Int("artist_count", len(artists)),
		)

		var classified, skipped int

		for i := range artists {
			artist := &artists[i]
			artistAttr := attr.ArtistID("artist_id", artist.ID)

			if !artist.HasAnalyticsID() {
				s.logger.WarnContext(ctx, "Artist has no analytics id, skipping tiering",
					attr.ExtractCorrelationID(ctx), artistAttr)
				s.metrics.RecordArtistProcessed(ctx, "no_analytics_id")
				skipped++
				continue
			}

			if err := s.limiter.Wait(ctx); err != nil {
				// Context cancelled mid-pass; records written so far stand.
				return TieringResult{}, err
			}

			snap, err := s.gateway.FetchAnalyticsSnapshot(ctx, *artist.AnalyticsID)
			if err != nil || snap == nil {
				s.logger.WarnContext(ctx, "No usable analytics data, skipping tiering",
					attr.ExtractCorrelationID(ctx), artistAttr, attr.Error(err))
				s.metrics.RecordArtistProcessed(ctx, "analytics_unavailable")
				skipped++
				continue
			}

			metrics, err := s.deriveMetrics(ctx, artist.ID, snap)
			if err != nil {
				s.logger.ErrorContext(ctx, "Failed to derive metrics bundle, skipping artist",
					attr.ExtractCorrelationID(ctx), artistAttr, attr.Error(err))
				s.metrics.RecordArtistProcessed(ctx, "derive_failed")
				skipped++
				continue
			}

			tier := tieringdomain.Classify(metrics)

			assignment := &tieringdb.TierAssignment{
				ArtistID:    artist.ID,
				Tier:        tier,
				EvaluatedAt: s.now(),
			}
			if err := s.tiers.UpsertAssignment(ctx, assignment); err != nil {
				s.logger.ErrorContext(ctx, "Failed to persist tier assignment",
					attr.ExtractCorrelationID(ctx), artistAttr, attr.Error(err))
				s.metrics.RecordArtistProcessed(ctx, "persist_failed")
				skipped++
				continue
			}

			s.logger.InfoContext(ctx, "Artist classified",
				attr.ExtractCorrelationID(ctx),
				artistAttr,
				attr.Tier("tier", tier),
			)
			s.metrics.RecordArtistProcessed(ctx, "classified")
			classified++
		}

		return TieringResult{
			Success: &TieringCompletedPayload{
				EvaluatedAt: s.now(),
				Classified:  classified,
				Skipped:     skipped,
			},
		}, nil
	})
}

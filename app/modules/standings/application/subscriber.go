package standingsservice

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/Chart-Clash-Club/chartclash-backend/app/eventbus"
	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/attr"
)

// RegisterSubscribers wires standings recomputes to the pipeline events:
// a completed scoring day refreshes every user, a roster change refreshes
// just its owner.
func (s *StandingsService) RegisterSubscribers(ctx context.Context, bus eventbus.EventBus) error {
	err := bus.Subscribe(ctx, eventbus.SubjectScoringDayCompleted, func(ctx context.Context, msg *message.Message) error {
		var payload eventbus.ScoringDayCompletedPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			s.logger.ErrorContext(ctx, "Failed to decode scoring day completed event",
				attr.ExtractCorrelationID(ctx), attr.Error(err))
			// Poison message, do not redeliver.
			return nil
		}

		s.logger.InfoContext(ctx, "Scoring day completed, recomputing standings",
			attr.ExtractCorrelationID(ctx),
			attr.Time("day", payload.Day),
			attr.Int("artists_scored", payload.ArtistsScored),
		)

		_, err := s.RecomputeAllUserPoints(ctx)
		return err
	})
	if err != nil {
		return err
	}

	return bus.Subscribe(ctx, eventbus.SubjectRosterUpdated, func(ctx context.Context, msg *message.Message) error {
		var payload eventbus.RosterUpdatedPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			s.logger.ErrorContext(ctx, "Failed to decode roster updated event",
				attr.ExtractCorrelationID(ctx), attr.Error(err))
			return nil
		}

		return s.RecomputeUserPoints(ctx, payload.UserID)
	})
}

// Package eventbus wraps watermill over NATS JetStream. Batch jobs publish
// pipeline events here (scoring day completed, roster updated) and the
// standings module subscribes to recompute cached point totals.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	wmnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/Chart-Clash-Club/chartclash-backend/app/shared/attr"
)

// Subjects published by the pipeline.
const (
	StreamName = "chartclash"

	SubjectScoringDayCompleted = "chartclash.scoring.day.completed"
	SubjectRosterUpdated       = "chartclash.team.roster.updated"
)

// EventBus is the publish/subscribe contract modules depend on.
type EventBus interface {
	Publish(ctx context.Context, subject string, payload any) error
	Subscribe(ctx context.Context, subject string, handler func(ctx context.Context, msg *message.Message) error) error
	Close() error
}

type eventBus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	js         jetstream.JetStream
	natsConn   *nc.Conn
	logger     *slog.Logger

	streamMutex   sync.Mutex
	streamCreated bool
}

// NewEventBus connects to NATS, initializes JetStream, and returns a bus
// backed by watermill's NATS publisher/subscriber.
func NewEventBus(ctx context.Context, natsURL string, logger *slog.Logger) (EventBus, error) {
	natsConn, err := nc.Connect(natsURL, nc.RetryOnFailedConnect(true))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(natsConn)
	if err != nil {
		natsConn.Close()
		return nil, fmt.Errorf("failed to initialize JetStream: %w", err)
	}

	watermillLogger := watermill.NewSlogLogger(logger)
	marshaller := &wmnats.NATSMarshaler{}

	publisher, err := wmnats.NewPublisher(
		wmnats.PublisherConfig{
			URL:       natsURL,
			Marshaler: marshaller,
			NatsOptions: []nc.Option{
				nc.RetryOnFailedConnect(true),
			},
		},
		watermillLogger,
	)
	if err != nil {
		natsConn.Close()
		return nil, fmt.Errorf("failed to create watermill publisher: %w", err)
	}

	subscriber, err := wmnats.NewSubscriber(
		wmnats.SubscriberConfig{
			URL:         natsURL,
			Unmarshaler: marshaller,
			NatsOptions: []nc.Option{
				nc.RetryOnFailedConnect(true),
			},
		},
		watermillLogger,
	)
	if err != nil {
		publisher.Close()
		natsConn.Close()
		return nil, fmt.Errorf("failed to create watermill subscriber: %w", err)
	}

	bus := &eventBus{
		publisher:  publisher,
		subscriber: subscriber,
		js:         js,
		natsConn:   natsConn,
		logger:     logger,
	}

	if err := bus.ensureStream(ctx); err != nil {
		bus.Close()
		return nil, err
	}

	return bus, nil
}

func (eb *eventBus) ensureStream(ctx context.Context) error {
	eb.streamMutex.Lock()
	defer eb.streamMutex.Unlock()

	if eb.streamCreated {
		return nil
	}

	_, err := eb.js.Stream(ctx, StreamName)
	if err == jetstream.ErrStreamNotFound {
		_, err = eb.js.CreateStream(ctx, jetstream.StreamConfig{
			Name:     StreamName,
			Subjects: []string{"chartclash.>"},
		})
	}
	if err != nil {
		return fmt.Errorf("failed to ensure stream %s: %w", StreamName, err)
	}

	eb.streamCreated = true
	return nil
}

func (eb *eventBus) Publish(ctx context.Context, subject string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload for %s: %w", subject, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)

	eb.logger.DebugContext(ctx, "Publishing message",
		attr.String("subject", subject),
		attr.String("message_id", msg.UUID),
	)

	if err := eb.publisher.Publish(subject, msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}
	return nil
}

func (eb *eventBus) Subscribe(ctx context.Context, subject string, handler func(ctx context.Context, msg *message.Message) error) error {
	messages, err := eb.subscriber.Subscribe(ctx, subject)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", subject, err)
	}

	eb.logger.Info("Subscription started", attr.String("subject", subject))

	go func() {
		for msg := range messages {
			if err := handler(ctx, msg); err != nil {
				eb.logger.Error("Handler error",
					attr.String("subject", subject),
					attr.Error(err),
				)
				msg.Nack()
				continue
			}
			msg.Ack()
		}
	}()

	return nil
}

func (eb *eventBus) Close() error {
	var firstErr error
	if eb.publisher != nil {
		if err := eb.publisher.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if eb.subscriber != nil {
		if err := eb.subscriber.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if eb.natsConn != nil {
		eb.natsConn.Close()
	}
	return firstErr
}

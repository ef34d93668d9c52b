package event

//go:generate go run go.uber.org/mock/mockgen -source=./publisher.go -destination=../mocks/publisher_mock.go -package=mocks

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/internal/domains/booking/model"
	"hotel/shared/constant"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
)

// Publisher writes booking lifecycle events to the booking topic.
type Publisher interface {
	Publish(ctx context.Context, events ...model.Event) error
}

type publisherImpl struct {
	client kafka.Client
	topic  string
	otel   otel.Otel
}

func NewPublisher(client kafka.Client, cfg *config.Config, otel otel.Otel) Publisher {
	return &publisherImpl{
		client: client,
		topic:  cfg.Kafka.Topics.Booking,
		otel:   otel,
	}
}

// Publish keys every event by room id so one room's history stays ordered on a partition.
func (p *publisherImpl) Publish(ctx context.Context, events ...model.Event) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if len(events) == 0 {
		return nil
	}

	messages := make([]kafka.Message, len(events))

	for i, event := range events {
		if event.OccurredAt.IsZero() {
			event.OccurredAt = timezone.Now()
		}

		messages[i] = kafka.Message{Key: event.RoomID, Value: event}
	}

	if err = p.client.SendMessages(ctx, p.topic, messages...); err != nil {
		log.Error().Err(err).Str("topic", p.topic).Msg("failed to publish booking events")

		return fmt.Errorf("failed to publish booking events: %w", err)
	}

	return nil
}

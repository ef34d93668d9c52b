package event_test

import (
	"context"
	"errors"
	"testing"

	"hotel/config"
	"hotel/infras/kafka"
	kafkaMocks "hotel/infras/kafka/mocks"
	"hotel/infras/otel/mocks"
	"hotel/internal/domains/booking/event"
	"hotel/internal/domains/booking/model"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestPublisher_Publish(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.Topics.Booking = "hotel.booking"

	publisher := event.NewPublisher(client, cfg, mocks.NewOtel())

	client.EXPECT().SendMessages(gomock.Any(), "hotel.booking", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, messages ...kafka.Message) error {
			assert.Len(t, messages, 1)
			assert.Equal(t, "room-1", messages[0].Key)

			payload, ok := messages[0].Value.(model.Event)
			assert.True(t, ok)
			assert.Equal(t, model.EventBookingCreated, payload.Type)
			assert.False(t, payload.OccurredAt.IsZero())

			return nil
		})

	err := publisher.Publish(context.Background(), model.Event{Type: model.EventBookingCreated, BookingID: "b1", RoomID: "room-1"})
	assert.NoError(t, err)

	client.EXPECT().SendMessages(gomock.Any(), "hotel.booking", gomock.Any()).Return(errors.New("broker down"))

	err = publisher.Publish(context.Background(), model.Event{Type: model.EventBookingDeleted, RoomID: "room-1"})
	assert.Error(t, err)

	assert.NoError(t, publisher.Publish(context.Background()))
}

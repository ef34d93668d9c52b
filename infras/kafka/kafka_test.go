package kafka_test

import (
	"testing"

	"hotel/infras/kafka"

	"github.com/stretchr/testify/assert"
)

type payload struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}

func TestMessage_RoundTripThroughKafkaMessage(t *testing.T) {
	msg := kafka.Message{Key: "room-101", Value: payload{BookingID: "b-1", Status: "Confirmed"}}

	kMsg, err := msg.ToKafkaMessage()
	assert.NoError(t, err)
	assert.Equal(t, []byte("room-101"), kMsg.Key)
	assert.JSONEq(t, `{"booking_id":"b-1","status":"Confirmed"}`, string(kMsg.Value))

	decoded, err := kafka.Decode[payload](kMsg)
	assert.NoError(t, err)
	assert.Equal(t, "b-1", decoded.BookingID)
}

func TestMessage_ToKafkaMessageRejectsUnencodableValue(t *testing.T) {
	msg := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := msg.ToKafkaMessage()
	assert.Error(t, err)
}

package event

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habrasia/yogyn/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init()

	code := m.Run()
	os.Exit(code)
}

func TestPublish(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush(QueueKey, `.*`).SetVal(1)

	pub := NewPublisherWithClient(db)

	err := pub.Publish(ctx, BookingCreated{
		BookingID:       "b-1",
		CreatedAt:       time.Now().UTC(),
		FirstName:       "Maya",
		LastName:        "Lindqvist",
		Email:           "maya@example.com",
		SessionTitle:    "Morning Flow",
		SessionStartsAt: time.Now().Add(24 * time.Hour),
		StudioName:      "Lotus Studio",
		Status:          "confirmed",
		CancelToken:     "tok-1",
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPublish_RedisError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush(QueueKey, `.*`).SetErr(assert.AnError)

	pub := NewPublisherWithClient(db)

	err := pub.Publish(ctx, BookingCancelled{
		BookingID: "b-2",
		Email:     "maya@example.com",
	})
	assert.Error(t, err)
}

func TestEnvelopeRoundTrip(t *testing.T) {
	e := BookingRejected{
		BookingID:       "b-3",
		CreatedAt:       time.Now().UTC(),
		FirstName:       "Maya",
		Email:           "maya@example.com",
		SessionTitle:    "Morning Flow",
		SessionStartsAt: time.Now().Add(24 * time.Hour).UTC(),
		StudioName:      "Lotus Studio",
		Reason:          "class moved",
	}

	payload, err := json.Marshal(e)
	require.NoError(t, err)

	env := Envelope{
		Type:       e.EventType(),
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}

	data, err := json.Marshal(env)
	require.NoError(t, err)

	var decoded Envelope
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, TypeBookingRejected, decoded.Type)

	var rejected BookingRejected
	require.NoError(t, json.Unmarshal(decoded.Payload, &rejected))
	assert.Equal(t, "class moved", rejected.Reason)
}

func TestQueueLength(t *testing.T) {
	db, mock := redismock.NewClientMock()

	mock.ExpectLLen(QueueKey).SetVal(3)

	pub := NewPublisherWithClient(db)
	assert.Equal(t, int64(3), pub.QueueLength(context.Background()))
}

func TestEventTypes(t *testing.T) {
	assert.Equal(t, TypeBookingCreated, BookingCreated{}.EventType())
	assert.Equal(t, TypeBookingApproved, BookingApproved{}.EventType())
	assert.Equal(t, TypeBookingRejected, BookingRejected{}.EventType())
	assert.Equal(t, TypeBookingCancelled, BookingCancelled{}.EventType())
}

package event

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/habrasia/yogyn/internal/logger"
	"github.com/habrasia/yogyn/internal/metrics"
)

// QueueKey is the redis list the notify worker consumes from.
const QueueKey = "booking-events"

// Envelope is the wire form of an Event: the type tag tells the consumer
// which variant the payload decodes into.
type Envelope struct {
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload"`
	Tries      int             `json:"tries,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	QueueLength(ctx context.Context) int64
	Close() error
}

type redisPublisher struct {
	client *redis.Client
}

func NewPublisher(redisAddr string) Publisher {
	return &redisPublisher{
		client: redis.NewClient(&redis.Options{Addr: redisAddr}),
	}
}

// NewPublisherWithClient is used by tests to inject a mock client.
func NewPublisherWithClient(client *redis.Client) Publisher {
	return &redisPublisher{client: client}
}

func (p *redisPublisher) Publish(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		metrics.RecordEventPublished(e.EventType(), "error")
		return err
	}

	env := Envelope{
		Type:       e.EventType(),
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}

	data, err := json.Marshal(env)
	if err != nil {
		metrics.RecordEventPublished(e.EventType(), "error")
		return err
	}

	if err := p.client.LPush(ctx, QueueKey, data).Err(); err != nil {
		metrics.RecordEventPublished(e.EventType(), "error")
		return err
	}

	metrics.RecordEventPublished(e.EventType(), "ok")
	logger.Infof("Event published: %s", e.EventType())
	return nil
}

func (p *redisPublisher) QueueLength(ctx context.Context) int64 {
	length, _ := p.client.LLen(ctx, QueueKey).Result()
	return length
}

func (p *redisPublisher) Close() error {
	return p.client.Close()
}

package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/habrasia/yogyn/internal/event"
	"github.com/habrasia/yogyn/internal/logger"
	"github.com/habrasia/yogyn/internal/metrics"
)

const (
	failedQueueKey = event.QueueKey + ":failed"
	maxTries       = 3
)

// Worker drains the booking event queue and turns each event into an
// email. Delivery is at-least-once: a failed send goes back on the queue
// until maxTries, then parks on the failed list. The booking flow never
// waits on any of this.
type Worker struct {
	redis   *redis.Client
	sender  Sender
	baseURL string
}

func NewWorker(redisAddr string, sender Sender, baseURL string) *Worker {
	return &Worker{
		redis:   redis.NewClient(&redis.Options{Addr: redisAddr}),
		sender:  sender,
		baseURL: baseURL,
	}
}

// NewWorkerWithClient is used by tests to inject a mock client.
func NewWorkerWithClient(client *redis.Client, sender Sender, baseURL string) *Worker {
	return &Worker{
		redis:   client,
		sender:  sender,
		baseURL: baseURL,
	}
}

func (w *Worker) Start(ctx context.Context) {
	logger.Info("Notification worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Notification worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *Worker) processNext(ctx context.Context) {
	result, err := w.redis.BRPop(ctx, 2*time.Second, event.QueueKey).Result()
	if err != nil {
		return
	}

	if length, err := w.redis.LLen(ctx, event.QueueKey).Result(); err == nil {
		metrics.EventQueueLength.Set(float64(length))
	}

	var env event.Envelope
	if err := json.Unmarshal([]byte(result[1]), &env); err != nil {
		logger.Errorf("Bad event data: %v", err)
		return
	}

	env.Tries++
	if err := w.Handle(env); err != nil {
		logger.Errorf("Failed to handle %s event: %v", env.Type, err)
		metrics.RecordEmail(env.Type, "error")

		if env.Tries < maxTries {
			time.Sleep(5 * time.Second)
			data, _ := json.Marshal(env)
			w.redis.LPush(context.Background(), event.QueueKey, data)
			logger.Infof("Requeued %s event (attempt %d)", env.Type, env.Tries+1)
		} else {
			w.parkFailed(env, err)
		}
		return
	}

	metrics.RecordEmail(env.Type, "ok")
}

// Handle decodes the envelope by its type tag and sends the matching
// email. Exported so tests can drive it without redis.
func (w *Worker) Handle(env event.Envelope) error {
	var (
		to      string
		subject string
		body    string
	)

	switch env.Type {
	case event.TypeBookingCreated:
		var e event.BookingCreated
		if err := json.Unmarshal(env.Payload, &e); err != nil {
			return err
		}
		to = e.Email
		if e.Status == "confirmed" {
			subject, body = composeConfirmation(e, w.baseURL)
		} else {
			subject, body = composePending(e)
		}

	case event.TypeBookingApproved:
		var e event.BookingApproved
		if err := json.Unmarshal(env.Payload, &e); err != nil {
			return err
		}
		to = e.Email
		subject, body = composeApproved(e, w.baseURL)

	case event.TypeBookingRejected:
		var e event.BookingRejected
		if err := json.Unmarshal(env.Payload, &e); err != nil {
			return err
		}
		to = e.Email
		subject, body = composeRejected(e)

	case event.TypeBookingCancelled:
		var e event.BookingCancelled
		if err := json.Unmarshal(env.Payload, &e); err != nil {
			return err
		}
		to = e.Email
		subject, body = composeCancelled(e)

	default:
		logger.Errorf("Unknown event type: %s", env.Type)
		return nil
	}

	logger.Infof("Sending %s email to %s", env.Type, to)
	return w.sender.Send(to, subject, body)
}

func (w *Worker) parkFailed(env event.Envelope, cause error) {
	failed := map[string]interface{}{
		"envelope": env,
		"error":    cause.Error(),
		"time":     time.Now().UTC(),
	}
	data, _ := json.Marshal(failed)
	w.redis.LPush(context.Background(), failedQueueKey, data)
	logger.Errorf("%s event moved to failed queue after %d attempts", env.Type, env.Tries)
}

func (w *Worker) Close() error {
	return w.redis.Close()
}

package service

import (
	"context"

	"notekeeper-be/internal/metrics"
	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Subscriber is the consuming side of the event bus.
type Subscriber interface {
	Subscribe(ctx context.Context) (<-chan *message.Message, error)
}

type IActivityConsumer interface {
	// Consume starts processing in the background and returns once subscribed.
	// Processing stops when ctx is done or the bus closes.
	Consume(ctx context.Context) error
	Done() <-chan struct{}
}

// activityConsumer writes an activity log line for every note lifecycle event.
type activityConsumer struct {
	subscriber Subscriber
	logger     logger.ILogger
	done       chan struct{}
}

func NewActivityConsumer(subscriber Subscriber, log logger.ILogger) IActivityConsumer {
	return &activityConsumer{
		subscriber: subscriber,
		logger:     log,
		done:       make(chan struct{}),
	}
}

func (c *activityConsumer) Consume(ctx context.Context) error {
	messages, err := c.subscriber.Subscribe(ctx)
	if err != nil {
		return err
	}

	go func() {
		defer close(c.done)
		for msg := range messages {
			c.processMessage(msg)
		}
	}()

	return nil
}

func (c *activityConsumer) Done() <-chan struct{} {
	return c.done
}

func (c *activityConsumer) processMessage(msg *message.Message) {
	evt, err := events.Unmarshal(msg.Payload)
	if err != nil {
		c.logger.Error("activity", "failed to decode event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err,
		})
		// Redelivery cannot fix a malformed payload.
		msg.Ack()
		return
	}

	metrics.NoteEventsTotal.WithLabelValues(evt.EventType()).Inc()
	c.logger.Info("activity", "note activity", map[string]interface{}{
		"event_type":  evt.EventType(),
		"note_id":     evt.Payload()["note_id"],
		"user_id":     evt.Payload()["user_id"],
		"occurred_at": evt.Timestamp(),
	})
	msg.Ack()
}

package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"handcrafted_gifts/internal/domain/entities"
	"handcrafted_gifts/internal/usecase/interfaces"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

const (
	deliveryAttempts = 3
	retryBackoff     = 2 * time.Second
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NotificationConsumer reads published notifications and hands them to a
// notifier (the email and WhatsApp dispatcher). A message is committed once it
// was delivered or its attempts ran out, so one bad message never blocks the
// partition.
type NotificationConsumer struct {
	reader  messageReader
	handler interfaces.INotifier
	backoff time.Duration
}

func NewNotificationConsumer(brokers []string, topic, groupID string, handler interfaces.INotifier) *NotificationConsumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  time.Second,
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			log.Error().Msgf("[notify][kafka] reader: "+msg, args...)
		}),
	})
	return &NotificationConsumer{reader: r, handler: handler, backoff: retryBackoff}
}

// Run consumes until ctx is cancelled.
func (c *NotificationConsumer) Run(ctx context.Context) error {
	log.Info().Msg("[notify][consumer] started")
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				log.Info().Msg("[notify][consumer] stopped")
				return nil
			}
			return err
		}

		c.handle(ctx, msg)
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.Error().Err(err).Int64("offset", msg.Offset).Msg("[notify][consumer] commit failed")
		}
	}
}

func (c *NotificationConsumer) handle(ctx context.Context, msg kafka.Message) {
	logger := log.With().Int("partition", msg.Partition).Int64("offset", msg.Offset).Logger()

	var n entities.Notification
	if err := json.Unmarshal(msg.Value, &n); err != nil {
		logger.Error().Err(err).Msg("[notify][consumer] undecodable message dropped")
		return
	}

	for attempt := 1; attempt <= deliveryAttempts; attempt++ {
		err := c.handler.Notify(ctx, n)
		if err == nil {
			return
		}
		logger.Warn().Err(err).Str("notification_id", n.ID).Int("attempt", attempt).Msg("[notify][consumer] delivery failed")
		if attempt == deliveryAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(c.backoff * time.Duration(attempt)):
		}
	}
	logger.Error().Str("notification_id", n.ID).Msg("[notify][consumer] giving up")
}

func (c *NotificationConsumer) Close() error {
	return c.reader.Close()
}

package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"handcrafted_gifts/internal/domain/entities"
	"handcrafted_gifts/internal/usecase/interfaces"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier publishes notifications to a topic for the notifier worker.
// Messages are keyed by order id (or notification id for contact messages) so
// updates of one order stay ordered.
type KafkaNotifier struct {
	writer messageWriter
	topic  string
}

var _ interfaces.INotifier = (*KafkaNotifier)(nil)

func NewKafkaNotifier(brokers []string, topic string) *KafkaNotifier {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		BatchTimeout:           50 * time.Millisecond,
		MaxAttempts:            5,
		AllowAutoTopicCreation: true,
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			log.Error().Msgf("[notify][kafka] writer: "+msg, args...)
		}),
	}
	return &KafkaNotifier{writer: w, topic: topic}
}

func (k *KafkaNotifier) Notify(ctx context.Context, n entities.Notification) error {
	b, err := json.Marshal(n)
	if err != nil {
		return err
	}
	key := n.ID
	if n.Order != nil {
		key = n.Order.ID
	}

	err = k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: b,
		Time:  n.OccurredAt,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(n.Kind)},
		},
	})
	if err != nil {
		return fmt.Errorf("publish notification %s to %s: %w", n.ID, k.topic, err)
	}
	log.Debug().Str("notification_id", n.ID).Str("kind", string(n.Kind)).Msg("[notify][kafka] published")
	return nil
}

func (k *KafkaNotifier) Close() error {
	return k.writer.Close()
}

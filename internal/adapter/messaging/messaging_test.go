package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"handcrafted_gifts/internal/domain/entities"
	mock_interfaces "handcrafted_gifts/internal/usecase/interfaces/mocks"

	"github.com/segmentio/kafka-go"
	"go.uber.org/mock/gomock"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return f.err
}

func (f *fakeWriter) Close() error { return nil }

// fakeReader serves queued messages, then blocks until ctx is done.
type fakeReader struct {
	queue     []kafka.Message
	committed []int64
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if len(f.queue) == 0 {
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	m := f.queue[0]
	f.queue = f.queue[1:]
	return m, nil
}

func (f *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	for _, m := range msgs {
		f.committed = append(f.committed, m.Offset)
	}
	return nil
}

func (f *fakeReader) Close() error { return nil }

func TestKafkaNotifier_Notify(t *testing.T) {
	w := &fakeWriter{}
	k := &KafkaNotifier{writer: w, topic: "order-notifications"}
	n := entities.Notification{
		ID:    "n-1",
		Kind:  entities.NotificationOrderConfirmed,
		Order: &entities.Order{ID: "o-1", OrderNumber: "HG2610160001"},
	}

	if err := k.Notify(context.Background(), n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w.msgs) != 1 || string(w.msgs[0].Key) != "o-1" {
		t.Fatalf("expected message keyed by order id, got %+v", w.msgs)
	}
	var decoded entities.Notification
	if err := json.Unmarshal(w.msgs[0].Value, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Order.OrderNumber != "HG2610160001" || decoded.Kind != entities.NotificationOrderConfirmed {
		t.Fatalf("unexpected payload %+v", decoded)
	}

	w.err = errors.New("broker down")
	if err := k.Notify(context.Background(), n); err == nil {
		t.Fatalf("expected publish error")
	}
}

func TestNotificationConsumer_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	handler := mock_interfaces.NewMockINotifier(ctrl)

	good, _ := json.Marshal(entities.Notification{ID: "n-1", Kind: entities.NotificationContactReceived, Contact: &entities.ContactMessage{Name: "Asha"}})
	flaky, _ := json.Marshal(entities.Notification{ID: "n-2", Kind: entities.NotificationContactReceived, Contact: &entities.ContactMessage{Name: "Ravi"}})
	reader := &fakeReader{queue: []kafka.Message{
		{Offset: 1, Value: good},
		{Offset: 2, Value: []byte("not json")},
		{Offset: 3, Value: flaky},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gomock.InOrder(
		handler.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil),
		handler.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(errors.New("smtp down")),
		handler.EXPECT().Notify(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, entities.Notification) error {
			cancel()
			return nil
		}),
	)

	c := &NotificationConsumer{reader: reader, handler: handler, backoff: time.Millisecond}
	if err := c.Run(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reader.committed) < 2 || reader.committed[0] != 1 || reader.committed[1] != 2 {
		t.Fatalf("unexpected commits %v", reader.committed)
	}
}

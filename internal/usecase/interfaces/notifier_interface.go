package interfaces

import (
	"context"

	"handcrafted_gifts/internal/domain/entities"
)

// INotifier hands notifications to the delivery pipeline (Kafka or direct).
type INotifier interface {
	Notify(ctx context.Context, n entities.Notification) error
}

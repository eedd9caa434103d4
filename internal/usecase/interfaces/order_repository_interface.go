package interfaces

import (
	"context"
	"time"

	"handcrafted_gifts/internal/domain/entities"
)

type OrderFilter struct {
	Status entities.OrderStatus
}

// OrderUpdate lists the mutable fields of an order; nil fields are left as is.
type OrderUpdate struct {
	Status            *entities.OrderStatus
	PaymentStatus     *entities.PaymentStatus
	PaymentID         *string
	Notes             *string
	EstimatedDelivery *time.Time
}

func (u OrderUpdate) IsEmpty() bool {
	return u.Status == nil && u.PaymentStatus == nil && u.PaymentID == nil && u.Notes == nil && u.EstimatedDelivery == nil
}

// IOrderRepository abstracts DynamoDB persistence for Order.
//
// The storefront must be able to:
//   - create an order when checkout submits it
//   - resolve an order by id (admin, verification) and by order number (tracking)
//   - update status, payment outcome and admin fields
type IOrderRepository interface {
	Create(ctx context.Context, o entities.Order) (entities.Order, error)
	GetByID(ctx context.Context, id string) (entities.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (entities.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]entities.Order, error)
	Update(ctx context.Context, id string, u OrderUpdate) (entities.Order, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// IOrderNumberGenerator issues human readable order numbers.
type IOrderNumberGenerator interface {
	Next(ctx context.Context, at time.Time) (string, error)
}

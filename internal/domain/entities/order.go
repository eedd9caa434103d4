package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the fulfilment lifecycle of an order.
//
// Domain notes:
//   - pending -> confirmed -> in-progress -> completed -> shipped -> delivered.
//   - cancelled may be reached from any non-terminal status.
//   - delivered and cancelled are terminal.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusInProgress OrderStatus = "in-progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusInProgress, OrderStatusCompleted,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// PaymentStatus represents the payment outcome of an order.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

type PaymentMethod string

const (
	PaymentMethodOnline   PaymentMethod = "online"
	PaymentMethodWhatsApp PaymentMethod = "whatsapp"
)

// OrderItem is a line of an order. Name, price and image are snapshotted from
// the product at order time.
type OrderItem struct {
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	ProductImage  string          `json:"product_image,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
	Customization Customization   `json:"customization"`
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is the persisted order document.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (order_number-index): order_number
//
// Payment linkage:
//   - PaymentSessionID is the gateway checkout session (preference) opened for the order.
//   - PaymentID is filled once the gateway payment was verified.
type Order struct {
	ID                 string          `json:"id"`
	OrderNumber        string          `json:"order_number"`
	Customer           CustomerInfo    `json:"customer"`
	Items              []OrderItem     `json:"items"`
	GiftWrap           bool            `json:"gift_wrap"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	Currency           string          `json:"currency"`
	Status             OrderStatus     `json:"status"`
	PaymentStatus      PaymentStatus   `json:"payment_status"`
	PaymentMethod      PaymentMethod   `json:"payment_method"`
	PaymentSessionID   string          `json:"payment_session_id,omitempty"`
	PaymentCheckoutURL string          `json:"payment_checkout_url,omitempty"`
	PaymentID          string          `json:"payment_id,omitempty"`
	Notes              string          `json:"notes,omitempty"`
	EstimatedDelivery  time.Time       `json:"estimated_delivery"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

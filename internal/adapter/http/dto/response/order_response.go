package response

import (
	"time"

	"handcrafted_gifts/internal/domain/entities"
)

type OrderItemResponse struct {
	ProductID     string                 `json:"product_id"`
	ProductName   string                 `json:"product_name"`
	ProductImage  string                 `json:"product_image,omitempty"`
	Price         float64                `json:"price"`
	Quantity      int                    `json:"quantity"`
	LineTotal     float64                `json:"line_total"`
	Customization entities.Customization `json:"customization"`
}

// OrderResponse is the admin view of an order.
type OrderResponse struct {
	ID                 string                `json:"id"`
	OrderNumber        string                `json:"order_number"`
	Customer           entities.CustomerInfo `json:"customer"`
	Items              []OrderItemResponse   `json:"items"`
	GiftWrap           bool                  `json:"gift_wrap"`
	TotalAmount        float64               `json:"total_amount"`
	Currency           string                `json:"currency"`
	Status             string                `json:"status"`
	PaymentStatus      string                `json:"payment_status"`
	PaymentMethod      string                `json:"payment_method"`
	PaymentSessionID   string                `json:"payment_session_id,omitempty"`
	PaymentCheckoutURL string                `json:"payment_checkout_url,omitempty"`
	PaymentID          string                `json:"payment_id,omitempty"`
	Notes              string                `json:"notes,omitempty"`
	EstimatedDelivery  *time.Time            `json:"estimated_delivery,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}

func FromOrder(o entities.Order) OrderResponse {
	return OrderResponse{
		ID:                 o.ID,
		OrderNumber:        o.OrderNumber,
		Customer:           o.Customer,
		Items:              fromItems(o.Items),
		GiftWrap:           o.GiftWrap,
		TotalAmount:        o.TotalAmount.InexactFloat64(),
		Currency:           o.Currency,
		Status:             string(o.Status),
		PaymentStatus:      string(o.PaymentStatus),
		PaymentMethod:      string(o.PaymentMethod),
		PaymentSessionID:   o.PaymentSessionID,
		PaymentCheckoutURL: o.PaymentCheckoutURL,
		PaymentID:          o.PaymentID,
		Notes:              o.Notes,
		EstimatedDelivery:  optionalTime(o.EstimatedDelivery),
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}

func FromOrders(orders []entities.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	return out
}

// TrackOrderResponse is the public tracking view. It leaves out contact and
// payment identifiers so an order number alone discloses no personal data.
type TrackOrderResponse struct {
	OrderNumber       string              `json:"order_number"`
	CustomerName      string              `json:"customer_name"`
	City              string              `json:"city"`
	Items             []OrderItemResponse `json:"items"`
	GiftWrap          bool                `json:"gift_wrap"`
	TotalAmount       float64             `json:"total_amount"`
	Currency          string              `json:"currency"`
	Status            string              `json:"status"`
	PaymentStatus     string              `json:"payment_status"`
	EstimatedDelivery *time.Time          `json:"estimated_delivery,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
}

func FromOrderTracking(o entities.Order) TrackOrderResponse {
	return TrackOrderResponse{
		OrderNumber:       o.OrderNumber,
		CustomerName:      o.Customer.Name,
		City:              o.Customer.Address.City,
		Items:             fromItems(o.Items),
		GiftWrap:          o.GiftWrap,
		TotalAmount:       o.TotalAmount.InexactFloat64(),
		Currency:          o.Currency,
		Status:            string(o.Status),
		PaymentStatus:     string(o.PaymentStatus),
		EstimatedDelivery: optionalTime(o.EstimatedDelivery),
		CreatedAt:         o.CreatedAt,
	}
}

// CreateOrderResponse is returned when an online order is placed and points
// the client at the hosted payment page.
type CreateOrderResponse struct {
	Order            OrderResponse `json:"order"`
	PaymentSessionID string        `json:"payment_session_id"`
	CheckoutURL      string        `json:"checkout_url"`
}

func FromCreatedOrder(o entities.Order) CreateOrderResponse {
	return CreateOrderResponse{
		Order:            FromOrder(o),
		PaymentSessionID: o.PaymentSessionID,
		CheckoutURL:      o.PaymentCheckoutURL,
	}
}

func fromItems(items []entities.OrderItem) []OrderItemResponse {
	out := make([]OrderItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, OrderItemResponse{
			ProductID:     it.ProductID,
			ProductName:   it.ProductName,
			ProductImage:  it.ProductImage,
			Price:         it.Price.InexactFloat64(),
			Quantity:      it.Quantity,
			LineTotal:     it.LineTotal().InexactFloat64(),
			Customization: it.Customization,
		})
	}
	return out
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

package request

import (
	"errors"
	"strings"
	"time"

	"handcrafted_gifts/internal/domain/entities"
	"handcrafted_gifts/internal/usecase"
	"handcrafted_gifts/internal/usecase/interfaces"
)

var ErrEmptyOrderPatch = errors.New("nothing to update")

type OrderItemRequest struct {
	ProductID     string               `json:"product_id" binding:"required"`
	Quantity      int                  `json:"quantity" binding:"required,min=1,max=999"`
	Customization CustomizationRequest `json:"customization"`
}

type CreateOrderRequest struct {
	Customer CustomerRequest    `json:"customer"`
	Items    []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	GiftWrap bool               `json:"gift_wrap"`
	Notes    string             `json:"notes"`
}

func (r CreateOrderRequest) ToInput() usecase.CreateOrderInput {
	items := make([]usecase.OrderItemInput, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, usecase.OrderItemInput{
			ProductID:     strings.TrimSpace(it.ProductID),
			Quantity:      it.Quantity,
			Customization: it.Customization.ToEntity(),
		})
	}
	return usecase.CreateOrderInput{
		Customer: r.Customer.ToEntity(),
		Items:    items,
		GiftWrap: r.GiftWrap,
		Notes:    strings.TrimSpace(r.Notes),
	}
}

// VerifyPaymentRequest carries the identifiers returned by the payment provider.
type VerifyPaymentRequest struct {
	SessionID string `json:"session_id"`
	PaymentID string `json:"payment_id" binding:"required"`
	Signature string `json:"signature"`
}

func (r VerifyPaymentRequest) ToConfirmation() interfaces.PaymentConfirmation {
	return interfaces.PaymentConfirmation{
		SessionID: strings.TrimSpace(r.SessionID),
		PaymentID: strings.TrimSpace(r.PaymentID),
		Signature: strings.TrimSpace(r.Signature),
	}
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PatchOrderRequest is the admin edit payload; omitted fields stay as they are.
type PatchOrderRequest struct {
	Status            *string    `json:"status"`
	Notes             *string    `json:"notes"`
	EstimatedDelivery *time.Time `json:"estimated_delivery"`
}

func (r PatchOrderRequest) ToPatch() (usecase.OrderPatch, error) {
	if r.Status == nil && r.Notes == nil && r.EstimatedDelivery == nil {
		return usecase.OrderPatch{}, ErrEmptyOrderPatch
	}
	p := usecase.OrderPatch{Notes: r.Notes, EstimatedDelivery: r.EstimatedDelivery}
	if r.Status != nil {
		s := entities.OrderStatus(strings.TrimSpace(*r.Status))
		p.Status = &s
	}
	return p, nil
}

package request

import (
	"strings"

	"handcrafted_gifts/internal/domain/checkout"
	"handcrafted_gifts/internal/usecase"
)

type StartCheckoutRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// PatchCheckoutRequest edits the wizard fields that are present.
// quantity_delta of +1/-1 mirrors the storefront's stepper buttons.
type PatchCheckoutRequest struct {
	Quantity      *int                  `json:"quantity"`
	QuantityDelta int                   `json:"quantity_delta" binding:"min=-1,max=1"`
	GiftWrap      *bool                 `json:"gift_wrap"`
	Customization *CustomizationRequest `json:"customization"`
	Customer      *CustomerRequest      `json:"customer"`
}

func (r PatchCheckoutRequest) ToPatch() usecase.CheckoutPatch {
	p := usecase.CheckoutPatch{
		Quantity:      r.Quantity,
		QuantityDelta: r.QuantityDelta,
		GiftWrap:      r.GiftWrap,
	}
	if r.Customization != nil {
		c := r.Customization.ToEntity()
		p.Customization = &c
	}
	if r.Customer != nil {
		c := r.Customer.ToEntity()
		p.Customer = &c
	}
	return p
}

type ConfirmCheckoutRequest struct {
	SessionID string `json:"session_id"`
	PaymentID string `json:"payment_id" binding:"required"`
	Signature string `json:"signature"`
}

func (r ConfirmCheckoutRequest) ToResult() checkout.GatewayResult {
	return checkout.GatewayResult{
		SessionID: strings.TrimSpace(r.SessionID),
		PaymentID: strings.TrimSpace(r.PaymentID),
		Signature: strings.TrimSpace(r.Signature),
	}
}

type MockSignRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	PaymentID string `json:"payment_id" binding:"required"`
}

package response

import (
	"handcrafted_gifts/internal/domain/checkout"
	"handcrafted_gifts/internal/domain/entities"
	"handcrafted_gifts/internal/usecase"
)

type TotalsResponse struct {
	Subtotal    float64 `json:"subtotal"`
	GiftWrapFee float64 `json:"gift_wrap_fee"`
	DeliveryFee float64 `json:"delivery_fee"`
	Total       float64 `json:"total"`
}

func FromTotals(t checkout.Totals) TotalsResponse {
	return TotalsResponse{
		Subtotal:    t.Subtotal.InexactFloat64(),
		GiftWrapFee: t.GiftWrapFee.InexactFloat64(),
		DeliveryFee: t.DeliveryFee.InexactFloat64(),
		Total:       t.Total.InexactFloat64(),
	}
}

type PendingPaymentResponse struct {
	OrderNumber string `json:"order_number"`
	Handle      string `json:"handle"`
	CheckoutURL string `json:"checkout_url,omitempty"`
}

type CheckoutSessionResponse struct {
	SessionID     string                  `json:"session_id"`
	Step          string                  `json:"step"`
	Product       ProductResponse         `json:"product"`
	Quantity      int                     `json:"quantity"`
	GiftWrap      bool                    `json:"gift_wrap"`
	Customization entities.Customization  `json:"customization"`
	Customer      entities.CustomerInfo   `json:"customer"`
	Busy          bool                    `json:"busy"`
	Pending       *PendingPaymentResponse `json:"pending_payment,omitempty"`
	OrderNumber   string                  `json:"order_number,omitempty"`
	Totals        TotalsResponse          `json:"totals"`
}

func FromCheckoutSession(s usecase.CheckoutSession) CheckoutSessionResponse {
	d := s.Draft
	res := CheckoutSessionResponse{
		SessionID:     s.ID,
		Step:          d.Step.String(),
		Product:       FromProduct(d.Product),
		Quantity:      d.Quantity,
		GiftWrap:      d.GiftWrap,
		Customization: d.Customization,
		Customer:      d.Customer,
		Busy:          d.Busy,
		OrderNumber:   d.OrderNumber,
		Totals:        FromTotals(s.Totals),
	}
	if d.Pending != nil {
		res.Pending = &PendingPaymentResponse{
			OrderNumber: d.Pending.OrderNumber,
			Handle:      d.Pending.Handle,
			CheckoutURL: d.Pending.CheckoutURL,
		}
	}
	return res
}

// PaymentSessionResponse hands the client what it needs to open the provider's
// payment page.
type PaymentSessionResponse struct {
	Checkout         CheckoutSessionResponse `json:"checkout"`
	Handle           string                  `json:"handle"`
	RedirectURL      string                  `json:"redirect_url,omitempty"`
	AmountMinorUnits int64                   `json:"amount_minor_units"`
	Currency         string                  `json:"currency"`
}

func FromPaymentSession(s usecase.CheckoutSession, g checkout.GatewaySession) PaymentSessionResponse {
	return PaymentSessionResponse{
		Checkout:         FromCheckoutSession(s),
		Handle:           g.Handle,
		RedirectURL:      g.RedirectURL,
		AmountMinorUnits: g.AmountMinorUnits,
		Currency:         g.Currency,
	}
}

type DirectMessageResponse struct {
	URL string `json:"url"`
}

type MockSignatureResponse struct {
	Signature string `json:"signature"`
}

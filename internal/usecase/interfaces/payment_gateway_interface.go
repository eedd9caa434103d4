package interfaces

import (
	"context"

	"handcrafted_gifts/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type PaymentSessionRequest struct {
	OrderID     string
	OrderNumber string
	Title       string
	Amount      decimal.Decimal
	Currency    string
	Payer       entities.CustomerInfo
}

type PaymentSession struct {
	ID          string
	CheckoutURL string
}

// PaymentConfirmation is what the buyer's client received from the provider.
type PaymentConfirmation struct {
	SessionID string
	PaymentID string
	Signature string
}

// PaymentCheck is the provider's view of a confirmation.
type PaymentCheck struct {
	PaymentID string
	Approved  bool
	Reason    string
}

// IPaymentGateway abstracts external payment providers (e.g. Mercado Pago).
//
// The storefront uses it to open a hosted checkout session for an order and to
// check the identifiers returned after payment. A rejected payment is reported
// through PaymentCheck.Approved; errors are reserved for transport failures.
type IPaymentGateway interface {
	CreateSession(ctx context.Context, req PaymentSessionRequest) (PaymentSession, error)
	VerifyPayment(ctx context.Context, orderID string, c PaymentConfirmation) (PaymentCheck, error)
}

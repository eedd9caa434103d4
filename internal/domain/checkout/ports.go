package checkout

import (
	"context"

	"handcrafted_gifts/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// Submission is the order payload built from a draft.
type Submission struct {
	Customer      entities.CustomerInfo
	ProductID     string
	Quantity      int
	Customization entities.Customization
	GiftWrap      bool
	Total         decimal.Decimal
}

type SubmittedOrder struct {
	OrderID              string `json:"order_id"`
	OrderNumber          string `json:"order_number"`
	PaymentSessionHandle string `json:"payment_session_handle"`
	CheckoutURL          string `json:"checkout_url,omitempty"`
}

// GatewayResult carries the identifiers the payment provider hands back after a
// successful charge. They are forwarded verbatim for verification.
type GatewayResult struct {
	SessionID string `json:"session_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

type VerifiedOrder struct {
	OrderNumber string
}

type SessionRequest struct {
	Handle           string
	CheckoutURL      string
	AmountMinorUnits int64
	Currency         string
	Description      string
	Customer         entities.CustomerInfo
}

// GatewaySession is what the client needs to complete the payment.
type GatewaySession struct {
	Handle           string `json:"handle"`
	RedirectURL      string `json:"redirect_url,omitempty"`
	AmountMinorUnits int64  `json:"amount_minor_units"`
	Currency         string `json:"currency"`
}

type OrderSubmitter interface {
	CreateOrder(ctx context.Context, s Submission) (SubmittedOrder, error)
}

type PaymentVerifier interface {
	VerifyPayment(ctx context.Context, orderID string, result GatewayResult) (VerifiedOrder, error)
}

// PaymentGatewayPort opens the provider payment session for a submitted order.
type PaymentGatewayPort interface {
	OpenSession(ctx context.Context, req SessionRequest) (GatewaySession, error)
}

type DirectMessageLinker interface {
	BuildLink(text string) (string, error)
}

// Aliases keep wizard signatures short.
type (
	Customization = entities.Customization
	Customer      = entities.CustomerInfo
)

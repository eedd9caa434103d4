package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"handcrafted_gifts/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/rs/zerolog/log"
)

var (
	ErrMissingMercadoPagoAccessToken   = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
	ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")
	ErrMissingMockSecret               = errors.New("missing PAYMENT_MOCK_SECRET")
)

const mpStatusApproved = "approved"

type Options struct {
	AccessToken string
	Mock        bool
	MockSecret  string
	// SiteURL is the storefront base URL used for the provider's return links.
	SiteURL string
}

// MercadoPagoGateway opens Checkout Pro preferences and checks payments
// against the Mercado Pago API.
//
// In mock mode no provider is contacted: sessions get a local checkout URL and
// a confirmation is approved when its signature is the HMAC-SHA256 of
// "<session_id>|<payment_id>" under the mock secret.
type MercadoPagoGateway struct {
	preferences preference.Client
	payments    payment.Client
	siteURL     string

	mockMode   bool
	mockSecret []byte
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(opts Options) (*MercadoPagoGateway, error) {
	siteURL := strings.TrimRight(opts.SiteURL, "/")
	if opts.Mock {
		if strings.TrimSpace(opts.MockSecret) == "" {
			return nil, ErrMissingMockSecret
		}
		log.Warn().Msg("[payment][gateway] mock mode enabled")
		return &MercadoPagoGateway{siteURL: siteURL, mockMode: true, mockSecret: []byte(opts.MockSecret)}, nil
	}

	if opts.AccessToken == "" {
		log.Error().Msg("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(opts.AccessToken)
	if err != nil {
		log.Error().Err(err).Msg("[payment][gateway] failed creating sdk config")
		return nil, err
	}
	log.Info().Msg("[payment][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{
		preferences: preference.NewClient(cfg),
		payments:    payment.NewClient(cfg),
		siteURL:     siteURL,
	}, nil
}

func (g *MercadoPagoGateway) CreateSession(ctx context.Context, req interfaces.PaymentSessionRequest) (interfaces.PaymentSession, error) {
	if g != nil && g.mockMode {
		id := "mock-" + uuid.NewString()
		q := url.Values{}
		q.Set("session_id", id)
		q.Set("order_number", req.OrderNumber)
		q.Set("amount", req.Amount.StringFixed(2))
		log.Info().Str("order_id", req.OrderID).Str("session_id", id).Msg("[payment][gateway] mock session created")
		return interfaces.PaymentSession{ID: id, CheckoutURL: g.siteURL + "/payment/mock?" + q.Encode()}, nil
	}
	if g == nil || g.preferences == nil {
		log.Error().Msg("[payment][gateway] gateway not configured")
		return interfaces.PaymentSession{}, ErrMercadoPagoGatewayNotConfigured
	}
	log.Info().Str("order_id", req.OrderID).Str("amount", req.Amount.String()).Msg("[payment][gateway] create preference start")

	amount, _ := req.Amount.Float64()
	pr := preference.Request{
		ExternalReference: req.OrderID,
		Items: []preference.ItemRequest{{
			ID:         req.OrderNumber,
			Title:      req.Title,
			Quantity:   1,
			UnitPrice:  amount,
			CurrencyID: req.Currency,
		}},
		Payer: &preference.PayerRequest{
			Name:  req.Payer.Name,
			Email: req.Payer.Email,
		},
	}
	if g.siteURL != "" {
		back := g.siteURL + "/order-confirmation?order=" + url.QueryEscape(req.OrderNumber)
		pr.BackURLs = &preference.BackURLsRequest{Success: back, Pending: back, Failure: back}
		pr.AutoReturn = mpStatusApproved
	}

	resp, err := g.preferences.Create(ctx, pr)
	if err != nil {
		log.Error().Err(err).Str("order_id", req.OrderID).Msg("[payment][gateway] sdk preference create failed")
		return interfaces.PaymentSession{}, err
	}
	log.Info().Str("order_id", req.OrderID).Str("session_id", resp.ID).Msg("[payment][gateway] create preference success")
	return interfaces.PaymentSession{ID: resp.ID, CheckoutURL: resp.InitPoint}, nil
}

func (g *MercadoPagoGateway) VerifyPayment(ctx context.Context, orderID string, c interfaces.PaymentConfirmation) (interfaces.PaymentCheck, error) {
	if g != nil && g.mockMode {
		want := SignMockPayment(g.mockSecret, c.SessionID, c.PaymentID)
		if !hmac.Equal([]byte(want), []byte(strings.ToLower(c.Signature))) {
			log.Warn().Str("order_id", orderID).Msg("[payment][gateway] mock signature mismatch")
			return interfaces.PaymentCheck{PaymentID: c.PaymentID, Reason: "signature mismatch"}, nil
		}
		return interfaces.PaymentCheck{PaymentID: c.PaymentID, Approved: true}, nil
	}
	if g == nil || g.payments == nil {
		log.Error().Msg("[payment][gateway] gateway not configured")
		return interfaces.PaymentCheck{}, ErrMercadoPagoGatewayNotConfigured
	}

	id, err := strconv.Atoi(strings.TrimSpace(c.PaymentID))
	if err != nil {
		return interfaces.PaymentCheck{PaymentID: c.PaymentID, Reason: "malformed payment id"}, nil
	}
	resp, err := g.payments.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("order_id", orderID).Int("payment_id", id).Msg("[payment][gateway] sdk payment get failed")
		return interfaces.PaymentCheck{}, err
	}

	check := interfaces.PaymentCheck{PaymentID: strconv.Itoa(resp.ID)}
	switch {
	case resp.ExternalReference != orderID:
		check.Reason = fmt.Sprintf("payment belongs to %q", resp.ExternalReference)
	case resp.Status != mpStatusApproved:
		check.Reason = "payment status " + resp.Status
	default:
		check.Approved = true
	}
	log.Info().
		Str("order_id", orderID).
		Int("payment_id", resp.ID).
		Str("provider_status", resp.Status).
		Bool("approved", check.Approved).
		Msg("[payment][gateway] payment checked")
	return check, nil
}

// SignMockPayment returns the hex HMAC-SHA256 a mock confirmation must carry.
func SignMockPayment(secret []byte, sessionID, paymentID string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(sessionID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

package payments

import (
	"context"
	"errors"
	"strings"
	"testing"

	"handcrafted_gifts/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/shopspring/decimal"
)

type fakePreferences struct {
	preference.Client
	got  preference.Request
	resp *preference.Response
	err  error
}

func (f *fakePreferences) Create(_ context.Context, req preference.Request) (*preference.Response, error) {
	f.got = req
	return f.resp, f.err
}

type fakePayments struct {
	payment.Client
	resp *payment.Response
	err  error
}

func (f *fakePayments) Get(context.Context, int) (*payment.Response, error) {
	return f.resp, f.err
}

func sessionRequest() interfaces.PaymentSessionRequest {
	return interfaces.PaymentSessionRequest{
		OrderID:     "o-1",
		OrderNumber: "HG2610160001",
		Title:       "Floral Hoop x2",
		Amount:      decimal.RequireFromString("1798"),
		Currency:    "INR",
	}
}

func TestNewMercadoPagoGateway(t *testing.T) {
	if _, err := NewMercadoPagoGateway(Options{}); !errors.Is(err, ErrMissingMercadoPagoAccessToken) {
		t.Fatalf("expected ErrMissingMercadoPagoAccessToken, got %v", err)
	}
	if _, err := NewMercadoPagoGateway(Options{Mock: true}); !errors.Is(err, ErrMissingMockSecret) {
		t.Fatalf("expected ErrMissingMockSecret, got %v", err)
	}
}

func TestMercadoPagoGateway_Mock(t *testing.T) {
	g, err := NewMercadoPagoGateway(Options{Mock: true, MockSecret: "s3cret", SiteURL: "http://localhost:3000/"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	session, err := g.CreateSession(context.Background(), sessionRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(session.ID, "mock-") || !strings.HasPrefix(session.CheckoutURL, "http://localhost:3000/payment/mock?") {
		t.Fatalf("unexpected session %+v", session)
	}

	sig := SignMockPayment([]byte("s3cret"), session.ID, "pay-1")
	check, err := g.VerifyPayment(context.Background(), "o-1", interfaces.PaymentConfirmation{SessionID: session.ID, PaymentID: "pay-1", Signature: sig})
	if err != nil || !check.Approved || check.PaymentID != "pay-1" {
		t.Fatalf("expected approval, got %+v, %v", check, err)
	}

	check, err = g.VerifyPayment(context.Background(), "o-1", interfaces.PaymentConfirmation{SessionID: session.ID, PaymentID: "pay-2", Signature: sig})
	if err != nil || check.Approved {
		t.Fatalf("expected rejection for a tampered payment id, got %+v, %v", check, err)
	}
}

func TestMercadoPagoGateway_CreateSession(t *testing.T) {
	prefs := &fakePreferences{resp: &preference.Response{ID: "pref-1", InitPoint: "https://mp.example/checkout/pref-1"}}
	g := &MercadoPagoGateway{preferences: prefs, siteURL: "https://shop.example"}

	session, err := g.CreateSession(context.Background(), sessionRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.ID != "pref-1" || session.CheckoutURL != "https://mp.example/checkout/pref-1" {
		t.Fatalf("unexpected session %+v", session)
	}
	if prefs.got.ExternalReference != "o-1" {
		t.Fatalf("external reference must be the order id, got %q", prefs.got.ExternalReference)
	}
	if len(prefs.got.Items) != 1 || prefs.got.Items[0].UnitPrice != 1798 || prefs.got.Items[0].CurrencyID != "INR" {
		t.Fatalf("unexpected items %+v", prefs.got.Items)
	}
	if prefs.got.BackURLs == nil || !strings.HasPrefix(prefs.got.BackURLs.Success, "https://shop.example/order-confirmation") {
		t.Fatalf("unexpected back urls %+v", prefs.got.BackURLs)
	}
}

func TestMercadoPagoGateway_VerifyPayment(t *testing.T) {
	cases := []struct {
		name     string
		resp     *payment.Response
		approved bool
	}{
		{name: "approved", resp: &payment.Response{ID: 77, Status: "approved", ExternalReference: "o-1"}, approved: true},
		{name: "rejected", resp: &payment.Response{ID: 77, Status: "rejected", ExternalReference: "o-1"}},
		{name: "other order", resp: &payment.Response{ID: 77, Status: "approved", ExternalReference: "o-2"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := &MercadoPagoGateway{payments: &fakePayments{resp: tc.resp}}
			check, err := g.VerifyPayment(context.Background(), "o-1", interfaces.PaymentConfirmation{PaymentID: "77"})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if check.Approved != tc.approved || check.PaymentID != "77" {
				t.Fatalf("unexpected check %+v", check)
			}
		})
	}

	t.Run("malformed id", func(t *testing.T) {
		g := &MercadoPagoGateway{payments: &fakePayments{}}
		check, err := g.VerifyPayment(context.Background(), "o-1", interfaces.PaymentConfirmation{PaymentID: "abc"})
		if err != nil || check.Approved {
			t.Fatalf("expected rejection, got %+v, %v", check, err)
		}
	})

	t.Run("transport error", func(t *testing.T) {
		g := &MercadoPagoGateway{payments: &fakePayments{err: errors.New("timeout")}}
		if _, err := g.VerifyPayment(context.Background(), "o-1", interfaces.PaymentConfirmation{PaymentID: "77"}); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("not configured", func(t *testing.T) {
		var g *MercadoPagoGateway
		if _, err := g.VerifyPayment(context.Background(), "o-1", interfaces.PaymentConfirmation{}); !errors.Is(err, ErrMercadoPagoGatewayNotConfigured) {
			t.Fatalf("expected ErrMercadoPagoGatewayNotConfigured, got %v", err)
		}
	})
}

package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"handcrafted_gifts/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type sentEmail struct {
	to      []string
	subject string
	html    string
}

type fakeEmail struct {
	sent []sentEmail
	err  error
}

func (f *fakeEmail) Send(_ context.Context, to []string, subject, html string) error {
	f.sent = append(f.sent, sentEmail{to: to, subject: subject, html: html})
	return f.err
}

type sentWhatsApp struct {
	to   string
	body string
}

type fakeWhatsApp struct {
	sent []sentWhatsApp
	err  error
}

func (f *fakeWhatsApp) Send(_ context.Context, to, body string) error {
	f.sent = append(f.sent, sentWhatsApp{to: to, body: body})
	return f.err
}

func confirmedOrder() *entities.Order {
	return &entities.Order{
		ID:          "o-1",
		OrderNumber: "HG2610160001",
		Customer: entities.CustomerInfo{
			Name:           "Asha <Rao>",
			Email:          "asha@example.com",
			WhatsAppNumber: "9000000001",
		},
		Items: []entities.OrderItem{{
			ProductName:   "Floral Hoop",
			Quantity:      2,
			Customization: entities.Customization{Text: "For Amma"},
		}},
		TotalAmount:       decimal.RequireFromString("1798"),
		Status:            entities.OrderStatusConfirmed,
		EstimatedDelivery: time.Date(2026, 10, 23, 0, 0, 0, 0, time.UTC),
	}
}

func TestDispatcher_OrderConfirmed(t *testing.T) {
	mail, wa := &fakeEmail{}, &fakeWhatsApp{}
	d := NewDispatcher(mail, wa, "owner@example.com", "https://shop.example/")

	err := d.Notify(context.Background(), entities.Notification{ID: "n-1", Kind: entities.NotificationOrderConfirmed, Order: confirmedOrder()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(wa.sent) != 1 || wa.sent[0].to != "9000000001" {
		t.Fatalf("unexpected whatsapp sends %+v", wa.sent)
	}
	body := wa.sent[0].body
	for _, want := range []string{
		"🎉 Order Confirmed!",
		"Your order #HG2610160001 has been confirmed.",
		"Total Amount: ₹1798",
		"• Floral Hoop (Qty: 2)",
		"Estimated Delivery: 23/10/2026",
		"Track your order: https://shop.example/track",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("whatsapp body misses %q:\n%s", want, body)
		}
	}

	if len(mail.sent) != 1 || mail.sent[0].subject != "Order Confirmed - HG2610160001" {
		t.Fatalf("unexpected emails %+v", mail.sent)
	}
	html := mail.sent[0].html
	if !strings.Contains(html, "Asha &lt;Rao&gt;") {
		t.Fatalf("customer name must be escaped:\n%s", html)
	}
	if !strings.Contains(html, "Customization: For Amma") {
		t.Fatalf("customization text missing:\n%s", html)
	}
}

func TestDispatcher_StatusChanged(t *testing.T) {
	cases := []struct {
		status entities.OrderStatus
		want   string
		extra  string
	}{
		{status: entities.OrderStatusShipped, want: "📦 Order Update", extra: "Track your package and expect delivery within 2-3 days."},
		{status: entities.OrderStatusDelivered, want: "🎉 Order Update", extra: "We'd love to see how you're enjoying your purchase."},
		{status: entities.OrderStatusCancelled, want: "❌ Order Update"},
		{status: entities.OrderStatusPending, want: "📋 Order Update"},
	}
	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			mail, wa := &fakeEmail{}, &fakeWhatsApp{}
			d := NewDispatcher(mail, wa, "", "https://shop.example")
			o := confirmedOrder()
			o.Status = tc.status

			if err := d.Notify(context.Background(), entities.Notification{Kind: entities.NotificationOrderStatusChanged, Order: o}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.HasPrefix(wa.sent[0].body, tc.want) {
				t.Fatalf("unexpected body %q", wa.sent[0].body)
			}
			if tc.extra != "" && !strings.Contains(wa.sent[0].body, tc.extra) {
				t.Fatalf("body misses %q", tc.extra)
			}
			if mail.sent[0].subject != "Order Update - HG2610160001" {
				t.Fatalf("unexpected subject %q", mail.sent[0].subject)
			}
		})
	}
}

func TestDispatcher_ChannelFailuresAreJoined(t *testing.T) {
	mail := &fakeEmail{err: errors.New("smtp down")}
	wa := &fakeWhatsApp{err: errors.New("twilio down")}
	d := NewDispatcher(mail, wa, "", "")

	err := d.Notify(context.Background(), entities.Notification{Kind: entities.NotificationOrderConfirmed, Order: confirmedOrder()})
	if err == nil || !strings.Contains(err.Error(), "smtp down") || !strings.Contains(err.Error(), "twilio down") {
		t.Fatalf("expected both channel errors, got %v", err)
	}
	if len(mail.sent) != 1 || len(wa.sent) != 1 {
		t.Fatalf("both channels must be attempted")
	}
}

func TestDispatcher_SkipsMissingEmail(t *testing.T) {
	mail, wa := &fakeEmail{}, &fakeWhatsApp{}
	d := NewDispatcher(mail, wa, "", "")
	o := confirmedOrder()
	o.Customer.Email = ""

	if err := d.Notify(context.Background(), entities.Notification{Kind: entities.NotificationOrderConfirmed, Order: o}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mail.sent) != 0 || len(wa.sent) != 1 {
		t.Fatalf("unexpected sends email=%d whatsapp=%d", len(mail.sent), len(wa.sent))
	}
}

func TestDispatcher_ContactReceived(t *testing.T) {
	mail := &fakeEmail{}
	d := NewDispatcher(mail, nil, "owner@example.com", "")
	m := &entities.ContactMessage{Name: "Asha", Email: "asha@example.com", Message: "Do you ship abroad?"}

	if err := d.Notify(context.Background(), entities.Notification{Kind: entities.NotificationContactReceived, Contact: m}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mail.sent) != 2 {
		t.Fatalf("expected owner and ack emails, got %+v", mail.sent)
	}
	if mail.sent[0].to[0] != "owner@example.com" || mail.sent[0].subject != "New Contact Form: No Subject" {
		t.Fatalf("unexpected owner email %+v", mail.sent[0])
	}
	if mail.sent[1].to[0] != "asha@example.com" || mail.sent[1].subject != "Thank you for contacting us!" {
		t.Fatalf("unexpected ack email %+v", mail.sent[1])
	}
}

func TestDispatcher_MissingPayload(t *testing.T) {
	d := NewDispatcher(&fakeEmail{}, &fakeWhatsApp{}, "", "")
	if err := d.Notify(context.Background(), entities.Notification{Kind: entities.NotificationOrderConfirmed}); err == nil {
		t.Fatalf("expected error for missing order")
	}
}

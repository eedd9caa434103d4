package notify

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/jordan-wright/email"
)

func TestSMTPEmailSender_Send(t *testing.T) {
	s := NewSMTPEmailSender(SMTPConfig{Host: "smtp.example.com", Port: 587, Username: "shop", Password: "pw", From: "shop@example.com"})

	var gotAddr string
	var got *email.Email
	s.send = func(e *email.Email, addr string, _ smtp.Auth) error {
		gotAddr, got = addr, e
		return nil
	}

	if err := s.Send(context.Background(), []string{"asha@example.com"}, "Order Confirmed - HG2610160001", "<p>hi</p>"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAddr != "smtp.example.com:587" {
		t.Fatalf("unexpected addr %q", gotAddr)
	}
	if got.From != "Handcrafted Gifts <shop@example.com>" || got.To[0] != "asha@example.com" || string(got.HTML) != "<p>hi</p>" {
		t.Fatalf("unexpected email %+v", got)
	}
}

func TestSMTPEmailSender_CancelledContext(t *testing.T) {
	s := NewSMTPEmailSender(SMTPConfig{Host: "smtp.example.com", Port: 587, From: "shop@example.com"})
	s.send = func(*email.Email, string, smtp.Auth) error {
		t.Fatalf("send must not run")
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Send(ctx, []string{"a@example.com"}, "s", "b"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

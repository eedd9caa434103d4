package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	twilioclient "github.com/twilio/twilio-go/client"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

type fakeMessageCreator struct {
	got *twilioapi.CreateMessageParams
	err error
}

func (f *fakeMessageCreator) CreateMessage(params *twilioapi.CreateMessageParams) (*twilioapi.ApiV2010Message, error) {
	f.got = params
	if f.err != nil {
		return nil, f.err
	}
	sid := "SM1"
	return &twilioapi.ApiV2010Message{Sid: &sid}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func TestWhatsAppAddress(t *testing.T) {
	cases := map[string]string{
		"9000000001":        "+919000000001",
		"+91 90000 00001":   "+919000000001",
		"+1 (415) 523-8886": "+14155238886",
	}
	for in, want := range cases {
		if got := WhatsAppAddress(in); got != want {
			t.Fatalf("WhatsAppAddress(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTwilioWhatsAppSender_Send(t *testing.T) {
	fake := &fakeMessageCreator{}
	s := newTwilioWhatsAppSender("+14155238886", fake)

	if err := s.Send(context.Background(), "9000000001", "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.got == nil {
		t.Fatalf("expected a message to be created")
	}
	to, from, body := deref(fake.got.To), deref(fake.got.From), deref(fake.got.Body)
	if to != "whatsapp:+919000000001" || from != "whatsapp:+14155238886" || body != "hello" {
		t.Fatalf("unexpected params to=%q from=%q body=%q", to, from, body)
	}
}

func TestTwilioWhatsAppSender_Error(t *testing.T) {
	t.Run("twilio rest error", func(t *testing.T) {
		fake := &fakeMessageCreator{err: &twilioclient.TwilioRestError{Code: 63007, Message: "channel not found", Status: 400}}
		s := newTwilioWhatsAppSender("+1", fake)

		err := s.Send(context.Background(), "9000000001", "hello")
		if err == nil || !strings.Contains(err.Error(), "63007") || !strings.Contains(err.Error(), "channel not found") {
			t.Fatalf("expected twilio error, got %v", err)
		}
	})

	t.Run("transport error", func(t *testing.T) {
		cause := errors.New("dial tcp: timeout")
		s := newTwilioWhatsAppSender("+1", &fakeMessageCreator{err: cause})

		if err := s.Send(context.Background(), "9000000001", "hello"); !errors.Is(err, cause) {
			t.Fatalf("expected wrapped cause, got %v", err)
		}
	})

	t.Run("cancelled context sends nothing", func(t *testing.T) {
		fake := &fakeMessageCreator{}
		s := newTwilioWhatsAppSender("+1", fake)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if err := s.Send(ctx, "9000000001", "hello"); !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if fake.got != nil {
			t.Fatalf("expected no message to be created")
		}
	})
}

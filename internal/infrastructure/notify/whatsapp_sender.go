package notify

import (
	"context"
	"errors"
	"fmt"

	"handcrafted_gifts/internal/domain/checkout"

	"github.com/twilio/twilio-go"
	twilioclient "github.com/twilio/twilio-go/client"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

const defaultCountryCode = "91"

// WhatsAppSender delivers a WhatsApp text message.
type WhatsAppSender interface {
	Send(ctx context.Context, to, body string) error
}

type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	// From is the sender number registered for WhatsApp, e.g. +14155238886.
	From string
}

// messageCreator is the part of the Twilio REST API the sender uses.
type messageCreator interface {
	CreateMessage(params *twilioapi.CreateMessageParams) (*twilioapi.ApiV2010Message, error)
}

// TwilioWhatsAppSender sends messages through the Twilio Messages API.
type TwilioWhatsAppSender struct {
	from     string
	messages messageCreator
}

func NewTwilioWhatsAppSender(cfg TwilioConfig) *TwilioWhatsAppSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return newTwilioWhatsAppSender(cfg.From, client.Api)
}

func newTwilioWhatsAppSender(from string, messages messageCreator) *TwilioWhatsAppSender {
	return &TwilioWhatsAppSender{from: from, messages: messages}
}

// Send does not take ctx into the Twilio call; a cancelled ctx only stops
// the message from being sent at all.
func (s *TwilioWhatsAppSender) Send(ctx context.Context, to, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioapi.CreateMessageParams{}
	params.SetFrom("whatsapp:" + s.from)
	params.SetTo("whatsapp:" + WhatsAppAddress(to))
	params.SetBody(body)

	if _, err := s.messages.CreateMessage(params); err != nil {
		var te *twilioclient.TwilioRestError
		if errors.As(err, &te) {
			return fmt.Errorf("send whatsapp: twilio %d: %s", te.Code, te.Message)
		}
		return fmt.Errorf("send whatsapp: %w", err)
	}
	return nil
}

// WhatsAppAddress turns a customer number into E.164. Ten digit numbers are
// taken as Indian mobiles.
func WhatsAppAddress(number string) string {
	digits := checkout.DigitsOnly(number)
	if len(digits) == 10 {
		digits = defaultCountryCode + digits
	}
	return "+" + digits
}

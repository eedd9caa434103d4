package notify

import (
	"handcrafted_gifts/internal/config"

	"github.com/rs/zerolog/log"
)

// NewDispatcherFromConfig enables each channel whose credentials are set.
// A dispatcher with no channel still accepts notifications and drops them.
func NewDispatcherFromConfig(cfg *config.Config) *Dispatcher {
	var (
		email    EmailSender
		whatsapp WhatsAppSender
	)
	if cfg.EmailEnabled() {
		email = NewSMTPEmailSender(SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		})
	} else {
		log.Warn().Msg("[notify] SMTP not configured, email disabled")
	}
	if cfg.WhatsAppEnabled() {
		whatsapp = NewTwilioWhatsAppSender(TwilioConfig{
			AccountSID: cfg.TwilioAccountSID,
			AuthToken:  cfg.TwilioAuthToken,
			From:       cfg.TwilioWhatsAppFrom,
		})
	} else {
		log.Warn().Msg("[notify] Twilio not configured, WhatsApp disabled")
	}
	return NewDispatcher(email, whatsapp, cfg.OwnerEmail, cfg.SiteURL)
}

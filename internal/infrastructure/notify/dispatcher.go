package notify

import (
	"context"
	"errors"
	"fmt"

	"handcrafted_gifts/internal/domain/entities"
	"handcrafted_gifts/internal/usecase/interfaces"

	"github.com/rs/zerolog/log"
)

// Dispatcher renders notifications and delivers them over email and WhatsApp.
// A nil sender disables its channel.
type Dispatcher struct {
	email      EmailSender
	whatsapp   WhatsAppSender
	ownerEmail string
	siteURL    string
}

var _ interfaces.INotifier = (*Dispatcher)(nil)

func NewDispatcher(email EmailSender, whatsapp WhatsAppSender, ownerEmail, siteURL string) *Dispatcher {
	return &Dispatcher{email: email, whatsapp: whatsapp, ownerEmail: ownerEmail, siteURL: siteURL}
}

// Notify delivers n on every enabled channel. A failing channel does not stop
// the others; their errors are joined.
func (d *Dispatcher) Notify(ctx context.Context, n entities.Notification) error {
	logger := log.With().Str("notification_id", n.ID).Str("kind", string(n.Kind)).Logger()

	var err error
	switch n.Kind {
	case entities.NotificationOrderConfirmed, entities.NotificationOrderStatusChanged:
		if n.Order == nil {
			return fmt.Errorf("notification %s: missing order", n.ID)
		}
		err = d.notifyOrder(ctx, n.Kind, *n.Order)
	case entities.NotificationContactReceived:
		if n.Contact == nil {
			return fmt.Errorf("notification %s: missing contact", n.ID)
		}
		err = d.notifyContact(ctx, *n.Contact)
	default:
		logger.Warn().Msg("[notify][dispatcher] unknown kind, dropped")
		return nil
	}

	if err != nil {
		logger.Error().Err(err).Msg("[notify][dispatcher] delivery failed")
		return err
	}
	logger.Info().Msg("[notify][dispatcher] delivered")
	return nil
}

func (d *Dispatcher) notifyOrder(ctx context.Context, kind entities.NotificationKind, o entities.Order) error {
	var (
		subject string
		text    string
		html    string
		err     error
	)
	if kind == entities.NotificationOrderConfirmed {
		subject = "Order Confirmed - " + o.OrderNumber
		text = confirmationText(o, d.siteURL)
		html, err = confirmationHTML(o, d.siteURL)
	} else {
		subject = "Order Update - " + o.OrderNumber
		text = statusUpdateText(o, d.siteURL)
		html, err = statusUpdateHTML(o, d.siteURL)
	}
	if err != nil {
		return err
	}

	var errs []error
	if d.whatsapp != nil && o.Customer.WhatsAppNumber != "" {
		if err := d.whatsapp.Send(ctx, o.Customer.WhatsAppNumber, text); err != nil {
			errs = append(errs, err)
		}
	}
	if d.email != nil && o.Customer.Email != "" {
		if err := d.email.Send(ctx, []string{o.Customer.Email}, subject, html); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (d *Dispatcher) notifyContact(ctx context.Context, m entities.ContactMessage) error {
	if d.email == nil {
		return errors.New("contact message: email channel disabled")
	}

	var errs []error
	if d.ownerEmail != "" {
		html, err := contactOwnerHTML(m)
		if err != nil {
			return err
		}
		if err := d.email.Send(ctx, []string{d.ownerEmail}, contactOwnerSubject(m), html); err != nil {
			errs = append(errs, err)
		}
	}

	html, err := contactAckHTML(m)
	if err != nil {
		return err
	}
	if err := d.email.Send(ctx, []string{m.Email}, contactAckSubject, html); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

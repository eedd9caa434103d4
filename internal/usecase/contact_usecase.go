package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"handcrafted_gifts/internal/domain/entities"
	"handcrafted_gifts/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidContact        = errors.New("invalid contact message")
	ErrNotifierNotConfigured = errors.New("notifier not configured")
	emailPattern             = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

type IContactUseCase interface {
	Submit(ctx context.Context, msg entities.ContactMessage) error
}

type ContactUseCase struct {
	notifier interfaces.INotifier
}

var _ IContactUseCase = (*ContactUseCase)(nil)

func NewContactUseCase(notifier interfaces.INotifier) *ContactUseCase {
	return &ContactUseCase{notifier: notifier}
}

// Submit forwards a contact form to the shop owner and acknowledges the sender.
func (u *ContactUseCase) Submit(ctx context.Context, m entities.ContactMessage) error {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Phone = strings.TrimSpace(m.Phone)
	m.Subject = strings.TrimSpace(m.Subject)
	m.Message = strings.TrimSpace(m.Message)

	switch {
	case m.Name == "" || m.Email == "" || m.Message == "":
		return fmt.Errorf("%w: name, email and message are required", ErrInvalidContact)
	case !emailPattern.MatchString(m.Email):
		return fmt.Errorf("%w: invalid email address", ErrInvalidContact)
	}
	if u.notifier == nil {
		return ErrNotifierNotConfigured
	}

	n := entities.Notification{
		ID:         uuid.NewString(),
		Kind:       entities.NotificationContactReceived,
		Contact:    &m,
		OccurredAt: time.Now().UTC(),
	}
	if err := u.notifier.Notify(ctx, n); err != nil {
		log.Error().Err(err).Str("notification_id", n.ID).Msg("[contact][usecase] notify failed")
		return err
	}
	log.Info().Str("notification_id", n.ID).Msg("[contact][usecase] message accepted")
	return nil
}

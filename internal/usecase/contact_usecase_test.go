package usecase

import (
	"context"
	"errors"
	"testing"

	"handcrafted_gifts/internal/domain/entities"
	mock_interfaces "handcrafted_gifts/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestContactUseCase_Submit(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		uc := NewContactUseCase(nil)
		cases := map[string]entities.ContactMessage{
			"missing message": {Name: "Asha", Email: "asha@example.com"},
			"invalid email":   {Name: "Asha", Email: "asha@example", Message: "hi"},
			"spaces in email": {Name: "Asha", Email: "as ha@example.com", Message: "hi"},
		}
		for name, m := range cases {
			t.Run(name, func(t *testing.T) {
				if err := uc.Submit(context.Background(), m); !errors.Is(err, ErrInvalidContact) {
					t.Fatalf("expected ErrInvalidContact, got %v", err)
				}
			})
		}
	})

	t.Run("notifier not configured", func(t *testing.T) {
		uc := NewContactUseCase(nil)
		err := uc.Submit(context.Background(), entities.ContactMessage{Name: "Asha", Email: "asha@example.com", Message: "hi"})
		if !errors.Is(err, ErrNotifierNotConfigured) {
			t.Fatalf("expected ErrNotifierNotConfigured, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		notifier := mock_interfaces.NewMockINotifier(ctrl)
		uc := NewContactUseCase(notifier)

		notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, n entities.Notification) error {
			if n.Kind != entities.NotificationContactReceived || n.Contact == nil || n.Contact.Name != "Asha" {
				t.Fatalf("unexpected notification %+v", n)
			}
			return nil
		})

		err := uc.Submit(context.Background(), entities.ContactMessage{Name: " Asha ", Email: "asha@example.com", Message: "Custom hoop?"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

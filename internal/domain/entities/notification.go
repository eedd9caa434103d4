package entities

import "time"

type NotificationKind string

const (
	NotificationOrderConfirmed     NotificationKind = "order_confirmed"
	NotificationOrderStatusChanged NotificationKind = "order_status_changed"
	NotificationContactReceived    NotificationKind = "contact_received"
)

// ContactMessage is a storefront contact form submission.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// Notification is the event published for the notifier worker. Exactly one of
// Order or Contact is set, depending on Kind.
type Notification struct {
	ID         string           `json:"id"`
	Kind       NotificationKind `json:"kind"`
	Order      *Order           `json:"order,omitempty"`
	Contact    *ContactMessage  `json:"contact,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}

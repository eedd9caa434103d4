package interfaces

import (
	"context"
	"errors"
	"time"

	"handcrafted_gifts/internal/domain/checkout"
)

var ErrCheckoutSessionLocked = errors.New("checkout session locked")

// ICheckoutSessionStore keeps wizard drafts between requests.
//
// Drafts are never deleted explicitly; they expire with the ttl given to Save.
// Get reports found=false for unknown or expired sessions. Lock returns
// ErrCheckoutSessionLocked when another request holds the session.
type ICheckoutSessionStore interface {
	Save(ctx context.Context, id string, d checkout.Draft, ttl time.Duration) error
	Get(ctx context.Context, id string) (checkout.Draft, bool, error)
	Lock(ctx context.Context, id string, ttl time.Duration) (func(context.Context), error)
}

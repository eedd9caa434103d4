package checkout

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidTransition = errors.New("invalid checkout step transition")
	ErrBusy              = errors.New("checkout is waiting on a pending operation")
	ErrAlreadyPlaced     = errors.New("order already placed")
	ErrNoPendingPayment  = errors.New("no pending payment to confirm")
)

// RequiredFieldsMessage is the single message shown for any missing customer field.
const RequiredFieldsMessage = "Please fill all required fields including WhatsApp number"

// ValidationError is user-correctable. It never changes wizard state.
// Fields lists missing required fields, Invalid lists fields whose value is
// not allowed.
type ValidationError struct {
	Message string
	Fields  []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Fields) > 0 {
		parts = append(parts, "missing: "+strings.Join(e.Fields, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid: "+strings.Join(e.Invalid, ", "))
	}
	if len(parts) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(parts, "; "))
}

// NetworkError reports a failed round trip to an order or verification collaborator.
// The wizard stays where it was and the caller may retry.
type NetworkError struct {
	Op          string
	OrderNumber string
	Err         error
}

func (e *NetworkError) Error() string {
	if e.OrderNumber != "" {
		return fmt.Sprintf("%s failed for order %s: %v", e.Op, e.OrderNumber, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// VerificationError means the payment could not be confirmed for an order that
// already exists in pending-payment state.
type VerificationError struct {
	OrderNumber string
	Err         error
}

func (e *VerificationError) Error() string {
	return "Payment verification failed. Please contact support with your order number: " + e.OrderNumber
}

func (e *VerificationError) Unwrap() error { return e.Err }

package checkout

import (
	"context"
	"errors"
	"strings"
)

const DefaultCurrency = "INR"

// MaxQuantity caps a single line so totals stay far from int64 minor units.
const MaxQuantity = 999

// Config wires the wizard to its collaborators.
type Config struct {
	Pricing   Pricing
	Currency  string
	Submitter OrderSubmitter
	Verifier  PaymentVerifier
	Gateway   PaymentGatewayPort
	Linker    DirectMessageLinker
}

// Wizard drives one Draft through customization, address and payment.
// It is not safe for concurrent use; callers serialise access per draft.
type Wizard struct {
	draft Draft
	cfg   Config
}

func New(d Draft, cfg Config) *Wizard {
	if cfg.Pricing == (Pricing{}) {
		cfg.Pricing = DefaultPricing()
	}
	if strings.TrimSpace(cfg.Currency) == "" {
		cfg.Currency = DefaultCurrency
	}
	if !d.Step.Valid() {
		d.Step = NewDraft(d.Product).Step
	}
	if d.Quantity < 1 {
		d.Quantity = 1
	}
	return &Wizard{draft: d, cfg: cfg}
}

func (w *Wizard) Draft() Draft { return w.draft }

func (w *Wizard) Step() Step { return w.draft.Step }

func (w *Wizard) Totals() Totals { return w.draft.Totals(w.cfg.Pricing) }

func (w *Wizard) guardEdit() error {
	if w.draft.Placed() {
		return ErrAlreadyPlaced
	}
	if w.draft.Busy {
		return ErrBusy
	}
	return nil
}

func (w *Wizard) Next() error {
	if err := w.guardEdit(); err != nil {
		return err
	}
	switch w.draft.Step {
	case StepCustomizing:
		w.draft.Step = StepAddress
	case StepAddress:
		w.draft.Step = StepPayment
	default:
		return ErrInvalidTransition
	}
	return nil
}

// Back moves to the immediately preceding step. Field values are kept.
func (w *Wizard) Back() error {
	if err := w.guardEdit(); err != nil {
		return err
	}
	switch w.draft.Step {
	case StepAddress:
		if !w.draft.Product.Customizable {
			return ErrInvalidTransition
		}
		w.draft.Step = StepCustomizing
	case StepPayment:
		w.draft.Step = StepAddress
	default:
		return ErrInvalidTransition
	}
	return nil
}

func (w *Wizard) IncrementQuantity() error {
	return w.SetQuantity(w.draft.Quantity + 1)
}

// DecrementQuantity is a no-op at 1.
func (w *Wizard) DecrementQuantity() error {
	return w.SetQuantity(w.draft.Quantity - 1)
}

// SetQuantity clamps n to [1, MaxQuantity].
func (w *Wizard) SetQuantity(n int) error {
	if err := w.guardEdit(); err != nil {
		return err
	}
	n = max(1, min(n, MaxQuantity))
	if n != w.draft.Quantity {
		w.draft.Pending = nil
	}
	w.draft.Quantity = n
	return nil
}

func (w *Wizard) SetGiftWrap(on bool) error {
	if err := w.guardEdit(); err != nil {
		return err
	}
	if on != w.draft.GiftWrap {
		w.draft.Pending = nil
	}
	w.draft.GiftWrap = on
	return nil
}

func (w *Wizard) SetCustomization(c Customization) error {
	if err := w.guardEdit(); err != nil {
		return err
	}
	if err := ValidateCustomization(w.draft.Product, c); err != nil {
		return err
	}
	if c != w.draft.Customization {
		w.draft.Pending = nil
	}
	w.draft.Customization = c
	return nil
}

func (w *Wizard) SetCustomer(c Customer) error {
	if err := w.guardEdit(); err != nil {
		return err
	}
	if c != w.draft.Customer {
		w.draft.Pending = nil
	}
	w.draft.Customer = c
	return nil
}

// InitiatePayment validates the customer, submits the order and opens the
// provider session. On success the wizard stays busy until ConfirmPayment or
// DismissPayment. Every call creates a new order.
func (w *Wizard) InitiatePayment(ctx context.Context) (GatewaySession, error) {
	if err := w.guardEdit(); err != nil {
		return GatewaySession{}, err
	}
	if w.draft.Step != StepPayment {
		return GatewaySession{}, ErrInvalidTransition
	}
	if err := ValidateCustomer(w.draft.Customer); err != nil {
		return GatewaySession{}, err
	}
	if w.draft.Product.Customizable {
		if err := ValidateCustomization(w.draft.Product, w.draft.Customization); err != nil {
			return GatewaySession{}, err
		}
	}

	w.draft.Busy = true
	submitted, err := w.cfg.Submitter.CreateOrder(ctx, w.draft.Submission(w.cfg.Pricing))
	if err != nil {
		w.draft.Busy = false
		var ve *ValidationError
		if errors.As(err, &ve) {
			return GatewaySession{}, ve
		}
		return GatewaySession{}, &NetworkError{Op: "create order", Err: err}
	}
	w.draft.Pending = &PendingOrder{
		OrderID:     submitted.OrderID,
		OrderNumber: submitted.OrderNumber,
		Handle:      submitted.PaymentSessionHandle,
		CheckoutURL: submitted.CheckoutURL,
	}

	total := w.Totals().Total
	session, err := w.cfg.Gateway.OpenSession(ctx, SessionRequest{
		Handle:           submitted.PaymentSessionHandle,
		CheckoutURL:      submitted.CheckoutURL,
		AmountMinorUnits: AmountMinorUnits(total),
		Currency:         w.cfg.Currency,
		Description:      "Order for " + w.draft.Product.Name,
		Customer:         w.draft.Customer,
	})
	if err != nil {
		w.draft.Busy = false
		return GatewaySession{}, &NetworkError{Op: "open payment session", OrderNumber: submitted.OrderNumber, Err: err}
	}
	return session, nil
}

// ConfirmPayment forwards the provider result for verification. On failure the
// wizard stays at the payment step with the draft untouched. Field edits after
// initiation drop the pending order.
func (w *Wizard) ConfirmPayment(ctx context.Context, result GatewayResult) (string, error) {
	if w.draft.Placed() {
		return w.draft.OrderNumber, ErrAlreadyPlaced
	}
	if w.draft.Step != StepPayment {
		return "", ErrInvalidTransition
	}
	pending := w.draft.Pending
	if pending == nil {
		return "", ErrNoPendingPayment
	}

	verified, err := w.cfg.Verifier.VerifyPayment(ctx, pending.OrderID, result)
	w.draft.Busy = false
	if err != nil {
		var ve *VerificationError
		if errors.As(err, &ve) {
			if ve.OrderNumber == "" {
				ve.OrderNumber = pending.OrderNumber
			}
			return "", ve
		}
		return "", &NetworkError{Op: "verify payment", OrderNumber: pending.OrderNumber, Err: err}
	}

	number := verified.OrderNumber
	if number == "" {
		number = pending.OrderNumber
	}
	w.draft.Step = StepPlaced
	w.draft.OrderNumber = number
	w.draft.Pending = nil
	return number, nil
}

// DismissPayment handles the buyer closing the provider window. It is not an
// error and leaves the step unchanged.
func (w *Wizard) DismissPayment() error {
	if w.draft.Placed() {
		return ErrAlreadyPlaced
	}
	w.draft.Busy = false
	return nil
}

// DirectMessage formats the draft for ordering over chat and returns the deep
// link. No order is created and the step does not change.
func (w *Wizard) DirectMessage() (string, error) {
	if w.draft.Placed() {
		return "", ErrAlreadyPlaced
	}
	if err := ValidateCustomer(w.draft.Customer); err != nil {
		return "", err
	}
	return w.cfg.Linker.BuildLink(FormatOrderMessage(w.draft, w.Totals().Total))
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"handcrafted_gifts/internal/domain/checkout"
	"handcrafted_gifts/internal/domain/entities"
	"handcrafted_gifts/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	checkoutLockTTL = 30 * time.Second
	// placed sessions stay readable for a while so the client can show the order number
	placedSessionTTL = 15 * time.Minute
)

var (
	ErrCheckoutSessionNotFound = errors.New("checkout session not found")
	ErrInvalidCheckoutSession  = errors.New("invalid checkout session id")
)

type CheckoutSettings struct {
	Pricing        checkout.Pricing
	Currency       string
	SessionTTL     time.Duration
	WhatsAppNumber string
}

// CheckoutPatch edits wizard fields. QuantityDelta is added to the current
// quantity, which stays within [1, checkout.MaxQuantity]. A patch is applied
// as a whole or not at all.
type CheckoutPatch struct {
	Quantity      *int
	QuantityDelta int
	GiftWrap      *bool
	Customization *entities.Customization
	Customer      *entities.CustomerInfo
}

// CheckoutSession is a stored wizard draft with its derived totals.
type CheckoutSession struct {
	ID     string
	Draft  checkout.Draft
	Totals checkout.Totals
}

// ICheckoutUseCase hosts customization wizards between requests so thin
// clients can drive the flow step by step.
type ICheckoutUseCase interface {
	Start(ctx context.Context, productID string) (CheckoutSession, error)
	Get(ctx context.Context, id string) (CheckoutSession, error)
	Update(ctx context.Context, id string, patch CheckoutPatch) (CheckoutSession, error)
	Next(ctx context.Context, id string) (CheckoutSession, error)
	Back(ctx context.Context, id string) (CheckoutSession, error)
	Pay(ctx context.Context, id string) (CheckoutSession, checkout.GatewaySession, error)
	Confirm(ctx context.Context, id string, result checkout.GatewayResult) (CheckoutSession, error)
	Dismiss(ctx context.Context, id string) (CheckoutSession, error)
	DirectMessage(ctx context.Context, id string) (string, error)
}

type CheckoutUseCase struct {
	store    interfaces.ICheckoutSessionStore
	products IProductUseCase
	orders   IOrderUseCase
	settings CheckoutSettings
}

var _ ICheckoutUseCase = (*CheckoutUseCase)(nil)

func NewCheckoutUseCase(store interfaces.ICheckoutSessionStore, products IProductUseCase, orders IOrderUseCase, settings CheckoutSettings) *CheckoutUseCase {
	if settings.Pricing == (checkout.Pricing{}) {
		settings.Pricing = checkout.DefaultPricing()
	}
	if settings.Currency == "" {
		settings.Currency = checkout.DefaultCurrency
	}
	if settings.SessionTTL <= 0 {
		settings.SessionTTL = 2 * time.Hour
	}
	return &CheckoutUseCase{store: store, products: products, orders: orders, settings: settings}
}

func (u *CheckoutUseCase) Start(ctx context.Context, productID string) (CheckoutSession, error) {
	p, err := u.products.Get(ctx, productID)
	if err != nil {
		return CheckoutSession{}, err
	}
	if !p.InStock {
		return CheckoutSession{}, fmt.Errorf("%w: %s", ErrProductOutOfStock, p.Name)
	}

	id := uuid.NewString()
	d := checkout.NewDraft(p)
	if err := u.store.Save(ctx, id, d, u.settings.SessionTTL); err != nil {
		log.Error().Err(err).Str("session_id", id).Msg("[checkout][usecase] session save failed")
		return CheckoutSession{}, err
	}
	log.Info().Str("session_id", id).Str("product_id", p.ID).Str("step", d.Step.String()).Msg("[checkout][usecase] session started")
	return u.view(id, d), nil
}

func (u *CheckoutUseCase) Get(ctx context.Context, id string) (CheckoutSession, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return CheckoutSession{}, ErrInvalidCheckoutSession
	}
	d, found, err := u.store.Get(ctx, id)
	if err != nil {
		return CheckoutSession{}, err
	}
	if !found {
		return CheckoutSession{}, ErrCheckoutSessionNotFound
	}
	return u.view(id, d), nil
}

func (u *CheckoutUseCase) Update(ctx context.Context, id string, patch CheckoutPatch) (CheckoutSession, error) {
	return u.mutate(ctx, id, func(w *checkout.Wizard) error {
		if patch.Quantity != nil {
			if err := w.SetQuantity(*patch.Quantity); err != nil {
				return err
			}
		}
		if patch.QuantityDelta != 0 {
			delta := max(-checkout.MaxQuantity, min(patch.QuantityDelta, checkout.MaxQuantity))
			if err := w.SetQuantity(w.Draft().Quantity + delta); err != nil {
				return err
			}
		}
		if patch.GiftWrap != nil {
			if err := w.SetGiftWrap(*patch.GiftWrap); err != nil {
				return err
			}
		}
		if patch.Customization != nil {
			if err := w.SetCustomization(*patch.Customization); err != nil {
				return err
			}
		}
		if patch.Customer != nil {
			if err := w.SetCustomer(*patch.Customer); err != nil {
				return err
			}
		}
		return nil
	})
}

func (u *CheckoutUseCase) Next(ctx context.Context, id string) (CheckoutSession, error) {
	return u.mutate(ctx, id, func(w *checkout.Wizard) error { return w.Next() })
}

func (u *CheckoutUseCase) Back(ctx context.Context, id string) (CheckoutSession, error) {
	return u.mutate(ctx, id, func(w *checkout.Wizard) error { return w.Back() })
}

func (u *CheckoutUseCase) Pay(ctx context.Context, id string) (CheckoutSession, checkout.GatewaySession, error) {
	var gs checkout.GatewaySession
	s, err := u.mutate(ctx, id, func(w *checkout.Wizard) error {
		var err error
		gs, err = w.InitiatePayment(ctx)
		return err
	})
	if err == nil && s.Draft.Pending != nil {
		log.Info().Str("session_id", id).Str("order_number", s.Draft.Pending.OrderNumber).Msg("[checkout][usecase] payment session opened")
	}
	return s, gs, err
}

func (u *CheckoutUseCase) Confirm(ctx context.Context, id string, result checkout.GatewayResult) (CheckoutSession, error) {
	s, err := u.mutate(ctx, id, func(w *checkout.Wizard) error {
		_, err := w.ConfirmPayment(ctx, result)
		return err
	})
	if err != nil {
		log.Warn().Err(err).Str("session_id", id).Msg("[checkout][usecase] confirm failed")
		return s, err
	}
	log.Info().Str("session_id", id).Str("order_number", s.Draft.OrderNumber).Msg("[checkout][usecase] order placed")
	return s, nil
}

func (u *CheckoutUseCase) Dismiss(ctx context.Context, id string) (CheckoutSession, error) {
	return u.mutate(ctx, id, func(w *checkout.Wizard) error { return w.DismissPayment() })
}

func (u *CheckoutUseCase) DirectMessage(ctx context.Context, id string) (string, error) {
	s, err := u.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return u.wizard(s.Draft).DirectMessage()
}

// mutate runs fn on the stored draft under the session lock. When fn fails the
// stored draft is left as it was, except for a cleared busy flag.
func (u *CheckoutUseCase) mutate(ctx context.Context, id string, fn func(w *checkout.Wizard) error) (CheckoutSession, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return CheckoutSession{}, ErrInvalidCheckoutSession
	}
	unlock, err := u.store.Lock(ctx, id, checkoutLockTTL)
	if err != nil {
		if errors.Is(err, interfaces.ErrCheckoutSessionLocked) {
			return CheckoutSession{}, checkout.ErrBusy
		}
		return CheckoutSession{}, err
	}
	defer unlock(context.WithoutCancel(ctx))

	d, found, err := u.store.Get(ctx, id)
	if err != nil {
		return CheckoutSession{}, err
	}
	if !found {
		return CheckoutSession{}, ErrCheckoutSessionNotFound
	}

	w := u.wizard(d)
	opErr := fn(w)
	out := w.Draft()
	if opErr != nil {
		if out.Busy == d.Busy {
			return u.view(id, d), opErr
		}
		d.Busy = out.Busy
		out = d
	}

	ttl := u.settings.SessionTTL
	if out.Placed() {
		ttl = min(ttl, placedSessionTTL)
	}
	if err := u.store.Save(ctx, id, out, ttl); err != nil {
		log.Error().Err(err).Str("session_id", id).Msg("[checkout][usecase] session save failed")
		return CheckoutSession{}, err
	}
	return u.view(id, out), opErr
}

func (u *CheckoutUseCase) wizard(d checkout.Draft) *checkout.Wizard {
	return checkout.New(d, checkout.Config{
		Pricing:   u.settings.Pricing,
		Currency:  u.settings.Currency,
		Submitter: orderSubmitter{orders: u.orders},
		Verifier:  paymentVerifier{orders: u.orders},
		Gateway:   hostedCheckout{},
		Linker:    checkout.WhatsAppLinker{Number: u.settings.WhatsAppNumber},
	})
}

func (u *CheckoutUseCase) view(id string, d checkout.Draft) CheckoutSession {
	return CheckoutSession{ID: id, Draft: d, Totals: d.Totals(u.settings.Pricing)}
}

// orderSubmitter adapts IOrderUseCase to the wizard's submission port.
type orderSubmitter struct {
	orders IOrderUseCase
}

func (s orderSubmitter) CreateOrder(ctx context.Context, sub checkout.Submission) (checkout.SubmittedOrder, error) {
	o, err := s.orders.Create(ctx, CreateOrderInput{
		Customer: sub.Customer,
		Items: []OrderItemInput{{
			ProductID:     sub.ProductID,
			Quantity:      sub.Quantity,
			Customization: sub.Customization,
		}},
		GiftWrap: sub.GiftWrap,
	})
	if err != nil {
		var ve *checkout.ValidationError
		if errors.As(err, &ve) {
			return checkout.SubmittedOrder{}, ve
		}
		if errors.Is(err, ErrInvalidOrder) || errors.Is(err, ErrProductNotFound) || errors.Is(err, ErrProductOutOfStock) {
			return checkout.SubmittedOrder{}, &checkout.ValidationError{Message: err.Error()}
		}
		return checkout.SubmittedOrder{}, err
	}
	if !o.TotalAmount.Equal(sub.Total) {
		log.Warn().
			Str("order_id", o.ID).
			Str("draft_total", sub.Total.String()).
			Str("order_total", o.TotalAmount.String()).
			Msg("[checkout][usecase] draft total differs from order total")
	}
	return checkout.SubmittedOrder{
		OrderID:              o.ID,
		OrderNumber:          o.OrderNumber,
		PaymentSessionHandle: o.PaymentSessionID,
		CheckoutURL:          o.PaymentCheckoutURL,
	}, nil
}

type paymentVerifier struct {
	orders IOrderUseCase
}

func (v paymentVerifier) VerifyPayment(ctx context.Context, orderID string, r checkout.GatewayResult) (checkout.VerifiedOrder, error) {
	o, err := v.orders.VerifyPayment(ctx, orderID, interfaces.PaymentConfirmation{
		SessionID: r.SessionID,
		PaymentID: r.PaymentID,
		Signature: r.Signature,
	})
	if err != nil {
		if errors.Is(err, ErrPaymentVerificationFailed) {
			return checkout.VerifiedOrder{}, &checkout.VerificationError{Err: err}
		}
		return checkout.VerifiedOrder{}, err
	}
	return checkout.VerifiedOrder{OrderNumber: o.OrderNumber}, nil
}

// hostedCheckout hands the provider redirect back to the client; the provider
// page plays the role of the payment modal.
type hostedCheckout struct{}

func (hostedCheckout) OpenSession(_ context.Context, req checkout.SessionRequest) (checkout.GatewaySession, error) {
	if req.Handle == "" {
		return checkout.GatewaySession{}, errors.New("missing payment session handle")
	}
	return checkout.GatewaySession{
		Handle:           req.Handle,
		RedirectURL:      req.CheckoutURL,
		AmountMinorUnits: req.AmountMinorUnits,
		Currency:         req.Currency,
	}, nil
}

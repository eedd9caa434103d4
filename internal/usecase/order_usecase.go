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
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound                = errors.New("order not found")
	ErrInvalidOrderID               = errors.New("invalid order id")
	ErrInvalidOrder                 = errors.New("invalid order")
	ErrProductOutOfStock            = errors.New("product out of stock")
	ErrInvalidOrderStatus           = errors.New("invalid order status")
	ErrInvalidStatusTransition      = errors.New("order status cannot change")
	ErrPaymentVerificationFailed    = errors.New("payment verification failed")
	ErrPaymentGatewayNotConfigured  = errors.New("payment gateway not configured")
	ErrOrderNumberGeneratorNotReady = errors.New("order number generator not configured")
)

type OrderItemInput struct {
	ProductID     string
	Quantity      int
	Customization entities.Customization
}

type CreateOrderInput struct {
	Customer entities.CustomerInfo
	Items    []OrderItemInput
	GiftWrap bool
	Notes    string
}

// OrderPatch holds the admin-editable fields; nil fields are left untouched.
type OrderPatch struct {
	Status            *entities.OrderStatus
	Notes             *string
	EstimatedDelivery *time.Time
}

type OrderSettings struct {
	Pricing               checkout.Pricing
	Currency              string
	EstimatedDeliveryDays int
}

// IOrderUseCase exposes order operations.
//
// Create snapshots product name, price and first image into each line and
// computes the total server side. Online orders get a payment session that
// VerifyPayment later settles.
type IOrderUseCase interface {
	Create(ctx context.Context, in CreateOrderInput) (entities.Order, error)
	CreateDirect(ctx context.Context, in CreateOrderInput) (entities.Order, error)
	VerifyPayment(ctx context.Context, orderID string, c interfaces.PaymentConfirmation) (entities.Order, error)
	GetByID(ctx context.Context, id string) (entities.Order, error)
	Track(ctx context.Context, orderNumber string) (entities.Order, error)
	List(ctx context.Context, filter interfaces.OrderFilter) ([]entities.Order, error)
	UpdateStatus(ctx context.Context, id string, status entities.OrderStatus) (entities.Order, error)
	Update(ctx context.Context, id string, patch OrderPatch) (entities.Order, error)
	Delete(ctx context.Context, id string) error
}

type OrderUseCase struct {
	orders   interfaces.IOrderRepository
	products interfaces.IProductRepository
	numbers  interfaces.IOrderNumberGenerator
	gateway  interfaces.IPaymentGateway
	notifier interfaces.INotifier
	settings OrderSettings
	now      func() time.Time
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

func NewOrderUseCase(
	orders interfaces.IOrderRepository,
	products interfaces.IProductRepository,
	numbers interfaces.IOrderNumberGenerator,
	gateway interfaces.IPaymentGateway,
	notifier interfaces.INotifier,
	settings OrderSettings,
) *OrderUseCase {
	if settings.Pricing == (checkout.Pricing{}) {
		settings.Pricing = checkout.DefaultPricing()
	}
	if settings.Currency == "" {
		settings.Currency = checkout.DefaultCurrency
	}
	if settings.EstimatedDeliveryDays <= 0 {
		settings.EstimatedDeliveryDays = 7
	}
	return &OrderUseCase{
		orders:   orders,
		products: products,
		numbers:  numbers,
		gateway:  gateway,
		notifier: notifier,
		settings: settings,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (u *OrderUseCase) Create(ctx context.Context, in CreateOrderInput) (entities.Order, error) {
	log.Info().Int("items", len(in.Items)).Msg("[order][usecase] create start")
	if u.gateway == nil {
		log.Error().Msg("[order][usecase] gateway not configured")
		return entities.Order{}, ErrPaymentGatewayNotConfigured
	}

	o, err := u.build(ctx, in, entities.PaymentMethodOnline)
	if err != nil {
		return entities.Order{}, err
	}

	session, err := u.gateway.CreateSession(ctx, interfaces.PaymentSessionRequest{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		Title:       paymentTitle(o),
		Amount:      o.TotalAmount,
		Currency:    o.Currency,
		Payer:       o.Customer,
	})
	if err != nil {
		log.Error().Err(err).Str("order_id", o.ID).Str("order_number", o.OrderNumber).Msg("[order][usecase] payment session failed")
		return entities.Order{}, err
	}
	o.PaymentSessionID = session.ID
	o.PaymentCheckoutURL = session.CheckoutURL

	created, err := u.orders.Create(ctx, o)
	if err != nil {
		log.Error().Err(err).Str("order_id", o.ID).Msg("[order][usecase] repository create failed")
		return entities.Order{}, err
	}
	log.Info().
		Str("order_id", created.ID).
		Str("order_number", created.OrderNumber).
		Str("total", created.TotalAmount.String()).
		Str("payment_session_id", created.PaymentSessionID).
		Msg("[order][usecase] create success")
	return created, nil
}

// CreateDirect records an order agreed over WhatsApp. No payment session is opened.
func (u *OrderUseCase) CreateDirect(ctx context.Context, in CreateOrderInput) (entities.Order, error) {
	o, err := u.build(ctx, in, entities.PaymentMethodWhatsApp)
	if err != nil {
		return entities.Order{}, err
	}
	created, err := u.orders.Create(ctx, o)
	if err != nil {
		log.Error().Err(err).Str("order_id", o.ID).Msg("[order][usecase] repository create failed")
		return entities.Order{}, err
	}
	log.Info().Str("order_id", created.ID).Str("order_number", created.OrderNumber).Msg("[order][usecase] direct order recorded")
	return created, nil
}

func (u *OrderUseCase) build(ctx context.Context, in CreateOrderInput, method entities.PaymentMethod) (entities.Order, error) {
	if err := checkout.ValidateCustomer(in.Customer); err != nil {
		return entities.Order{}, fmt.Errorf("%w: %w", ErrInvalidOrder, err)
	}
	if len(in.Items) == 0 {
		return entities.Order{}, fmt.Errorf("%w: at least one item is required", ErrInvalidOrder)
	}
	if u.numbers == nil {
		return entities.Order{}, ErrOrderNumberGeneratorNotReady
	}

	items := make([]entities.OrderItem, 0, len(in.Items))
	subtotal := decimal.Zero
	for _, it := range in.Items {
		item, err := u.snapshotItem(ctx, it)
		if err != nil {
			return entities.Order{}, err
		}
		items = append(items, item)
		subtotal = subtotal.Add(item.LineTotal())
	}
	totals := u.settings.Pricing.ForSubtotal(subtotal, in.GiftWrap)

	now := u.now()
	number, err := u.numbers.Next(ctx, now)
	if err != nil {
		log.Error().Err(err).Msg("[order][usecase] order number generation failed")
		return entities.Order{}, err
	}

	return entities.Order{
		ID:                uuid.NewString(),
		OrderNumber:       number,
		Customer:          normalizeCustomer(in.Customer),
		Items:             items,
		GiftWrap:          in.GiftWrap,
		TotalAmount:       totals.Total,
		Currency:          u.settings.Currency,
		Status:            entities.OrderStatusPending,
		PaymentStatus:     entities.PaymentStatusPending,
		PaymentMethod:     method,
		Notes:             strings.TrimSpace(in.Notes),
		EstimatedDelivery: now.AddDate(0, 0, u.settings.EstimatedDeliveryDays),
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

func (u *OrderUseCase) snapshotItem(ctx context.Context, in OrderItemInput) (entities.OrderItem, error) {
	productID := strings.TrimSpace(in.ProductID)
	if productID == "" {
		return entities.OrderItem{}, fmt.Errorf("%w: product id is required", ErrInvalidOrder)
	}
	if in.Quantity < 1 || in.Quantity > checkout.MaxQuantity {
		return entities.OrderItem{}, fmt.Errorf("%w: quantity must be between 1 and %d", ErrInvalidOrder, checkout.MaxQuantity)
	}

	p, err := u.products.GetByID(ctx, productID)
	if err != nil {
		return entities.OrderItem{}, err
	}
	if p.ID == "" {
		return entities.OrderItem{}, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}
	if !p.InStock {
		return entities.OrderItem{}, fmt.Errorf("%w: %s", ErrProductOutOfStock, p.Name)
	}

	customization := entities.Customization{}
	if p.Customizable {
		if err := checkout.ValidateCustomization(p, in.Customization); err != nil {
			return entities.OrderItem{}, fmt.Errorf("%w: %w", ErrInvalidOrder, err)
		}
		customization = in.Customization
	}

	return entities.OrderItem{
		ProductID:     p.ID,
		ProductName:   p.Name,
		ProductImage:  p.PrimaryImage(),
		Price:         p.BasePrice,
		Quantity:      in.Quantity,
		Customization: customization,
	}, nil
}

// VerifyPayment settles the payment of an online order. A rejected check
// leaves the order pending so support can reconcile it by order number.
func (u *OrderUseCase) VerifyPayment(ctx context.Context, orderID string, c interfaces.PaymentConfirmation) (entities.Order, error) {
	o, err := u.GetByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	logger := log.With().Str("order_id", o.ID).Str("order_number", o.OrderNumber).Logger()
	logger.Info().Str("payment_id", c.PaymentID).Msg("[order][usecase] verify payment start")

	if o.PaymentStatus == entities.PaymentStatusPaid {
		logger.Info().Msg("[order][usecase] payment already verified")
		return o, nil
	}
	if o.PaymentMethod != entities.PaymentMethodOnline {
		return entities.Order{}, fmt.Errorf("%w: order is not paid online", ErrPaymentVerificationFailed)
	}
	if strings.TrimSpace(c.PaymentID) == "" {
		return entities.Order{}, fmt.Errorf("%w: missing payment id", ErrPaymentVerificationFailed)
	}
	if c.SessionID != "" && c.SessionID != o.PaymentSessionID {
		logger.Warn().Str("session_id", c.SessionID).Msg("[order][usecase] session does not belong to order")
		return entities.Order{}, fmt.Errorf("%w: session mismatch", ErrPaymentVerificationFailed)
	}
	if u.gateway == nil {
		return entities.Order{}, ErrPaymentGatewayNotConfigured
	}
	c.SessionID = o.PaymentSessionID

	check, err := u.gateway.VerifyPayment(ctx, o.ID, c)
	if err != nil {
		logger.Error().Err(err).Msg("[order][usecase] gateway verification failed")
		return entities.Order{}, err
	}
	if !check.Approved {
		logger.Warn().Str("reason", check.Reason).Msg("[order][usecase] payment not approved")
		return entities.Order{}, fmt.Errorf("%w: %s", ErrPaymentVerificationFailed, check.Reason)
	}

	paid := entities.PaymentStatusPaid
	paymentID := check.PaymentID
	upd := interfaces.OrderUpdate{PaymentStatus: &paid, PaymentID: &paymentID}
	if o.Status == entities.OrderStatusPending {
		confirmed := entities.OrderStatusConfirmed
		upd.Status = &confirmed
	}
	updated, err := u.orders.Update(ctx, o.ID, upd)
	if err != nil {
		logger.Error().Err(err).Msg("[order][usecase] repository update failed")
		return entities.Order{}, err
	}
	if updated.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}

	u.notify(ctx, entities.NotificationOrderConfirmed, updated)
	logger.Info().Str("payment_id", paymentID).Msg("[order][usecase] payment verified")
	return updated, nil
}

func (u *OrderUseCase) GetByID(ctx context.Context, id string) (entities.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Order{}, ErrInvalidOrderID
	}
	o, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	if o.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	return o, nil
}

// Track resolves an order by its human readable number, case-insensitively.
func (u *OrderUseCase) Track(ctx context.Context, orderNumber string) (entities.Order, error) {
	orderNumber = strings.ToUpper(strings.TrimSpace(orderNumber))
	if orderNumber == "" {
		return entities.Order{}, ErrInvalidOrderID
	}
	o, err := u.orders.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return entities.Order{}, err
	}
	if o.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	return o, nil
}

func (u *OrderUseCase) List(ctx context.Context, filter interfaces.OrderFilter) ([]entities.Order, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, ErrInvalidOrderStatus
	}
	return u.orders.List(ctx, filter)
}

func (u *OrderUseCase) UpdateStatus(ctx context.Context, id string, status entities.OrderStatus) (entities.Order, error) {
	return u.Update(ctx, id, OrderPatch{Status: &status})
}

// Update applies an admin patch. A status change notifies the customer;
// delivered and cancelled orders keep their status.
func (u *OrderUseCase) Update(ctx context.Context, id string, patch OrderPatch) (entities.Order, error) {
	current, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}

	upd := interfaces.OrderUpdate{Notes: patch.Notes, EstimatedDelivery: patch.EstimatedDelivery}
	statusChanged := false
	if patch.Status != nil {
		status := *patch.Status
		if !status.Valid() {
			return entities.Order{}, ErrInvalidOrderStatus
		}
		if status != current.Status {
			if current.Status.Terminal() {
				return entities.Order{}, fmt.Errorf("%w: %s is final", ErrInvalidStatusTransition, current.Status)
			}
			upd.Status = &status
			statusChanged = true
		}
	}
	if upd.Notes != nil {
		notes := strings.TrimSpace(*upd.Notes)
		upd.Notes = &notes
	}
	if upd.IsEmpty() {
		if patch.Status != nil {
			return current, nil
		}
		return entities.Order{}, fmt.Errorf("%w: nothing to update", ErrInvalidOrder)
	}

	updated, err := u.orders.Update(ctx, current.ID, upd)
	if err != nil {
		log.Error().Err(err).Str("order_id", current.ID).Msg("[order][usecase] repository update failed")
		return entities.Order{}, err
	}
	if updated.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	if statusChanged {
		log.Info().
			Str("order_id", updated.ID).
			Str("from", string(current.Status)).
			Str("to", string(updated.Status)).
			Msg("[order][usecase] status changed")
		u.notify(ctx, entities.NotificationOrderStatusChanged, updated)
	}
	return updated, nil
}

func (u *OrderUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidOrderID
	}
	deleted, err := u.orders.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrOrderNotFound
	}
	log.Info().Str("order_id", id).Msg("[order][usecase] deleted")
	return nil
}

// notify never fails the calling operation.
func (u *OrderUseCase) notify(ctx context.Context, kind entities.NotificationKind, o entities.Order) {
	if u.notifier == nil {
		return
	}
	n := entities.Notification{ID: uuid.NewString(), Kind: kind, Order: &o, OccurredAt: u.now()}
	if err := u.notifier.Notify(ctx, n); err != nil {
		log.Warn().Err(err).Str("order_id", o.ID).Str("kind", string(kind)).Msg("[order][usecase] notification failed")
	}
}

func normalizeCustomer(c entities.CustomerInfo) entities.CustomerInfo {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	c.WhatsAppNumber = strings.TrimSpace(c.WhatsAppNumber)
	c.Address.Street = strings.TrimSpace(c.Address.Street)
	c.Address.City = strings.TrimSpace(c.Address.City)
	c.Address.State = strings.TrimSpace(c.Address.State)
	c.Address.PostalCode = strings.TrimSpace(c.Address.PostalCode)
	return c
}

func paymentTitle(o entities.Order) string {
	if len(o.Items) == 1 {
		return "Order for " + o.Items[0].ProductName
	}
	return "Handcrafted Gifts order " + o.OrderNumber
}

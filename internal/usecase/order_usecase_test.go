package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"handcrafted_gifts/internal/domain/checkout"
	"handcrafted_gifts/internal/domain/entities"
	"handcrafted_gifts/internal/usecase/interfaces"
	mock_interfaces "handcrafted_gifts/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

type orderMocks struct {
	orders   *mock_interfaces.MockIOrderRepository
	products *mock_interfaces.MockIProductRepository
	numbers  *mock_interfaces.MockIOrderNumberGenerator
	gateway  *mock_interfaces.MockIPaymentGateway
	notifier *mock_interfaces.MockINotifier
}

func newOrderUseCase(t *testing.T) (*OrderUseCase, orderMocks) {
	ctrl := gomock.NewController(t)
	m := orderMocks{
		orders:   mock_interfaces.NewMockIOrderRepository(ctrl),
		products: mock_interfaces.NewMockIProductRepository(ctrl),
		numbers:  mock_interfaces.NewMockIOrderNumberGenerator(ctrl),
		gateway:  mock_interfaces.NewMockIPaymentGateway(ctrl),
		notifier: mock_interfaces.NewMockINotifier(ctrl),
	}
	uc := NewOrderUseCase(m.orders, m.products, m.numbers, m.gateway, m.notifier, OrderSettings{})
	uc.now = func() time.Time { return fixedNow }
	return uc, m
}

func customer() entities.CustomerInfo {
	return entities.CustomerInfo{
		Name:           "Asha Rao",
		Email:          "asha@example.com",
		Phone:          "9845000000",
		WhatsAppNumber: "9845000000",
		Address:        entities.Address{Street: "12 MG Road", City: "Bengaluru", State: "Karnataka", PostalCode: "560001"},
	}
}

func hoopProduct() entities.Product {
	return entities.Product{
		ID:           "p-1",
		Name:         "Floral Hoop",
		Category:     entities.CategoryEmbroidery,
		BasePrice:    decimal.NewFromInt(899),
		Images:       []string{"https://img/hoop.jpg"},
		Customizable: true,
		InStock:      true,
		Options:      entities.ProductOptions{Colors: []string{"rose"}},
	}
}

func TestOrderUseCase_Create_Validation(t *testing.T) {
	t.Run("missing customer fields", func(t *testing.T) {
		uc, _ := newOrderUseCase(t)
		c := customer()
		c.WhatsAppNumber = ""
		_, err := uc.Create(context.Background(), CreateOrderInput{Customer: c, Items: []OrderItemInput{{ProductID: "p-1", Quantity: 1}}})
		if !errors.Is(err, ErrInvalidOrder) {
			t.Fatalf("expected ErrInvalidOrder, got %v", err)
		}
		var ve *checkout.ValidationError
		if !errors.As(err, &ve) || ve.Message != checkout.RequiredFieldsMessage {
			t.Fatalf("expected aggregate validation error, got %v", err)
		}
	})

	t.Run("no items", func(t *testing.T) {
		uc, _ := newOrderUseCase(t)
		_, err := uc.Create(context.Background(), CreateOrderInput{Customer: customer()})
		if !errors.Is(err, ErrInvalidOrder) {
			t.Fatalf("expected ErrInvalidOrder, got %v", err)
		}
	})

	t.Run("quantity above limit", func(t *testing.T) {
		uc, _ := newOrderUseCase(t)
		_, err := uc.Create(context.Background(), CreateOrderInput{Customer: customer(), Items: []OrderItemInput{{ProductID: "p-1", Quantity: checkout.MaxQuantity + 1}}})
		if !errors.Is(err, ErrInvalidOrder) {
			t.Fatalf("expected ErrInvalidOrder, got %v", err)
		}
	})

	t.Run("product not found", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.products.EXPECT().GetByID(gomock.Any(), "p-9").Return(entities.Product{}, nil)
		_, err := uc.Create(context.Background(), CreateOrderInput{Customer: customer(), Items: []OrderItemInput{{ProductID: "p-9", Quantity: 1}}})
		if !errors.Is(err, ErrProductNotFound) {
			t.Fatalf("expected ErrProductNotFound, got %v", err)
		}
	})

	t.Run("out of stock", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		p := hoopProduct()
		p.InStock = false
		m.products.EXPECT().GetByID(gomock.Any(), "p-1").Return(p, nil)
		_, err := uc.Create(context.Background(), CreateOrderInput{Customer: customer(), Items: []OrderItemInput{{ProductID: "p-1", Quantity: 1}}})
		if !errors.Is(err, ErrProductOutOfStock) {
			t.Fatalf("expected ErrProductOutOfStock, got %v", err)
		}
	})

	t.Run("option not offered", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.products.EXPECT().GetByID(gomock.Any(), "p-1").Return(hoopProduct(), nil)
		_, err := uc.Create(context.Background(), CreateOrderInput{
			Customer: customer(),
			Items:    []OrderItemInput{{ProductID: "p-1", Quantity: 1, Customization: entities.Customization{Color: "teal"}}},
		})
		if !errors.Is(err, ErrInvalidOrder) {
			t.Fatalf("expected ErrInvalidOrder, got %v", err)
		}
	})
}

func TestOrderUseCase_Create_Success(t *testing.T) {
	uc, m := newOrderUseCase(t)

	m.products.EXPECT().GetByID(gomock.Any(), "p-1").Return(hoopProduct(), nil)
	m.numbers.EXPECT().Next(gomock.Any(), fixedNow).Return("HG2610160007", nil)
	m.gateway.EXPECT().CreateSession(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req interfaces.PaymentSessionRequest) (interfaces.PaymentSession, error) {
			if !req.Amount.Equal(decimal.NewFromInt(1798)) || req.OrderNumber != "HG2610160007" || req.Currency != "INR" {
				t.Fatalf("unexpected session request %+v", req)
			}
			return interfaces.PaymentSession{ID: "pref-1", CheckoutURL: "https://mp/checkout/pref-1"}, nil
		})
	m.orders.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, o entities.Order) (entities.Order, error) {
		return o, nil
	})

	o, err := uc.Create(context.Background(), CreateOrderInput{
		Customer: customer(),
		Items:    []OrderItemInput{{ProductID: "p-1", Quantity: 2, Customization: entities.Customization{Text: "A+R", Color: "rose"}}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.OrderNumber != "HG2610160007" || o.Status != entities.OrderStatusPending || o.PaymentStatus != entities.PaymentStatusPending {
		t.Fatalf("unexpected order %+v", o)
	}
	if !o.TotalAmount.Equal(decimal.NewFromInt(1798)) {
		t.Fatalf("expected total 1798, got %s", o.TotalAmount)
	}
	if o.PaymentSessionID != "pref-1" || o.PaymentMethod != entities.PaymentMethodOnline {
		t.Fatalf("unexpected payment fields %+v", o)
	}
	item := o.Items[0]
	if item.ProductName != "Floral Hoop" || item.ProductImage != "https://img/hoop.jpg" || !item.Price.Equal(decimal.NewFromInt(899)) {
		t.Fatalf("expected product snapshot, got %+v", item)
	}
	if !o.EstimatedDelivery.Equal(fixedNow.AddDate(0, 0, 7)) {
		t.Fatalf("unexpected estimated delivery %s", o.EstimatedDelivery)
	}
}

func TestOrderUseCase_Create_GatewayFailureDoesNotPersist(t *testing.T) {
	uc, m := newOrderUseCase(t)
	m.products.EXPECT().GetByID(gomock.Any(), "p-1").Return(hoopProduct(), nil)
	m.numbers.EXPECT().Next(gomock.Any(), gomock.Any()).Return("HG2610160008", nil)
	m.gateway.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return(interfaces.PaymentSession{}, errors.New("mp down"))

	_, err := uc.Create(context.Background(), CreateOrderInput{Customer: customer(), Items: []OrderItemInput{{ProductID: "p-1", Quantity: 1}}})
	if err == nil || err.Error() != "mp down" {
		t.Fatalf("expected gateway error, got %v", err)
	}
}

func TestOrderUseCase_CreateDirect(t *testing.T) {
	uc, m := newOrderUseCase(t)
	p := hoopProduct()
	p.Customizable = false
	p.BasePrice = decimal.NewFromInt(199)
	m.products.EXPECT().GetByID(gomock.Any(), "p-1").Return(p, nil)
	m.numbers.EXPECT().Next(gomock.Any(), gomock.Any()).Return("HG2610160009", nil)
	m.orders.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, o entities.Order) (entities.Order, error) {
		return o, nil
	})

	o, err := uc.CreateDirect(context.Background(), CreateOrderInput{
		Customer: customer(),
		GiftWrap: true,
		Items:    []OrderItemInput{{ProductID: "p-1", Quantity: 1, Customization: entities.Customization{Text: "dropped"}}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.PaymentMethod != entities.PaymentMethodWhatsApp || o.PaymentSessionID != "" {
		t.Fatalf("unexpected payment fields %+v", o)
	}
	if !o.TotalAmount.Equal(decimal.NewFromInt(299)) {
		t.Fatalf("expected total 299, got %s", o.TotalAmount)
	}
	if !o.Items[0].Customization.IsZero() {
		t.Fatalf("customization must be dropped for non customizable products")
	}
}

func pendingOrder() entities.Order {
	return entities.Order{
		ID:               "o-1",
		OrderNumber:      "HG2610160001",
		Status:           entities.OrderStatusPending,
		PaymentStatus:    entities.PaymentStatusPending,
		PaymentMethod:    entities.PaymentMethodOnline,
		PaymentSessionID: "pref-1",
	}
}

func TestOrderUseCase_VerifyPayment(t *testing.T) {
	t.Run("approved", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.orders.EXPECT().GetByID(gomock.Any(), "o-1").Return(pendingOrder(), nil)
		m.gateway.EXPECT().VerifyPayment(gomock.Any(), "o-1", interfaces.PaymentConfirmation{SessionID: "pref-1", PaymentID: "123", Signature: "sig"}).
			Return(interfaces.PaymentCheck{PaymentID: "123", Approved: true}, nil)
		m.orders.EXPECT().Update(gomock.Any(), "o-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, u interfaces.OrderUpdate) (entities.Order, error) {
				if u.Status == nil || *u.Status != entities.OrderStatusConfirmed || *u.PaymentStatus != entities.PaymentStatusPaid || *u.PaymentID != "123" {
					t.Fatalf("unexpected update %+v", u)
				}
				o := pendingOrder()
				o.Status = *u.Status
				o.PaymentStatus = *u.PaymentStatus
				o.PaymentID = *u.PaymentID
				return o, nil
			})
		m.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, n entities.Notification) error {
			if n.Kind != entities.NotificationOrderConfirmed || n.Order.OrderNumber != "HG2610160001" {
				t.Fatalf("unexpected notification %+v", n)
			}
			return errors.New("kafka down")
		})

		o, err := uc.VerifyPayment(context.Background(), "o-1", interfaces.PaymentConfirmation{PaymentID: "123", Signature: "sig"})
		if err != nil {
			t.Fatalf("notification failure must not fail verification: %v", err)
		}
		if o.PaymentStatus != entities.PaymentStatusPaid {
			t.Fatalf("unexpected order %+v", o)
		}
	})

	t.Run("rejected keeps order pending", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.orders.EXPECT().GetByID(gomock.Any(), "o-1").Return(pendingOrder(), nil)
		m.gateway.EXPECT().VerifyPayment(gomock.Any(), "o-1", gomock.Any()).Return(interfaces.PaymentCheck{Reason: "signature mismatch"}, nil)

		_, err := uc.VerifyPayment(context.Background(), "o-1", interfaces.PaymentConfirmation{PaymentID: "123", Signature: "bad"})
		if !errors.Is(err, ErrPaymentVerificationFailed) {
			t.Fatalf("expected ErrPaymentVerificationFailed, got %v", err)
		}
	})

	t.Run("foreign session", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.orders.EXPECT().GetByID(gomock.Any(), "o-1").Return(pendingOrder(), nil)

		_, err := uc.VerifyPayment(context.Background(), "o-1", interfaces.PaymentConfirmation{SessionID: "pref-other", PaymentID: "123"})
		if !errors.Is(err, ErrPaymentVerificationFailed) {
			t.Fatalf("expected ErrPaymentVerificationFailed, got %v", err)
		}
	})

	t.Run("already paid is idempotent", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		o := pendingOrder()
		o.PaymentStatus = entities.PaymentStatusPaid
		m.orders.EXPECT().GetByID(gomock.Any(), "o-1").Return(o, nil)

		got, err := uc.VerifyPayment(context.Background(), "o-1", interfaces.PaymentConfirmation{PaymentID: "123"})
		if err != nil || got.ID != "o-1" {
			t.Fatalf("unexpected result %+v %v", got, err)
		}
	})

	t.Run("order not found", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.orders.EXPECT().GetByID(gomock.Any(), "o-404").Return(entities.Order{}, nil)
		_, err := uc.VerifyPayment(context.Background(), "o-404", interfaces.PaymentConfirmation{PaymentID: "1"})
		if !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})
}

func TestOrderUseCase_Track(t *testing.T) {
	uc, m := newOrderUseCase(t)
	m.orders.EXPECT().GetByOrderNumber(gomock.Any(), "HG2610160001").Return(pendingOrder(), nil)

	o, err := uc.Track(context.Background(), " hg2610160001 ")
	if err != nil || o.ID != "o-1" {
		t.Fatalf("unexpected result %+v %v", o, err)
	}
}

func TestOrderUseCase_UpdateStatus(t *testing.T) {
	t.Run("notifies on change", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.orders.EXPECT().GetByID(gomock.Any(), "o-1").Return(pendingOrder(), nil)
		m.orders.EXPECT().Update(gomock.Any(), "o-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, u interfaces.OrderUpdate) (entities.Order, error) {
				o := pendingOrder()
				o.Status = *u.Status
				return o, nil
			})
		m.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, n entities.Notification) error {
			if n.Kind != entities.NotificationOrderStatusChanged || n.Order.Status != entities.OrderStatusShipped {
				t.Fatalf("unexpected notification %+v", n)
			}
			return nil
		})

		o, err := uc.UpdateStatus(context.Background(), "o-1", entities.OrderStatusShipped)
		if err != nil || o.Status != entities.OrderStatusShipped {
			t.Fatalf("unexpected result %+v %v", o, err)
		}
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.orders.EXPECT().GetByID(gomock.Any(), "o-1").Return(pendingOrder(), nil)

		if _, err := uc.UpdateStatus(context.Background(), "o-1", entities.OrderStatusPending); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("terminal status is final", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		o := pendingOrder()
		o.Status = entities.OrderStatusDelivered
		m.orders.EXPECT().GetByID(gomock.Any(), "o-1").Return(o, nil)

		_, err := uc.UpdateStatus(context.Background(), "o-1", entities.OrderStatusShipped)
		if !errors.Is(err, ErrInvalidStatusTransition) {
			t.Fatalf("expected ErrInvalidStatusTransition, got %v", err)
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.orders.EXPECT().GetByID(gomock.Any(), "o-1").Return(pendingOrder(), nil)

		_, err := uc.UpdateStatus(context.Background(), "o-1", "lost")
		if !errors.Is(err, ErrInvalidOrderStatus) {
			t.Fatalf("expected ErrInvalidOrderStatus, got %v", err)
		}
	})
}

func TestOrderUseCase_Update_NotesOnly(t *testing.T) {
	uc, m := newOrderUseCase(t)
	notes := "  call before delivery "
	m.orders.EXPECT().GetByID(gomock.Any(), "o-1").Return(pendingOrder(), nil)
	m.orders.EXPECT().Update(gomock.Any(), "o-1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, u interfaces.OrderUpdate) (entities.Order, error) {
			if u.Status != nil || u.Notes == nil || *u.Notes != "call before delivery" {
				t.Fatalf("unexpected update %+v", u)
			}
			o := pendingOrder()
			o.Notes = *u.Notes
			return o, nil
		})

	if _, err := uc.Update(context.Background(), "o-1", OrderPatch{Notes: &notes}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOrderUseCase_Delete(t *testing.T) {
	uc, m := newOrderUseCase(t)
	m.orders.EXPECT().Delete(gomock.Any(), "o-1").Return(false, nil)

	if err := uc.Delete(context.Background(), "o-1"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderUseCase_List_InvalidStatus(t *testing.T) {
	uc, _ := newOrderUseCase(t)
	if _, err := uc.List(context.Background(), interfaces.OrderFilter{Status: "lost"}); !errors.Is(err, ErrInvalidOrderStatus) {
		t.Fatalf("expected ErrInvalidOrderStatus, got %v", err)
	}
}

package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"handcrafted_gifts/internal/adapter/http/handlers/mocks"
	"handcrafted_gifts/internal/domain/checkout"
	"handcrafted_gifts/internal/domain/entities"
	"handcrafted_gifts/internal/usecase"
	"handcrafted_gifts/pkg"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func sampleSession(step checkout.Step) usecase.CheckoutSession {
	d := checkout.NewDraft(entities.Product{ID: "p-1", Name: "Hanky", BasePrice: decimal.NewFromInt(120), InStock: true})
	d.Step = step
	return usecase.CheckoutSession{ID: "s-1", Draft: d, Totals: d.Totals(checkout.DefaultPricing())}
}

func TestCheckoutHandler_StartCheckout(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing product id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)
		h := NewCheckoutHandler(uc)

		r := gin.New()
		r.POST("/v1/checkout", h.StartCheckout)

		req := httptest.NewRequest(http.MethodPost, "/v1/checkout", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("out of stock", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)
		h := NewCheckoutHandler(uc)

		uc.EXPECT().Start(gomock.Any(), "p-1").Return(usecase.CheckoutSession{}, usecase.ErrProductOutOfStock)

		r := gin.New()
		r.POST("/v1/checkout", h.StartCheckout)

		req := httptest.NewRequest(http.MethodPost, "/v1/checkout", bytes.NewBufferString(`{"product_id":"p-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)
		h := NewCheckoutHandler(uc)

		uc.EXPECT().Start(gomock.Any(), "p-1").Return(sampleSession(checkout.StepAddress), nil)

		r := gin.New()
		r.POST("/v1/checkout", h.StartCheckout)

		req := httptest.NewRequest(http.MethodPost, "/v1/checkout", bytes.NewBufferString(`{"product_id":"p-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["step"] != "address" || body["session_id"] != "s-1" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestCheckoutHandler_Steps(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("next from payment is an invalid transition", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)
		h := NewCheckoutHandler(uc)

		uc.EXPECT().Next(gomock.Any(), "s-1").Return(sampleSession(checkout.StepPayment), checkout.ErrInvalidTransition)

		r := gin.New()
		r.POST("/v1/checkout/:session_id/next", h.NextStep)

		req := httptest.NewRequest(http.MethodPost, "/v1/checkout/s-1/next", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("back while busy", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)
		h := NewCheckoutHandler(uc)

		uc.EXPECT().Back(gomock.Any(), "s-1").Return(usecase.CheckoutSession{}, checkout.ErrBusy)

		r := gin.New()
		r.POST("/v1/checkout/:session_id/back", h.PreviousStep)

		req := httptest.NewRequest(http.MethodPost, "/v1/checkout/s-1/back", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		var body pkg.HTTPError
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if w.Code != http.StatusConflict || body.Error.Code != "CHECKOUT_BUSY" {
			t.Fatalf("expected 409 CHECKOUT_BUSY, got %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)
		h := NewCheckoutHandler(uc)

		uc.EXPECT().Get(gomock.Any(), "gone").Return(usecase.CheckoutSession{}, usecase.ErrCheckoutSessionNotFound)

		r := gin.New()
		r.GET("/v1/checkout/:session_id", h.GetCheckout)

		req := httptest.NewRequest(http.MethodGet, "/v1/checkout/gone", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestCheckoutHandler_UpdateCheckout(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockICheckoutUseCase(ctrl)
	h := NewCheckoutHandler(uc)

	uc.EXPECT().
		Update(gomock.Any(), "s-1", gomock.Any()).
		DoAndReturn(func(_ any, _ string, p usecase.CheckoutPatch) (usecase.CheckoutSession, error) {
			if p.QuantityDelta != 1 || p.GiftWrap == nil || !*p.GiftWrap {
				t.Fatalf("unexpected patch: %+v", p)
			}
			s := sampleSession(checkout.StepAddress)
			s.Draft.Quantity = 2
			s.Draft.GiftWrap = true
			s.Totals = s.Draft.Totals(checkout.DefaultPricing())
			return s, nil
		})

	r := gin.New()
	r.PATCH("/v1/checkout/:session_id", h.UpdateCheckout)

	req := httptest.NewRequest(http.MethodPatch, "/v1/checkout/s-1", bytes.NewBufferString(`{"quantity_delta":1,"gift_wrap":true}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Totals struct {
			Total float64 `json:"total"`
		} `json:"totals"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	// 240 + 50 gift wrap + 50 delivery
	if body.Totals.Total != 340 {
		t.Fatalf("expected total 340, got %v", body.Totals.Total)
	}
}

func TestCheckoutHandler_UpdateCheckout_RejectsLargeQuantityDelta(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockICheckoutUseCase(ctrl)
	h := NewCheckoutHandler(uc)

	r := gin.New()
	r.PATCH("/v1/checkout/:session_id", h.UpdateCheckout)

	req := httptest.NewRequest(http.MethodPatch, "/v1/checkout/s-1", bytes.NewBufferString(`{"quantity_delta":4611686018427387904}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCheckoutHandler_InitiatePayment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("validation error keeps message", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)
		h := NewCheckoutHandler(uc)

		uc.EXPECT().Pay(gomock.Any(), "s-1").Return(
			sampleSession(checkout.StepPayment),
			checkout.GatewaySession{},
			&checkout.ValidationError{Message: checkout.RequiredFieldsMessage, Fields: []string{"phone"}},
		)

		r := gin.New()
		r.POST("/v1/checkout/:session_id/pay", h.InitiatePayment)

		req := httptest.NewRequest(http.MethodPost, "/v1/checkout/s-1/pay", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		var body pkg.HTTPError
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body.Error.Message != checkout.RequiredFieldsMessage {
			t.Fatalf("unexpected message %q", body.Error.Message)
		}
	})

	t.Run("network error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)
		h := NewCheckoutHandler(uc)

		uc.EXPECT().Pay(gomock.Any(), "s-1").Return(
			sampleSession(checkout.StepPayment),
			checkout.GatewaySession{},
			&checkout.NetworkError{Op: "create order", Err: errors.New("connection refused")},
		)

		r := gin.New()
		r.POST("/v1/checkout/:session_id/pay", h.InitiatePayment)

		req := httptest.NewRequest(http.MethodPost, "/v1/checkout/s-1/pay", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)
		h := NewCheckoutHandler(uc)

		s := sampleSession(checkout.StepPayment)
		s.Draft.Busy = true
		uc.EXPECT().Pay(gomock.Any(), "s-1").Return(s, checkout.GatewaySession{
			Handle:           "pref-1",
			RedirectURL:      "https://mp.example.com/pref-1",
			AmountMinorUnits: 17000,
			Currency:         "INR",
		}, nil)

		r := gin.New()
		r.POST("/v1/checkout/:session_id/pay", h.InitiatePayment)

		req := httptest.NewRequest(http.MethodPost, "/v1/checkout/s-1/pay", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["redirect_url"] != "https://mp.example.com/pref-1" || body["amount_minor_units"] != float64(17000) {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestCheckoutHandler_ConfirmPayment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("verification failure carries order number", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)
		h := NewCheckoutHandler(uc)

		uc.EXPECT().
			Confirm(gomock.Any(), "s-1", checkout.GatewayResult{SessionID: "pref-1", PaymentID: "99", Signature: "bad"}).
			Return(sampleSession(checkout.StepPayment), &checkout.VerificationError{OrderNumber: "HG2610160004", Err: usecase.ErrPaymentVerificationFailed})

		r := gin.New()
		r.POST("/v1/checkout/:session_id/confirm", h.ConfirmPayment)

		req := httptest.NewRequest(http.MethodPost, "/v1/checkout/s-1/confirm", bytes.NewBufferString(`{"session_id":"pref-1","payment_id":"99","signature":"bad"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusPaymentRequired {
			t.Fatalf("expected 402, got %d", w.Code)
		}
		var body pkg.HTTPError
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body.Error.Details["order_number"] != "HG2610160004" {
			t.Fatalf("expected order number detail, got %s", w.Body.String())
		}
	})

	t.Run("placed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)
		h := NewCheckoutHandler(uc)

		s := sampleSession(checkout.StepPlaced)
		s.Draft.OrderNumber = "HG2610160004"
		uc.EXPECT().Confirm(gomock.Any(), "s-1", gomock.Any()).Return(s, nil)

		r := gin.New()
		r.POST("/v1/checkout/:session_id/confirm", h.ConfirmPayment)

		req := httptest.NewRequest(http.MethodPost, "/v1/checkout/s-1/confirm", bytes.NewBufferString(`{"payment_id":"99"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["step"] != "placed" || body["order_number"] != "HG2610160004" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestCheckoutHandler_DirectMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("number not configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)
		h := NewCheckoutHandler(uc)

		uc.EXPECT().DirectMessage(gomock.Any(), "s-1").Return("", checkout.ErrMissingBusinessNumber)

		r := gin.New()
		r.POST("/v1/checkout/:session_id/direct-message", h.DirectMessage)

		req := httptest.NewRequest(http.MethodPost, "/v1/checkout/s-1/direct-message", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)
		h := NewCheckoutHandler(uc)

		uc.EXPECT().DirectMessage(gomock.Any(), "s-1").Return("https://wa.me/919876543210?text=hi", nil)

		r := gin.New()
		r.POST("/v1/checkout/:session_id/direct-message", h.DirectMessage)

		req := httptest.NewRequest(http.MethodPost, "/v1/checkout/s-1/direct-message", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

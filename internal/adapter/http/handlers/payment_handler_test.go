package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"handcrafted_gifts/internal/infrastructure/payments"

	"github.com/gin-gonic/gin"
)

func TestMockPaymentHandler_SignPayment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewMockPaymentHandler("test-secret")
	r := gin.New()
	r.POST("/v1/payments/mock/sign", h.SignPayment)

	t.Run("signs session and payment", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/payments/mock/sign", bytes.NewBufferString(`{"session_id":"mock-1","payment_id":"pay-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]string
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["signature"] != payments.SignMockPayment([]byte("test-secret"), "mock-1", "pay-1") {
			t.Fatalf("unexpected signature: %s", w.Body.String())
		}
	})

	t.Run("missing payment id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/payments/mock/sign", bytes.NewBufferString(`{"session_id":"mock-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

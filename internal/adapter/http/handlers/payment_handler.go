package handlers

import (
	"net/http"

	request "handcrafted_gifts/internal/adapter/http/dto/request"
	response "handcrafted_gifts/internal/adapter/http/dto/response"
	"handcrafted_gifts/internal/infrastructure/payments"

	"github.com/gin-gonic/gin"
)

// MockPaymentHandler signs simulated payments so the mock payment page can
// complete a checkout without a real provider. It is only routed in mock mode.
type MockPaymentHandler struct {
	secret []byte
}

func NewMockPaymentHandler(secret string) *MockPaymentHandler {
	return &MockPaymentHandler{secret: []byte(secret)}
}

// SignPayment godoc
// @Summary      Sign a simulated payment (mock mode only)
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        payload  body  request.MockSignRequest  true  "session and payment ids"
// @Success      200  {object}  response.MockSignatureResponse
// @Router       /payments/mock/sign [post]
func (h *MockPaymentHandler) SignPayment(c *gin.Context) {
	var payload request.MockSignRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}
	sig := payments.SignMockPayment(h.secret, payload.SessionID, payload.PaymentID)
	c.JSON(http.StatusOK, response.MockSignatureResponse{Signature: sig})
}

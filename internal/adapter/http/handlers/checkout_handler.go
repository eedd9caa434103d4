package handlers

import (
	"context"
	"errors"
	"net/http"

	request "handcrafted_gifts/internal/adapter/http/dto/request"
	response "handcrafted_gifts/internal/adapter/http/dto/response"
	"handcrafted_gifts/internal/domain/checkout"
	"handcrafted_gifts/internal/usecase"
	"handcrafted_gifts/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidCheckoutPayload = pkg.NewDomainErrorSimple("INVALID_CHECKOUT_INPUT", "Invalid checkout payload", http.StatusBadRequest)

// CheckoutHandler drives the customization wizard for one product. Each
// session lives server side between requests.
type CheckoutHandler struct {
	usecase usecase.ICheckoutUseCase
}

func NewCheckoutHandler(uc usecase.ICheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{usecase: uc}
}

// StartCheckout godoc
// @Summary      Start a checkout for a product
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        payload  body  request.StartCheckoutRequest  true  "product"
// @Success      201  {object}  response.CheckoutSessionResponse
// @Router       /checkout [post]
func (h *CheckoutHandler) StartCheckout(c *gin.Context) {
	var payload request.StartCheckoutRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidCheckoutPayload.HTTPStatus, errInvalidCheckoutPayload.ToHTTPError())
		return
	}

	s, err := h.usecase.Start(c.Request.Context(), payload.ProductID)
	if err != nil {
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromCheckoutSession(s))
}

func (h *CheckoutHandler) GetCheckout(c *gin.Context) {
	s, err := h.usecase.Get(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromCheckoutSession(s))
}

// UpdateCheckout godoc
// @Summary      Edit wizard fields
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        session_id  path  string                        true  "checkout session"
// @Param        payload     body  request.PatchCheckoutRequest  true  "fields to change"
// @Success      200  {object}  response.CheckoutSessionResponse
// @Failure      409  {object}  pkg.HTTPError
// @Router       /checkout/{session_id} [patch]
func (h *CheckoutHandler) UpdateCheckout(c *gin.Context) {
	var payload request.PatchCheckoutRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidCheckoutPayload.HTTPStatus, errInvalidCheckoutPayload.ToHTTPError())
		return
	}

	s, err := h.usecase.Update(c.Request.Context(), c.Param("session_id"), payload.ToPatch())
	if err != nil {
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromCheckoutSession(s))
}

func (h *CheckoutHandler) NextStep(c *gin.Context) {
	h.step(c, h.usecase.Next)
}

func (h *CheckoutHandler) PreviousStep(c *gin.Context) {
	h.step(c, h.usecase.Back)
}

// DismissPayment is called when the buyer closes the provider window.
func (h *CheckoutHandler) DismissPayment(c *gin.Context) {
	h.step(c, h.usecase.Dismiss)
}

func (h *CheckoutHandler) step(c *gin.Context, fn func(ctx context.Context, id string) (usecase.CheckoutSession, error)) {
	s, err := fn(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromCheckoutSession(s))
}

// InitiatePayment godoc
// @Summary      Submit the order and open a payment session
// @Description  Every call creates a new order. The session stays busy until confirm or dismiss.
// @Tags         checkout
// @Produce      json
// @Param        session_id  path  string  true  "checkout session"
// @Success      200  {object}  response.PaymentSessionResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      502  {object}  pkg.HTTPError
// @Router       /checkout/{session_id}/pay [post]
func (h *CheckoutHandler) InitiatePayment(c *gin.Context) {
	s, gs, err := h.usecase.Pay(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromPaymentSession(s, gs))
}

// ConfirmPayment godoc
// @Summary      Confirm the provider payment
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        session_id  path  string                          true  "checkout session"
// @Param        payload     body  request.ConfirmCheckoutRequest  true  "provider result"
// @Success      200  {object}  response.CheckoutSessionResponse
// @Failure      402  {object}  pkg.HTTPError
// @Router       /checkout/{session_id}/confirm [post]
func (h *CheckoutHandler) ConfirmPayment(c *gin.Context) {
	var payload request.ConfirmCheckoutRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidCheckoutPayload.HTTPStatus, errInvalidCheckoutPayload.ToHTTPError())
		return
	}

	s, err := h.usecase.Confirm(c.Request.Context(), c.Param("session_id"), payload.ToResult())
	if err != nil {
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromCheckoutSession(s))
}

// DirectMessage returns a WhatsApp link prefilled with the order summary.
func (h *CheckoutHandler) DirectMessage(c *gin.Context) {
	url, err := h.usecase.DirectMessage(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.DirectMessageResponse{URL: url})
}

func mapCheckoutError(err error) *pkg.AppError {
	var verr *checkout.VerificationError
	if errors.As(err, &verr) {
		return pkg.NewDomainError("PAYMENT_VERIFICATION_FAILED", verr.Error(), err, http.StatusPaymentRequired).
			WithDetail("order_number", verr.OrderNumber)
	}
	if appErr, ok := mapCommonError(err); ok {
		return appErr
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidCheckoutSession), errors.Is(err, usecase.ErrInvalidProductID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrCheckoutSessionNotFound):
		return pkg.NewDomainErrorSimple("CHECKOUT_NOT_FOUND", "Checkout session not found or expired", http.StatusNotFound)
	case errors.Is(err, usecase.ErrProductNotFound):
		return pkg.NewDomainErrorSimple("PRODUCT_NOT_FOUND", "Product not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrProductOutOfStock):
		return pkg.NewDomainError("PRODUCT_OUT_OF_STOCK", err.Error(), err, http.StatusConflict)
	case errors.Is(err, checkout.ErrBusy):
		return pkg.NewDomainErrorSimple("CHECKOUT_BUSY", "A payment is in progress for this checkout", http.StatusConflict)
	case errors.Is(err, checkout.ErrInvalidTransition):
		return pkg.NewDomainErrorSimple("INVALID_STEP_TRANSITION", "That step is not available right now", http.StatusConflict)
	case errors.Is(err, checkout.ErrAlreadyPlaced):
		return pkg.NewDomainErrorSimple("ORDER_ALREADY_PLACED", "This order was already placed", http.StatusConflict)
	case errors.Is(err, checkout.ErrNoPendingPayment):
		return pkg.NewDomainErrorSimple("NO_PENDING_PAYMENT", "There is no payment to confirm", http.StatusConflict)
	case errors.Is(err, checkout.ErrMissingBusinessNumber):
		return pkg.NewDomainError("SERVICE_UNAVAILABLE", "WhatsApp ordering is unavailable", err, http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

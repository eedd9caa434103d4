package handlers

import (
	"errors"
	"net/http"
	"strings"

	request "handcrafted_gifts/internal/adapter/http/dto/request"
	response "handcrafted_gifts/internal/adapter/http/dto/response"
	"handcrafted_gifts/internal/domain/entities"
	"handcrafted_gifts/internal/usecase"
	"handcrafted_gifts/internal/usecase/interfaces"
	"handcrafted_gifts/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidOrderPayload = pkg.NewDomainErrorSimple("INVALID_ORDER_INPUT", "Invalid order payload", http.StatusBadRequest)
	errPaymentNotVerified  = pkg.NewDomainErrorSimple(
		"PAYMENT_VERIFICATION_FAILED",
		"Payment verification failed. Please contact support with your order number",
		http.StatusPaymentRequired,
	)
)

// OrderHandler handles order placement, payment verification, tracking and
// the admin order endpoints.
type OrderHandler struct {
	usecase usecase.IOrderUseCase
}

func NewOrderHandler(uc usecase.IOrderUseCase) *OrderHandler {
	return &OrderHandler{usecase: uc}
}

// CreateOrder godoc
// @Summary      Place an online order
// @Description  Prices the items server side and opens a payment session.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        payload  body  request.CreateOrderRequest  true  "order"
// @Success      201  {object}  response.CreateOrderResponse
// @Failure      400  {object}  pkg.HTTPError
// @Router       /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var payload request.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	o, err := h.usecase.Create(c.Request.Context(), payload.ToInput())
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromCreatedOrder(o))
}

// CreateDirectOrder records an order the shop agreed with the buyer over WhatsApp.
func (h *OrderHandler) CreateDirectOrder(c *gin.Context) {
	var payload request.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	o, err := h.usecase.CreateDirect(c.Request.Context(), payload.ToInput())
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromOrder(o))
}

// VerifyPayment godoc
// @Summary      Verify an order payment
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id       path  string                        true  "order id"
// @Param        payload  body  request.VerifyPaymentRequest  true  "provider result"
// @Success      200  {object}  response.TrackOrderResponse
// @Failure      402  {object}  pkg.HTTPError
// @Router       /orders/{id}/verify [post]
func (h *OrderHandler) VerifyPayment(c *gin.Context) {
	var payload request.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	o, err := h.usecase.VerifyPayment(c.Request.Context(), c.Param("id"), payload.ToConfirmation())
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromOrderTracking(o))
}

// TrackOrder godoc
// @Summary      Track an order by number
// @Tags         orders
// @Produce      json
// @Param        order_number  path  string  true  "e.g. HG2610160001"
// @Success      200  {object}  response.TrackOrderResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /orders/track/{order_number} [get]
func (h *OrderHandler) TrackOrder(c *gin.Context) {
	o, err := h.usecase.Track(c.Request.Context(), c.Param("order_number"))
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromOrderTracking(o))
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	filter := interfaces.OrderFilter{Status: entities.OrderStatus(strings.TrimSpace(c.Query("status")))}
	orders, err := h.usecase.List(c.Request.Context(), filter)
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromOrders(orders))
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	o, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(o))
}

// UpdateOrderStatus godoc
// @Summary      Change an order status
// @Description  Notifies the customer when the status changes.
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id       path  string                            true  "order id"
// @Param        payload  body  request.UpdateOrderStatusRequest  true  "new status"
// @Success      200  {object}  response.OrderResponse
// @Failure      409  {object}  pkg.HTTPError
// @Router       /admin/orders/{id}/status [put]
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var payload request.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	status := entities.OrderStatus(strings.TrimSpace(payload.Status))
	o, err := h.usecase.UpdateStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(o))
}

func (h *OrderHandler) PatchOrder(c *gin.Context) {
	var payload request.PatchOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}
	patch, err := payload.ToPatch()
	if err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	o, err := h.usecase.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(o))
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.Status(http.StatusNoContent)
}

func mapOrderError(err error) *pkg.AppError {
	if appErr, ok := mapCommonError(err); ok {
		return appErr
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidOrderID), errors.Is(err, usecase.ErrInvalidOrderStatus):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidOrder), errors.Is(err, usecase.ErrProductOutOfStock):
		return pkg.NewDomainError("INVALID_ORDER_INPUT", err.Error(), err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrProductNotFound):
		return pkg.NewDomainError("PRODUCT_NOT_FOUND", err.Error(), err, http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidStatusTransition):
		return pkg.NewDomainError("INVALID_STATUS_TRANSITION", err.Error(), err, http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentVerificationFailed):
		return errPaymentNotVerified
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured), errors.Is(err, usecase.ErrOrderNumberGeneratorNotReady):
		return pkg.NewDomainError("SERVICE_UNAVAILABLE", "Online payments are unavailable", err, http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

package handlers

import (
	"errors"
	"net/http"

	request "handcrafted_gifts/internal/adapter/http/dto/request"
	"handcrafted_gifts/internal/usecase"
	"handcrafted_gifts/pkg"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	usecase usecase.IContactUseCase
}

func NewContactHandler(uc usecase.IContactUseCase) *ContactHandler {
	return &ContactHandler{usecase: uc}
}

// SubmitContact godoc
// @Summary      Send a message to the shop
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        payload  body  request.ContactRequest  true  "message"
// @Success      202  {object}  map[string]string
// @Failure      400  {object}  pkg.HTTPError
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var payload request.ContactRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	if err := h.usecase.Submit(c.Request.Context(), payload.ToEntity()); err != nil {
		appErr := mapContactError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "Thank you for contacting us! We will get back to you soon."})
}

func mapContactError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidContact):
		return pkg.NewDomainError("VALIDATION_ERROR", err.Error(), err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrNotifierNotConfigured):
		return pkg.NewDomainError("SERVICE_UNAVAILABLE", "Messaging is unavailable right now", err, http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "Failed to send message", err, http.StatusInternalServerError)
	}
}

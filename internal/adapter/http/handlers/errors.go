package handlers

import (
	"errors"
	"net/http"

	"handcrafted_gifts/internal/domain/checkout"
	"handcrafted_gifts/pkg"
)

var errInvalidPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)

// mapCommonError handles errors shared by every flow: user-correctable
// validation and failed round trips to collaborators.
func mapCommonError(err error) (*pkg.AppError, bool) {
	var ve *checkout.ValidationError
	if errors.As(err, &ve) {
		appErr := pkg.NewDomainError("VALIDATION_ERROR", ve.Message, err, http.StatusBadRequest)
		if len(ve.Fields) > 0 {
			appErr = appErr.WithDetail("fields", ve.Fields)
		}
		if len(ve.Invalid) > 0 {
			appErr = appErr.WithDetail("invalid_fields", ve.Invalid)
		}
		return appErr, true
	}
	var ne *checkout.NetworkError
	if errors.As(err, &ne) {
		appErr := pkg.NewDomainError("UPSTREAM_ERROR", "Something went wrong. Please try again.", err, http.StatusBadGateway)
		if ne.OrderNumber != "" {
			appErr = appErr.WithDetail("order_number", ne.OrderNumber)
		}
		return appErr, true
	}
	return nil, false
}

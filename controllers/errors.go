package controllers

import (
	"errors"
	"net/http"

	"horizon-hotel-backend/services"
	"horizon-hotel-backend/utils"

	"github.com/gin-gonic/gin"
)

// statusFor maps service sentinel errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrInvalidRange):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, services.ErrCardExpired):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrInvalidState),
		errors.Is(err, services.ErrInvariantViolation),
		errors.Is(err, services.ErrNoAvailability),
		errors.Is(err, services.ErrNoPayment),
		errors.Is(err, services.ErrNoDefaultCard):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	code := statusFor(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "internal server error"
	}
	utils.JSONError(c, code, message)
}

package controllers

import (
	"net/http"

	"horizon-hotel-backend/services"
	"horizon-hotel-backend/utils"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	Payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{Payments: payments}
}

type chargeInput struct {
	CardNumber string `json:"cardNumber"`
	Cash       bool   `json:"cash"`
}

// ChargeBooking settles a pending booking by hotel card or cash. Exactly one
// payment may ever succeed per booking.
func (ctl *PaymentController) ChargeBooking(c *gin.Context) {
	bookingID, err := uintParam(c, "id")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	var input chargeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	var payment interface{}
	if input.Cash {
		payment, err = ctl.Payments.ChargeBookingCash(bookingID)
	} else {
		if input.CardNumber == "" {
			utils.JSONError(c, http.StatusBadRequest, "cardNumber is required for card payments")
			return
		}
		payment, err = ctl.Payments.ChargeBooking(bookingID, input.CardNumber)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, payment)
}

func (ctl *PaymentController) ChargeFoodOrder(c *gin.Context) {
	orderID, err := uintParam(c, "id")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	var input chargeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if input.CardNumber == "" {
		utils.JSONError(c, http.StatusBadRequest, "cardNumber is required")
		return
	}
	payment, err := ctl.Payments.ChargeFoodOrder(orderID, input.CardNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, payment)
}

func (ctl *PaymentController) GetBookingPayment(c *gin.Context) {
	bookingID, err := uintParam(c, "id")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	payment, err := ctl.Payments.GetByBookingID(bookingID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payment)
}

package controllers

import (
	"net/http"

	"horizon-hotel-backend/models"
	"horizon-hotel-backend/services"
	"horizon-hotel-backend/utils"

	"github.com/gin-gonic/gin"
)

type RefundController struct {
	Refunds *services.RefundService
}

func NewRefundController(refunds *services.RefundService) *RefundController {
	return &RefundController{Refunds: refunds}
}

// GetRefunds lists refunds, optionally filtered by ?status=.
func (ctl *RefundController) GetRefunds(c *gin.Context) {
	if raw := c.Query("status"); raw != "" {
		status, ok := models.ParseRefundStatus(raw)
		if !ok {
			utils.JSONError(c, http.StatusBadRequest, "unknown refund status")
			return
		}
		refunds, err := ctl.Refunds.GetByStatus(status)
		if err != nil {
			respondError(c, err)
			return
		}
		utils.JSONSuccess(c, http.StatusOK, refunds)
		return
	}
	refunds, err := ctl.Refunds.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, refunds)
}

func (ctl *RefundController) GetRefund(c *gin.Context) {
	refundID, err := uintParam(c, "id")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	refund, err := ctl.Refunds.GetByID(refundID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, refund)
}

func (ctl *RefundController) GetBookingRefund(c *gin.Context) {
	bookingID, err := uintParam(c, "bookingId")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	refund, err := ctl.Refunds.GetByBookingID(bookingID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, refund)
}

// Approve credits the guest's default card and marks the refund settled. A
// crediting failure leaves a FAILED refund behind for inspection.
func (ctl *RefundController) Approve(c *gin.Context) {
	refundID, err := uintParam(c, "id")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	refund, err := ctl.Refunds.Approve(refundID)
	if err != nil {
		if refund != nil && refund.Status == models.RefundFailed {
			utils.JSONError(c, statusFor(err), "refund processing failed: "+refund.Reason)
			return
		}
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, refund)
}

type refundReasonInput struct {
	Reason string `json:"reason" binding:"required"`
}

func (ctl *RefundController) Reject(c *gin.Context) {
	refundID, err := uintParam(c, "id")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	var input refundReasonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	refund, err := ctl.Refunds.Reject(refundID, input.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, refund)
}

func (ctl *RefundController) CancelOverride(c *gin.Context) {
	refundID, err := uintParam(c, "id")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	var input refundReasonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	refund, err := ctl.Refunds.CancelOverride(refundID, input.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, refund)
}

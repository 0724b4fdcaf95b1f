package controllers

import (
	"net/http"

	"horizon-hotel-backend/services"
	"horizon-hotel-backend/utils"

	"github.com/gin-gonic/gin"
)

type FinanceController struct {
	Finance *services.FinanceService
}

func NewFinanceController(finance *services.FinanceService) *FinanceController {
	return &FinanceController{Finance: finance}
}

func (ctl *FinanceController) GetSummary(c *gin.Context) {
	summary, err := ctl.Finance.Summary()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, summary)
}

func (ctl *FinanceController) GetTransactions(c *gin.Context) {
	transactions, err := ctl.Finance.Transactions()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, transactions)
}

func (ctl *FinanceController) GetCancelledBookings(c *gin.Context) {
	bookings, err := ctl.Finance.CancelledBookings()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

package controllers

import (
	"net/http"

	"horizon-hotel-backend/services"
	"horizon-hotel-backend/utils"

	"github.com/gin-gonic/gin"
)

type GuestController struct {
	Guests *services.GuestService
}

func NewGuestController(guests *services.GuestService) *GuestController {
	return &GuestController{Guests: guests}
}

// Register creates a guest account and seeds their default hotel card.
func (ctl *GuestController) Register(c *gin.Context) {
	var input services.RegisterGuestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	guest, err := ctl.Guests.Register(input)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, guest)
}

func (ctl *GuestController) GetGuest(c *gin.Context) {
	guestID, err := uintParam(c, "guestId")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	guest, err := ctl.Guests.GetByID(guestID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

func (ctl *GuestController) GetGuests(c *gin.Context) {
	guests, err := ctl.Guests.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guests)
}

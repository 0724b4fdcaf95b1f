package controllers

import (
	"net/http"
	"time"

	"horizon-hotel-backend/models"
	"horizon-hotel-backend/services"
	"horizon-hotel-backend/utils"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	Bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{Bookings: bookings}
}

type createBookingInput struct {
	GuestID         uint   `json:"guestId" binding:"required"`
	RoomType        string `json:"roomType" binding:"required"`
	CheckInDate     string `json:"checkInDate" binding:"required"`
	CheckOutDate    string `json:"checkOutDate" binding:"required"`
	SpecialRequests string `json:"specialRequests"`
}

// CreateBooking books a room type for a date range. A concrete room is
// assigned later by staff.
func (ctl *BookingController) CreateBooking(c *gin.Context) {
	var input createBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	checkIn, checkOut, err := parseDateRange(input.CheckInDate, input.CheckOutDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	booking, err := ctl.Bookings.CreateRoomTypeBooking(input.GuestID, input.RoomType, checkIn, checkOut, input.SpecialRequests)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, booking)
}

func (ctl *BookingController) GetBooking(c *gin.Context) {
	bookingID, err := uintParam(c, "id")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	booking, err := ctl.Bookings.GetByID(bookingID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// GetBookings lists bookings, optionally filtered by ?status= or searched by
// ?q= (reference code or guest name).
func (ctl *BookingController) GetBookings(c *gin.Context) {
	if term := c.Query("q"); term != "" {
		bookings, err := ctl.Bookings.Search(term)
		if err != nil {
			respondError(c, err)
			return
		}
		utils.JSONSuccess(c, http.StatusOK, bookings)
		return
	}
	if raw := c.Query("status"); raw != "" {
		status, ok := models.ParseBookingStatus(raw)
		if !ok {
			utils.JSONError(c, http.StatusBadRequest, "unknown booking status")
			return
		}
		bookings, err := ctl.Bookings.GetByStatus(status)
		if err != nil {
			respondError(c, err)
			return
		}
		utils.JSONSuccess(c, http.StatusOK, bookings)
		return
	}
	bookings, err := ctl.Bookings.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

func (ctl *BookingController) GetGuestBookings(c *gin.Context) {
	guestID, err := uintParam(c, "guestId")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	bookings, err := ctl.Bookings.GetByGuest(guestID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

type assignRoomInput struct {
	RoomID uint `json:"roomId" binding:"required"`
}

// AssignRoom binds a concrete room to a booking after re-checking that the
// room is still free for the booked dates.
func (ctl *BookingController) AssignRoom(c *gin.Context) {
	bookingID, err := uintParam(c, "id")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	var input assignRoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	booking, err := ctl.Bookings.AssignRoom(bookingID, input.RoomID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

type statusInput struct {
	Status string `json:"status" binding:"required"`
}

func (ctl *BookingController) UpdateStatus(c *gin.Context) {
	bookingID, err := uintParam(c, "id")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	var input statusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	booking, err := ctl.Bookings.TransitionStatus(bookingID, input.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

type updateDatesInput struct {
	CheckInDate  string `json:"checkInDate" binding:"required"`
	CheckOutDate string `json:"checkOutDate" binding:"required"`
}

func (ctl *BookingController) UpdateDates(c *gin.Context) {
	bookingID, err := uintParam(c, "id")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	var input updateDatesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	checkIn, checkOut, err := parseDateRange(input.CheckInDate, input.CheckOutDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	booking, err := ctl.Bookings.UpdateDates(bookingID, checkIn, checkOut)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// CancelBooking cancels a booking; a confirmed booking also gets a pending
// refund opened for it.
func (ctl *BookingController) CancelBooking(c *gin.Context) {
	bookingID, err := uintParam(c, "id")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := ctl.Bookings.CancelBooking(bookingID); err != nil {
		respondError(c, err)
		return
	}
	booking, err := ctl.Bookings.GetByID(bookingID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (ctl *BookingController) GetStatistics(c *gin.Context) {
	stats, err := ctl.Bookings.Statistics()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stats)
}

func parseDateRange(rawIn, rawOut string) (time.Time, time.Time, error) {
	checkIn, err := utils.ParseDate(rawIn)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	checkOut, err := utils.ParseDate(rawOut)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return checkIn, checkOut, nil
}

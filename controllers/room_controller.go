package controllers

import (
	"net/http"

	"horizon-hotel-backend/models"
	"horizon-hotel-backend/services"
	"horizon-hotel-backend/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	Rooms *services.RoomService
}

func NewRoomController(rooms *services.RoomService) *RoomController {
	return &RoomController{Rooms: rooms}
}

type roomInput struct {
	RoomNumber  string  `json:"roomNumber" binding:"required"`
	Type        string  `json:"type" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Description string  `json:"description"`
}

func (ctl *RoomController) CreateRoom(c *gin.Context) {
	var input roomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	roomType, ok := models.ParseRoomType(input.Type)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "unknown room type")
		return
	}
	room := models.Room{
		RoomNumber:  input.RoomNumber,
		Type:        roomType,
		Price:       utils.Round2(input.Price),
		IsAvailable: true,
		Description: input.Description,
	}
	if err := ctl.Rooms.Create(&room); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

func (ctl *RoomController) GetRooms(c *gin.Context) {
	rooms, err := ctl.Rooms.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (ctl *RoomController) GetRoom(c *gin.Context) {
	roomID, err := uintParam(c, "id")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	room, err := ctl.Rooms.GetByID(roomID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// GetAvailability lists rooms free for every night of [check_in, check_out).
// Query: check_in, check_out (YYYY-MM-DD), optional type.
func (ctl *RoomController) GetAvailability(c *gin.Context) {
	checkIn, err := utils.ParseDate(c.Query("check_in"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "check_in must be YYYY-MM-DD")
		return
	}
	checkOut, err := utils.ParseDate(c.Query("check_out"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "check_out must be YYYY-MM-DD")
		return
	}
	rooms, err := ctl.Rooms.FindAvailable(checkIn, checkOut, c.Query("type"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (ctl *RoomController) UpdateRoom(c *gin.Context) {
	roomID, err := uintParam(c, "id")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	room, err := ctl.Rooms.GetByID(roomID)
	if err != nil {
		respondError(c, err)
		return
	}
	var input roomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	roomType, ok := models.ParseRoomType(input.Type)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "unknown room type")
		return
	}
	room.RoomNumber = input.RoomNumber
	room.Type = roomType
	room.Price = utils.Round2(input.Price)
	room.Description = input.Description
	if err := ctl.Rooms.Update(room); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ctl *RoomController) DeleteRoom(c *gin.Context) {
	roomID, err := uintParam(c, "id")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := ctl.Rooms.Delete(roomID); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": roomID})
}

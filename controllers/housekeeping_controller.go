package controllers

import (
	"net/http"

	"horizon-hotel-backend/models"
	"horizon-hotel-backend/services"
	"horizon-hotel-backend/utils"

	"github.com/gin-gonic/gin"
)

type HousekeepingController struct {
	Housekeeping *services.HousekeepingService
}

func NewHousekeepingController(housekeeping *services.HousekeepingService) *HousekeepingController {
	return &HousekeepingController{Housekeeping: housekeeping}
}

type createTaskInput struct {
	RoomID       uint   `json:"roomId" binding:"required"`
	AssignedTo   string `json:"assignedTo"`
	Notes        string `json:"notes"`
	ScheduledFor string `json:"scheduledFor" binding:"required"`
	Priority     string `json:"priority" binding:"required"`
}

func (ctl *HousekeepingController) CreateTask(c *gin.Context) {
	var input createTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	scheduledFor, err := utils.ParseDate(input.ScheduledFor)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "scheduledFor must be YYYY-MM-DD")
		return
	}
	task, err := ctl.Housekeeping.CreateTask(input.RoomID, input.AssignedTo, input.Notes, scheduledFor, input.Priority)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, task)
}

func (ctl *HousekeepingController) UpdateTaskStatus(c *gin.Context) {
	taskID, err := uintParam(c, "id")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	var input statusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	task, err := ctl.Housekeeping.UpdateTaskStatus(taskID, models.CleaningTaskStatus(input.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, task)
}

func (ctl *HousekeepingController) DeleteTask(c *gin.Context) {
	taskID, err := uintParam(c, "id")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := ctl.Housekeeping.DeleteTask(taskID); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": taskID})
}

func (ctl *HousekeepingController) GetTasks(c *gin.Context) {
	tasks, err := ctl.Housekeeping.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, tasks)
}

func (ctl *HousekeepingController) GetSummary(c *gin.Context) {
	summary, err := ctl.Housekeeping.Summary()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, summary)
}

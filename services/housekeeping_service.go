package services

import (
	"errors"
	"fmt"
	"time"

	"horizon-hotel-backend/models"
	"horizon-hotel-backend/utils"

	"gorm.io/gorm"
)

// HousekeepingService manages cleaning tasks. Opening a task takes the room
// out of availability; completing (or abandoning) it puts the room back.
type HousekeepingService struct {
	DB *gorm.DB
}

func NewHousekeepingService(db *gorm.DB) *HousekeepingService {
	return &HousekeepingService{DB: db}
}

// CreateTask opens a cleaning task and clears the room's availability flag.
// Priority is matched exhaustively over the closed set.
func (s *HousekeepingService) CreateTask(roomID uint, assignedTo, notes string, scheduledFor time.Time, priority string) (*models.CleaningTask, error) {
	parsedPriority, ok := models.ParseCleaningPriority(priority)
	if !ok {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, priority)
	}

	var task models.CleaningTask
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: room %d", ErrNotFound, roomID)
			}
			return err
		}
		if err := tx.Model(&room).Update("is_available", false).Error; err != nil {
			return err
		}

		task = models.CleaningTask{
			RoomID:       roomID,
			AssignedTo:   assignedTo,
			Notes:        notes,
			Priority:     parsedPriority,
			ScheduledFor: utils.DateOnly(scheduledFor),
		}
		switch parsedPriority {
		case models.CleaningPriorityUrgent:
			task.Notes = "[URGENT - ATTEND IMMEDIATELY] " + notes
			task.Status = models.CleaningTaskInProgress
		case models.CleaningPriorityNormal:
			task.Status = models.CleaningTaskPending
		}
		return tx.Create(&task).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTaskStatus moves a task forward; completion restores the room's
// availability flag.
func (s *HousekeepingService) UpdateTaskStatus(taskID uint, status models.CleaningTaskStatus) (*models.CleaningTask, error) {
	switch status {
	case models.CleaningTaskPending, models.CleaningTaskInProgress, models.CleaningTaskCompleted:
	default:
		return nil, fmt.Errorf("%w: unknown task status %q", ErrValidation, status)
	}

	var task models.CleaningTask
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&task, taskID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: cleaning task %d", ErrNotFound, taskID)
			}
			return err
		}

		task.Status = status
		if status == models.CleaningTaskCompleted {
			now := time.Now().UTC()
			task.CompletedAt = &now
			if err := tx.Model(&models.Room{}).Where("id = ?", task.RoomID).Update("is_available", true).Error; err != nil {
				return err
			}
		}
		return tx.Save(&task).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task; an unfinished task releases its room.
func (s *HousekeepingService) DeleteTask(taskID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var task models.CleaningTask
		if err := tx.First(&task, taskID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: cleaning task %d", ErrNotFound, taskID)
			}
			return err
		}
		if task.Status != models.CleaningTaskCompleted {
			if err := tx.Model(&models.Room{}).Where("id = ?", task.RoomID).Update("is_available", true).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&task).Error
	})
}

func (s *HousekeepingService) GetAll() ([]models.CleaningTask, error) {
	var tasks []models.CleaningTask
	err := s.DB.Preload("Room").Order("scheduled_for").Find(&tasks).Error
	return tasks, err
}

// Summary counts tasks per status for the housekeeping dashboard.
func (s *HousekeepingService) Summary() (map[string]int64, error) {
	summary := map[string]int64{}
	counts := []struct {
		key    string
		status models.CleaningTaskStatus
	}{
		{"pendingCount", models.CleaningTaskPending},
		{"inProgressCount", models.CleaningTaskInProgress},
		{"completedCount", models.CleaningTaskCompleted},
	}
	for _, entry := range counts {
		var count int64
		if err := s.DB.Model(&models.CleaningTask{}).Where("status = ?", entry.status).Count(&count).Error; err != nil {
			return nil, err
		}
		summary[entry.key] = count
	}
	return summary, nil
}

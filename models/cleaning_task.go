package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type CleaningPriority string

const (
	CleaningPriorityNormal CleaningPriority = "NORMAL"
	CleaningPriorityUrgent CleaningPriority = "URGENT"
)

func ParseCleaningPriority(raw string) (CleaningPriority, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(CleaningPriorityNormal):
		return CleaningPriorityNormal, true
	case string(CleaningPriorityUrgent):
		return CleaningPriorityUrgent, true
	}
	return "", false
}

type CleaningTaskStatus string

const (
	CleaningTaskPending    CleaningTaskStatus = "PENDING"
	CleaningTaskInProgress CleaningTaskStatus = "IN_PROGRESS"
	CleaningTaskCompleted  CleaningTaskStatus = "COMPLETED"
)

type CleaningTask struct {
	gorm.Model

	RoomID uint `gorm:"index;column:room_id;not null" json:"room_id"`

	AssignedTo string             `json:"assignedTo" gorm:"type:varchar(120)"`
	Notes      string             `json:"notes" gorm:"type:text"`
	Priority   CleaningPriority   `json:"priority" gorm:"type:varchar(16)"`
	Status     CleaningTaskStatus `json:"status" gorm:"type:varchar(16);index"`

	ScheduledFor time.Time  `json:"scheduledFor" gorm:"column:scheduled_for"`
	CompletedAt  *time.Time `json:"completedAt,omitempty" gorm:"column:completed_at"`

	Room Room `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}

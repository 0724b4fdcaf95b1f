package models

import (
	"time"
)

type Guest struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	FullName string `json:"fullName" gorm:"type:varchar(120)"`
	Email    string `json:"email" gorm:"uniqueIndex;type:varchar(190)"`
	Phone    string `json:"phone" gorm:"type:varchar(32)"`

	// bcrypt hash, never serialized
	Password string `json:"-" gorm:"type:varchar(100)"`
}

package models

import (
	"strings"

	"gorm.io/gorm"
)

type RoomType string

const (
	RoomTypeSingle RoomType = "SINGLE"
	RoomTypeDouble RoomType = "DOUBLE"
	RoomTypeSuite  RoomType = "SUITE"
)

// ParseRoomType matches case-insensitively so "double" and "DOUBLE" both resolve.
func ParseRoomType(raw string) (RoomType, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(RoomTypeSingle):
		return RoomTypeSingle, true
	case string(RoomTypeDouble):
		return RoomTypeDouble, true
	case string(RoomTypeSuite):
		return RoomTypeSuite, true
	}
	return "", false
}

type Room struct {
	gorm.Model

	RoomNumber string   `json:"roomNumber" gorm:"column:room_number;uniqueIndex;type:varchar(50)"`
	Type       RoomType `json:"type" gorm:"type:varchar(16);index"`
	Price      float64  `json:"price" gorm:"type:decimal(10,2)"`

	// Housekeeping-controlled flag, independent of booking overlap.
	IsAvailable bool `json:"isAvailable" gorm:"column:is_available;default:true"`

	Description string `json:"description" gorm:"type:text"`
}

package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending    BookingStatus = "PENDING"
	BookingConfirmed  BookingStatus = "CONFIRMED"
	BookingCheckedIn  BookingStatus = "CHECKED_IN"
	BookingCheckedOut BookingStatus = "CHECKED_OUT"
	BookingCancelled  BookingStatus = "CANCELLED"
)

// IsTerminal reports whether no further transition is permitted.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingCheckedOut || s == BookingCancelled
}

func ParseBookingStatus(raw string) (BookingStatus, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(BookingPending):
		return BookingPending, true
	case string(BookingConfirmed):
		return BookingConfirmed, true
	case string(BookingCheckedIn):
		return BookingCheckedIn, true
	case string(BookingCheckedOut):
		return BookingCheckedOut, true
	case string(BookingCancelled):
		return BookingCancelled, true
	}
	return "", false
}

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	GuestID uint `gorm:"index;column:guest_id;not null" json:"guest_id"`

	// Nullable: a booking may exist with only a room type until staff assign a room.
	RoomID *uint `gorm:"column:room_id;index" json:"roomId,omitempty"`

	// Authoritative while RoomID is null.
	RoomType RoomType `gorm:"column:room_type;type:varchar(16)" json:"roomType"`

	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"reference_code,omitempty"`

	Status BookingStatus `gorm:"column:status;type:varchar(32);index" json:"status"`

	CheckInDate  time.Time `gorm:"column:check_in_date" json:"check_in_date"`
	CheckOutDate time.Time `gorm:"column:check_out_date" json:"check_out_date"`

	TotalPrice      float64 `gorm:"column:total_price;type:decimal(10,2)" json:"total_price"`
	SpecialRequests string  `gorm:"column:special_requests;type:text" json:"special_requests,omitempty"`

	Guest Guest `gorm:"foreignKey:GuestID;references:ID" json:"guest,omitempty"`
	Room  *Room `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}

// Nights counts whole nights in the half-open stay [CheckInDate, CheckOutDate).
func (b *Booking) Nights() int {
	return int(b.CheckOutDate.Sub(b.CheckInDate).Hours() / 24)
}

package models

import (
	"time"

	"gorm.io/gorm"
)

type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "CARD"
	PaymentMethodCash PaymentMethod = "CASH"
)

type PaymentStatus string

// SUCCESSFUL is the only status the settlement engine persists; failed
// charges abort before any payment row is written.
const PaymentSuccessful PaymentStatus = "SUCCESSFUL"

// Payment is an immutable record of money taken for exactly one payable:
// either a booking or a food order.
type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	BookingID   *uint `gorm:"column:booking_id;uniqueIndex" json:"booking_id,omitempty"`
	FoodOrderID *uint `gorm:"column:food_order_id;index" json:"food_order_id,omitempty"`

	Amount float64       `gorm:"column:amount;type:decimal(10,2)" json:"amount"`
	Method PaymentMethod `gorm:"column:method;type:varchar(8)" json:"method"`
	Status PaymentStatus `gorm:"column:status;type:varchar(16)" json:"status"`

	TransactionDate time.Time `gorm:"column:transaction_date" json:"transaction_date"`

	// Card number or synthetic cash token; retained so refunds can locate
	// the source of funds.
	PaymentIdentifier string `gorm:"column:payment_identifier;size:64" json:"payment_identifier"`

	Booking *Booking `gorm:"foreignKey:BookingID;references:ID" json:"-"`
}

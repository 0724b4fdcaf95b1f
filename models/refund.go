package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type RefundStatus string

const (
	RefundPending    RefundStatus = "PENDING"
	RefundSuccessful RefundStatus = "SUCCESSFUL"
	RefundFailed     RefundStatus = "FAILED"
	RefundCancelled  RefundStatus = "CANCELLED"
)

// ParseRefundStatus matches a refund status case-insensitively.
func ParseRefundStatus(raw string) (RefundStatus, bool) {
	switch RefundStatus(strings.ToUpper(strings.TrimSpace(raw))) {
	case RefundPending:
		return RefundPending, true
	case RefundSuccessful:
		return RefundSuccessful, true
	case RefundFailed:
		return RefundFailed, true
	case RefundCancelled:
		return RefundCancelled, true
	default:
		return "", false
	}
}

// Refund tracks money owed back for a cancelled booking. At most one refund
// exists per booking. Processing failures are persisted as FAILED rather than
// dropped.
type Refund struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	BookingID uint `gorm:"column:booking_id;uniqueIndex;not null" json:"booking_id"`

	Amount float64      `gorm:"column:amount;type:decimal(10,2)" json:"amount"`
	Reason string       `gorm:"column:reason;type:text" json:"reason"`
	Status RefundStatus `gorm:"column:status;type:varchar(16);index" json:"status"`

	RequestedAt time.Time  `gorm:"column:requested_at" json:"requested_at"`
	ProcessedAt *time.Time `gorm:"column:processed_at" json:"processed_at,omitempty"`

	RefundTransactionID string `gorm:"column:refund_transaction_id;size:64" json:"refund_transaction_id,omitempty"`

	Booking Booking `gorm:"foreignKey:BookingID;references:ID" json:"-"`
}

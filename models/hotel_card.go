package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// HotelCard is a stored-value wallet card. Exactly one card per guest is the
// default; the default card cannot be deleted or renamed and is the sole
// destination for refund credits.
type HotelCard struct {
	gorm.Model

	GuestID uint `gorm:"index;column:guest_id;not null" json:"guest_id"`

	CardHolderName string `gorm:"column:card_holder_name;type:varchar(50)" json:"cardHolderName"`
	CardNumber     string `gorm:"column:card_number;uniqueIndex;type:varchar(19)" json:"cardNumber"`
	CVV            string `gorm:"column:cvv;type:varchar(4)" json:"-"`

	ExpiryDate time.Time `gorm:"column:expiry_date" json:"expiryDate"`
	IssueDate  time.Time `gorm:"column:issue_date" json:"issueDate"`

	Balance   float64 `gorm:"column:balance;type:decimal(10,2)" json:"balance"`
	IsDefault bool    `gorm:"column:is_default;default:false" json:"isDefault"`

	Guest Guest `gorm:"foreignKey:GuestID;references:ID" json:"-"`
}

// MaskedNumber hides all but the last four digits for display.
func (c *HotelCard) MaskedNumber() string {
	n := c.CardNumber
	if len(n) <= 4 {
		return n
	}
	return strings.Repeat("*", len(n)-4) + n[len(n)-4:]
}

// IsExpired compares against the given day (dates only).
func (c *HotelCard) IsExpired(today time.Time) bool {
	return c.ExpiryDate.Before(today)
}

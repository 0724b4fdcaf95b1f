package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type FoodOrderStatus string

const (
	FoodOrderPlaced FoodOrderStatus = "PLACED"
	FoodOrderPaid   FoodOrderStatus = "PAID"
)

// OrderLine is one menu item snapshot inside a food order. Name and price are
// copied at order time so later menu edits never change a placed order.
type OrderLine struct {
	MenuItemID uint    `json:"menu_item_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

type FoodOrder struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	GuestID uint `gorm:"index;column:guest_id;not null" json:"guest_id"`

	Items      datatypes.JSON  `gorm:"column:items" json:"items"`
	TotalPrice float64         `gorm:"column:total_price;type:decimal(10,2)" json:"total_price"`
	Status     FoodOrderStatus `gorm:"column:status;type:varchar(16);index" json:"status"`

	Guest Guest `gorm:"foreignKey:GuestID;references:ID" json:"-"`
}

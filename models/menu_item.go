package models

import (
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model

	Name        string  `json:"name" gorm:"type:varchar(120)"`
	Description string  `json:"description" gorm:"type:text"`
	Category    string  `json:"category" gorm:"type:varchar(64);index"`
	Price       float64 `json:"price" gorm:"type:decimal(10,2)"`
	Available   bool    `json:"available"`
}

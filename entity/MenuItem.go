package entity

import (
	"github.com/reconized/LittleLemon/pkg/money"
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	Title    string      `gorm:"index" json:"title"`
	Price    money.Money `gorm:"type:decimal(6,2)" json:"price"`
	Featured bool        `json:"featured"`

	// Category is delete-protected: a category with menu items cannot be removed.
	CategoryID uint     `json:"category_id"`
	Category   Category `gorm:"constraint:OnDelete:RESTRICT;" json:"category"`

	OrderItems []OrderItem `json:"-"`
}

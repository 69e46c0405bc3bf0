package entity

import (
	"github.com/reconized/LittleLemon/pkg/money"
	"gorm.io/gorm"
)

// One row per (user, menu item). Adding the same item again overwrites the
// row in place; the uniqueness is enforced by the composite index.
type Cart struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex:idx_cart_user_item" json:"user_id"`
	User   User `json:"-"`

	MenuItemID uint     `gorm:"uniqueIndex:idx_cart_user_item" json:"menuitem_id"`
	MenuItem   MenuItem `json:"menuitem"`

	Quantity  int         `json:"quantity"`
	UnitPrice money.Money `gorm:"type:decimal(6,2)" json:"unit_price"`
}

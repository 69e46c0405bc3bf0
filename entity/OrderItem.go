package entity

import (
	"github.com/reconized/LittleLemon/pkg/money"
	"gorm.io/gorm"
)

// Quantity, UnitPrice and Price are snapshots taken at order time; later menu
// price changes never touch them.
type OrderItem struct {
	gorm.Model
	OrderID uint  `gorm:"uniqueIndex:idx_order_item" json:"order_id"`
	Order   Order `json:"-"`

	MenuItemID uint     `gorm:"uniqueIndex:idx_order_item" json:"menuitem_id"`
	MenuItem   MenuItem `json:"-"`

	Quantity  int         `json:"quantity"`
	UnitPrice money.Money `gorm:"type:decimal(6,2)" json:"unit_price"`
	Price     money.Money `gorm:"type:decimal(6,2)" json:"price"`
}

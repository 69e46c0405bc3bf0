package entity

import (
	"time"

	"github.com/reconized/LittleLemon/pkg/money"
	"gorm.io/gorm"
)

// Order.Status values. Status stays nil until a delivery crew is assigned;
// the pair (DeliveryCrewID, Status) is only ever cleared together.
const (
	OrderStatusOutForDelivery = 0
	OrderStatusDelivered      = 1
)

type Order struct {
	gorm.Model
	UserID uint `json:"user_id"`
	User   User `json:"-"`

	DeliveryCrewID *uint `json:"delivery_crew_id"`
	DeliveryCrew   *User `gorm:"foreignKey:DeliveryCrewID" json:"-"`

	Status *int        `gorm:"index" json:"status"`
	Total  money.Money `gorm:"type:decimal(6,2)" json:"total"`
	Date   time.Time   `gorm:"index" json:"date"`

	OrderItems []OrderItem `json:"-"`
}

package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `json:"email"`
	Password string `json:"-"`

	Groups []Group `gorm:"many2many:user_groups;" json:"-"`

	// Relations — preload only when needed
	Orders         []Order `json:"-"`
	DeliveryOrders []Order `gorm:"foreignKey:DeliveryCrewID" json:"-"`
	CartItems      []Cart  `json:"-"`
}

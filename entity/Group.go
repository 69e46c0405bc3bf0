package entity

import (
	"gorm.io/gorm"
)

// Group names in use: "manager", "delivery-crew". Rows are created on first
// use; anyone in neither group is a plain customer.
const (
	GroupManager      = "manager"
	GroupDeliveryCrew = "delivery-crew"
)

type Group struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	Users []User `gorm:"many2many:user_groups;" json:"-"`
}

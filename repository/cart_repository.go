package repository

import (
	"errors"

	"github.com/reconized/LittleLemon/entity"

	"gorm.io/gorm"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

func (r *CartRepository) ListForUser(tx *gorm.DB, userID uint) ([]entity.Cart, error) {
	var rows []entity.Cart
	err := tx.Where("user_id = ?", userID).
		Preload("MenuItem").
		Preload("MenuItem.Category").
		Find(&rows).Error
	return rows, err
}

// Upsert overwrites the existing (user, menuitem) row with the new quantity
// and unit price, or creates one. The composite unique index backstops
// concurrent adds of the same item.
func (r *CartRepository) Upsert(tx *gorm.DB, row *entity.Cart) error {
	var exist entity.Cart
	err := tx.Where("user_id = ? AND menu_item_id = ?", row.UserID, row.MenuItemID).
		First(&exist).Error
	if err == nil {
		exist.Quantity = row.Quantity
		exist.UnitPrice = row.UnitPrice
		if err := tx.Save(&exist).Error; err != nil {
			return err
		}
		*row = exist
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return tx.Create(row).Error
}

// DeleteRows deletes exactly the given cart rows. Order placement uses it so
// that rows upserted after the cart was read survive for the next order.
func (r *CartRepository) DeleteRows(tx *gorm.DB, userID uint, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return tx.Where("user_id = ? AND id IN ?", userID, ids).Delete(&entity.Cart{}).Error
}

// Clear deletes all of the user's cart rows and reports how many went away.
func (r *CartRepository) Clear(tx *gorm.DB, userID uint) (int64, error) {
	res := tx.Where("user_id = ?", userID).Delete(&entity.Cart{})
	return res.RowsAffected, res.Error
}

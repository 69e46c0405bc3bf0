package services

import (
	"errors"

	"github.com/reconized/LittleLemon/entity"
	"github.com/reconized/LittleLemon/pkg/apperr"
	"github.com/reconized/LittleLemon/pkg/money"
	"github.com/reconized/LittleLemon/repository"

	"gorm.io/gorm"
)

type CartService struct {
	DB       *gorm.DB
	CartRepo *repository.CartRepository
	MenuRepo *repository.MenuRepository
}

func NewCartService(db *gorm.DB, cr *repository.CartRepository, mr *repository.MenuRepository) *CartService {
	return &CartService{DB: db, CartRepo: cr, MenuRepo: mr}
}

type AddToCartIn struct {
	MenuItemID   uint   `json:"menuitem_id"`
	MenuItemName string `json:"menuitem_name"`
	Quantity     int    `json:"quantity"`
}

type CartRowOut struct {
	ID        uint            `json:"id"`
	MenuItem  entity.MenuItem `json:"menuitem"`
	Quantity  int             `json:"quantity"`
	UnitPrice money.Money     `json:"unit_price"`
	Price     money.Money     `json:"price"`
}

func cartRowOut(row entity.Cart) CartRowOut {
	return CartRowOut{
		ID:        row.ID,
		MenuItem:  row.MenuItem,
		Quantity:  row.Quantity,
		UnitPrice: row.UnitPrice,
		Price:     row.UnitPrice.MulInt(row.Quantity),
	}
}

func (s *CartService) List(userID uint) ([]CartRowOut, error) {
	rows, err := s.CartRepo.ListForUser(s.DB, userID)
	if err != nil {
		return nil, err
	}
	out := make([]CartRowOut, 0, len(rows))
	for _, row := range rows {
		out = append(out, cartRowOut(row))
	}
	return out, nil
}

// Add resolves the menu item by id or by case-insensitive name, then upserts
// the (user, menuitem) row. Quantity and unit price are overwritten, not
// summed; the unit price is always the menu item's current price.
func (s *CartService) Add(userID uint, in *AddToCartIn) (*CartRowOut, error) {
	if in.Quantity <= 0 {
		return nil, apperr.Wrap(apperr.ErrValidation, "quantity must be a positive integer")
	}

	var (
		item *entity.MenuItem
		err  error
	)
	switch {
	case in.MenuItemID != 0:
		item, err = s.MenuRepo.GetMenuItem(in.MenuItemID)
	case in.MenuItemName != "":
		item, err = s.MenuRepo.FindMenuItemByTitle(in.MenuItemName)
	default:
		return nil, apperr.Wrap(apperr.ErrValidation, "either menuitem_id or menuitem_name is required")
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "menu item not found")
		}
		return nil, err
	}

	row := entity.Cart{
		UserID:     userID,
		MenuItemID: item.ID,
		Quantity:   in.Quantity,
		UnitPrice:  item.Price,
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.Upsert(tx, &row)
	})
	if err != nil {
		// Two concurrent first-time adds of the same item race past the
		// existence check; the unique index turns the loser into a conflict
		// the client can retry.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Wrap(apperr.ErrConflict, "cart item was added concurrently, retry")
		}
		return nil, err
	}

	row.MenuItem = *item
	out := cartRowOut(row)
	return &out, nil
}

// Clear empties the cart and reports the number of deleted rows; an already
// empty cart is not an error.
func (s *CartService) Clear(userID uint) (int64, error) {
	var deleted int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		n, err := s.CartRepo.Clear(tx, userID)
		deleted = n
		return err
	})
	return deleted, err
}

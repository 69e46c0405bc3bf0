package repository

import (
	"strings"

	"github.com/reconized/LittleLemon/entity"

	"gorm.io/gorm"
)

type OrderRepository struct{ DB *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{DB: db} }

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

func (r *OrderRepository) GetOrder(id uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.
		Preload("User").
		Preload("DeliveryCrew").
		Preload("OrderItems").
		Preload("OrderItems.MenuItem").
		Preload("OrderItems.MenuItem.Category").
		First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

type OrderFilter struct {
	Search   string // matches delivery crew username or status
	Ordering string // date | total, "-" prefix for descending
}

var orderOrderings = map[string]string{
	"date":  "orders.date",
	"total": "orders.total",
}

// List returns orders visible under the given scope. scope is applied as an
// extra WHERE clause; nil means all orders (manager view).
func (r *OrderRepository) List(scope func(*gorm.DB) *gorm.DB, f OrderFilter) ([]entity.Order, error) {
	q := r.DB.Model(&entity.Order{}).
		Preload("User").
		Preload("DeliveryCrew").
		Preload("OrderItems").
		Preload("OrderItems.MenuItem").
		Preload("OrderItems.MenuItem.Category")

	if scope != nil {
		q = scope(q)
	}
	if f.Search != "" {
		s := "%" + strings.ToLower(f.Search) + "%"
		q = q.Joins("LEFT JOIN users crew ON crew.id = orders.delivery_crew_id").
			Where("LOWER(crew.username) LIKE ? OR CAST(orders.status AS TEXT) LIKE ?", s, s)
	}
	if f.Ordering != "" {
		field := f.Ordering
		dir := "asc"
		if strings.HasPrefix(field, "-") {
			field = field[1:]
			dir = "desc"
		}
		if col, ok := orderOrderings[field]; ok {
			q = q.Order(col + " " + dir)
		}
	}

	var orders []entity.Order
	err := q.Find(&orders).Error
	return orders, err
}

// SaveAssignment persists the delivery crew / status pair in one update so
// the two fields can never drift apart.
func (r *OrderRepository) SaveAssignment(tx *gorm.DB, orderID uint, crewID *uint, status *int) error {
	return tx.Model(&entity.Order{}).Where("id = ?", orderID).
		Updates(map[string]any{"delivery_crew_id": crewID, "status": status}).Error
}

func (r *OrderRepository) DeleteOrder(tx *gorm.DB, id uint) error {
	if err := tx.Where("order_id = ?", id).Delete(&entity.OrderItem{}).Error; err != nil {
		return err
	}
	return tx.Delete(&entity.Order{}, id).Error
}

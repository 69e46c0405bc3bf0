package services

import (
	"errors"
	"time"

	"github.com/reconized/LittleLemon/entity"
	"github.com/reconized/LittleLemon/pkg/apperr"
	"github.com/reconized/LittleLemon/pkg/money"
	"github.com/reconized/LittleLemon/repository"

	"gorm.io/gorm"
)

type OrderService struct {
	DB        *gorm.DB
	Repo      *repository.OrderRepository
	CartRepo  *repository.CartRepository
	UserRepo  *repository.UserRepository
	GroupRepo *repository.GroupRepository
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	cartRepo *repository.CartRepository,
	userRepo *repository.UserRepository,
	groupRepo *repository.GroupRepository,
) *OrderService {
	return &OrderService{DB: db, Repo: repo, CartRepo: cartRepo, UserRepo: userRepo, GroupRepo: groupRepo}
}

// ----- Serialization -----

type UserPublicOut struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type OrderItemOut struct {
	MenuItem  MenuItemShortOut `json:"menuitem"`
	Quantity  int              `json:"quantity"`
	UnitPrice money.Money      `json:"unit_price"`
	Price     money.Money      `json:"price"`
}

type MenuItemShortOut struct {
	Title    string      `json:"title"`
	Price    money.Money `json:"price"`
	Category string      `json:"category"`
}

type OrderOut struct {
	ID            uint           `json:"id"`
	Customer      UserPublicOut  `json:"customer"`
	DeliveryCrew  UserPublicOut  `json:"delivery_crew"`
	Status        *int           `json:"status"`
	StatusDisplay string         `json:"status_display"`
	Total         money.Money    `json:"total"`
	Date          string         `json:"date"`
	Items         []OrderItemOut `json:"items"`
}

// statusDisplay collapses the two nullable columns into the explicit state
// the API talks about: unassigned, out for delivery, delivered. While the
// crew is nil the order is unassigned no matter what status holds.
func statusDisplay(o *entity.Order) string {
	if o.DeliveryCrewID == nil || o.Status == nil {
		return "unassigned"
	}
	switch *o.Status {
	case entity.OrderStatusOutForDelivery:
		return "Out for delivery"
	case entity.OrderStatusDelivered:
		return "Delivered"
	default:
		return "unassigned"
	}
}

func orderOut(o *entity.Order) OrderOut {
	crew := UserPublicOut{Username: "unassigned", Email: "unassigned"}
	if o.DeliveryCrew != nil {
		crew = UserPublicOut{Username: o.DeliveryCrew.Username, Email: o.DeliveryCrew.Email}
	}

	items := make([]OrderItemOut, 0, len(o.OrderItems))
	for _, oi := range o.OrderItems {
		items = append(items, OrderItemOut{
			MenuItem: MenuItemShortOut{
				Title:    oi.MenuItem.Title,
				Price:    oi.MenuItem.Price,
				Category: oi.MenuItem.Category.Title,
			},
			Quantity:  oi.Quantity,
			UnitPrice: oi.UnitPrice,
			Price:     oi.Price,
		})
	}

	return OrderOut{
		ID:            o.ID,
		Customer:      UserPublicOut{Username: o.User.Username, Email: o.User.Email},
		DeliveryCrew:  crew,
		Status:        o.Status,
		StatusDisplay: statusDisplay(o),
		Total:         o.Total,
		Date:          o.Date.Format("2006-01-02"),
		Items:         items,
	}
}

// ----- Placement -----

// Place converts the caller's cart into an order: one Order row, one
// OrderItem per cart row (all price fields snapshotted), converted rows
// deleted. The cart is read inside the same transaction, and only the rows
// that went into the order are removed, so an item added concurrently stays
// in the cart for the next order.
func (s *OrderService) Place(userID uint) (*OrderOut, error) {
	var orderID uint
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		rows, err := s.CartRepo.ListForUser(tx, userID)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return apperr.Wrap(apperr.ErrInvalidState, "cart is empty")
		}

		total := money.Zero()
		for _, row := range rows {
			total = total.Add(row.UnitPrice.MulInt(row.Quantity))
		}

		order := entity.Order{
			UserID: userID,
			Total:  total,
			Date:   time.Now(),
		}
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}

		ids := make([]uint, 0, len(rows))
		for _, row := range rows {
			oi := entity.OrderItem{
				OrderID:    order.ID,
				MenuItemID: row.MenuItemID,
				Quantity:   row.Quantity,
				UnitPrice:  row.UnitPrice,
				Price:      row.UnitPrice.MulInt(row.Quantity),
			}
			if err := s.Repo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
			ids = append(ids, row.ID)
		}

		if err := s.CartRepo.DeleteRows(tx, userID, ids); err != nil {
			return err
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	out := orderOut(o)
	return &out, nil
}

// ----- Listing & access -----

func (s *OrderService) List(userID uint, role Role, f repository.OrderFilter) ([]OrderOut, error) {
	var scope func(*gorm.DB) *gorm.DB
	switch role {
	case RoleManager:
		scope = nil
	case RoleDeliveryCrew:
		scope = func(q *gorm.DB) *gorm.DB { return q.Where("orders.delivery_crew_id = ?", userID) }
	default:
		scope = func(q *gorm.DB) *gorm.DB { return q.Where("orders.user_id = ?", userID) }
	}

	orders, err := s.Repo.List(scope, f)
	if err != nil {
		return nil, err
	}
	out := make([]OrderOut, 0, len(orders))
	for i := range orders {
		out = append(out, orderOut(&orders[i]))
	}
	return out, nil
}

// visible answers whether the caller may touch the order at all. An order
// outside the caller's scope is refused, not hidden: 403, never 404.
func visible(o *entity.Order, userID uint, role Role) bool {
	switch role {
	case RoleManager:
		return true
	case RoleDeliveryCrew:
		return o.DeliveryCrewID != nil && *o.DeliveryCrewID == userID
	default:
		return o.UserID == userID
	}
}

func (s *OrderService) Detail(userID uint, role Role, orderID uint) (*OrderOut, error) {
	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "order not found")
		}
		return nil, err
	}
	if !visible(o, userID, role) {
		return nil, apperr.Wrap(apperr.ErrForbidden, "you do not have access to this order")
	}
	out := orderOut(o)
	return &out, nil
}

// ----- Mutation -----

// OrderUpdateIn carries the two mutable fields. A nil pointer means the field
// was absent from the request body; the values are pre-normalized strings:
// "unassigned", "0" or "1" for status, a username or "unassigned" for crew.
type OrderUpdateIn struct {
	DeliveryCrew *string
	Status       *string
}

// Update applies the role-gated state transition. PUT and PATCH are handled
// identically.
func (s *OrderService) Update(userID uint, role Role, orderID uint, in *OrderUpdateIn) (*OrderOut, error) {
	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "order not found")
		}
		return nil, err
	}

	switch role {
	case RoleManager:
		err = s.managerUpdate(o, in)
	case RoleDeliveryCrew:
		err = s.crewUpdate(o, userID, in)
	default:
		err = apperr.Wrap(apperr.ErrForbidden, "customers cannot modify orders")
	}
	if err != nil {
		return nil, err
	}

	o, err = s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	out := orderOut(o)
	return &out, nil
}

func (s *OrderService) managerUpdate(o *entity.Order, in *OrderUpdateIn) error {
	crewID := o.DeliveryCrewID
	status := o.Status

	if in.DeliveryCrew != nil {
		if *in.DeliveryCrew == "unassigned" {
			// Clearing the crew always clears status with it; this is the
			// only path back to the unassigned state.
			crewID = nil
			status = nil
		} else {
			crew, err := s.UserRepo.FindByUsername(*in.DeliveryCrew)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.Wrap(apperr.ErrNotFound, "user not found")
				}
				return err
			}
			group, err := s.GroupRepo.FindByName(entity.GroupDeliveryCrew)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.Wrap(apperr.ErrValidation, "user is not delivery crew")
				}
				return err
			}
			member, err := s.GroupRepo.IsMember(s.DB, group.ID, crew.ID)
			if err != nil {
				return err
			}
			if !member {
				return apperr.Wrap(apperr.ErrValidation, "user is not delivery crew")
			}
			id := crew.ID
			crewID = &id
		}
	}

	if in.Status != nil {
		switch *in.Status {
		case "unassigned":
			crewID = nil
			status = nil
		case "0":
			v := entity.OrderStatusOutForDelivery
			status = &v
		case "1":
			v := entity.OrderStatusDelivered
			status = &v
		default:
			return apperr.Wrap(apperr.ErrValidation, "invalid status value")
		}
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.SaveAssignment(tx, o.ID, crewID, status)
	})
}

func (s *OrderService) crewUpdate(o *entity.Order, userID uint, in *OrderUpdateIn) error {
	if o.DeliveryCrewID == nil || *o.DeliveryCrewID != userID {
		return apperr.Wrap(apperr.ErrForbidden, "not assigned to this order")
	}
	if in.DeliveryCrew != nil {
		return apperr.Wrap(apperr.ErrForbidden, "delivery crew cannot reassign orders")
	}
	if in.Status == nil {
		return apperr.Wrap(apperr.ErrValidation, "invalid or missing status")
	}

	var status int
	switch *in.Status {
	case "0":
		status = entity.OrderStatusOutForDelivery
	case "1":
		status = entity.OrderStatusDelivered
	default:
		return apperr.Wrap(apperr.ErrValidation, "invalid or missing status")
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.SaveAssignment(tx, o.ID, o.DeliveryCrewID, &status)
	})
}

func (s *OrderService) Delete(role Role, orderID uint) error {
	if role != RoleManager {
		return apperr.Wrap(apperr.ErrForbidden, "only managers can delete orders")
	}
	if _, err := s.Repo.GetOrder(orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Wrap(apperr.ErrNotFound, "order not found")
		}
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.DeleteOrder(tx, orderID)
	})
}

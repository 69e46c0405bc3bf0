package services

import (
	"fmt"
	"testing"

	"github.com/reconized/LittleLemon/entity"
	"github.com/reconized/LittleLemon/pkg/money"
	"github.com/reconized/LittleLemon/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int

// newTestDB opens a fresh in-memory sqlite database per test. cache=shared
// keeps the database alive across gorm's pooled connections.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	testDBSeq++
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.User{}, &entity.Group{},
		&entity.Category{}, &entity.MenuItem{},
		&entity.Cart{},
		&entity.Order{}, &entity.OrderItem{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *entity.User {
	t.Helper()
	u := &entity.User{Username: username, Email: username + "@example.com", Password: "x"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func addToGroup(t *testing.T, db *gorm.DB, u *entity.User, groupName string) {
	t.Helper()
	var g entity.Group
	require.NoError(t, db.Where("name = ?", groupName).FirstOrCreate(&g, entity.Group{Name: groupName}).Error)
	require.NoError(t, db.Model(&g).Association("Users").Append(u))
}

func createMenuItem(t *testing.T, db *gorm.DB, title, price string, cat *entity.Category) *entity.MenuItem {
	t.Helper()
	p, err := money.FromString(price)
	require.NoError(t, err)
	item := &entity.MenuItem{Title: title, Price: p, CategoryID: cat.ID}
	require.NoError(t, db.Create(item).Error)
	return item
}

func createCategory(t *testing.T, db *gorm.DB, title string) *entity.Category {
	t.Helper()
	cat := &entity.Category{Slug: title, Title: title}
	require.NoError(t, db.Create(cat).Error)
	return cat
}

func newCartService(db *gorm.DB) *CartService {
	return NewCartService(db, repository.NewCartRepository(db), repository.NewMenuRepository(db))
}

func newOrderService(db *gorm.DB) *OrderService {
	return NewOrderService(db,
		repository.NewOrderRepository(db),
		repository.NewCartRepository(db),
		repository.NewUserRepository(db),
		repository.NewGroupRepository(db),
	)
}

func newGroupService(db *gorm.DB) *GroupService {
	return NewGroupService(db, repository.NewGroupRepository(db), repository.NewUserRepository(db))
}

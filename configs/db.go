package configs

import (
	"fmt"

	"github.com/reconized/LittleLemon/entity"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(cfg *Config) error {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DBSource)
	case "sqlite":
		dialector = sqlite.Open(cfg.DBSource)
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", cfg.DBDriver)
	}

	// TranslateError turns driver unique-violation errors into
	// gorm.ErrDuplicatedKey so the services can map them to a 409.
	database, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	db = database
	return nil
}

func SetupDatabase() error {
	return db.AutoMigrate(
		&entity.User{}, &entity.Group{},
		&entity.Category{}, &entity.MenuItem{},
		&entity.Cart{},
		&entity.Order{}, &entity.OrderItem{},
	)
}

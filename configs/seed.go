package configs

import (
	"errors"

	"github.com/reconized/LittleLemon/entity"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin bootstraps one manager account so the group endpoints are usable
// on a fresh database. Idempotent.
func SeedAdmin() error {
	username := getEnv("ADMIN_USERNAME", "admin")
	password := getEnv("ADMIN_PASSWORD", "admin1234")
	email := getEnv("ADMIN_EMAIL", "admin@example.com")

	return db.Transaction(func(tx *gorm.DB) error {
		var user entity.User
		err := tx.Where("username = ?", username).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			hashed, herr := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if herr != nil {
				return herr
			}
			user = entity.User{Username: username, Email: email, Password: string(hashed)}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		var group entity.Group
		if err := tx.Where("name = ?", entity.GroupManager).
			FirstOrCreate(&group, entity.Group{Name: entity.GroupManager}).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Table("user_groups").
			Where("user_id = ? AND group_id = ?", user.ID, group.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return tx.Model(&group).Association("Users").Append(&user)
		}
		return nil
	})
}

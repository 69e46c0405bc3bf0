package repository

import (
	"github.com/reconized/LittleLemon/entity"

	"gorm.io/gorm"
)

type GroupRepository struct{ DB *gorm.DB }

func NewGroupRepository(db *gorm.DB) *GroupRepository { return &GroupRepository{DB: db} }

func (r *GroupRepository) FindByName(name string) (*entity.Group, error) {
	var g entity.Group
	if err := r.DB.Where("name = ?", name).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GroupRepository) GetOrCreate(tx *gorm.DB, name string) (*entity.Group, error) {
	var g entity.Group
	if err := tx.Where("name = ?", name).FirstOrCreate(&g, entity.Group{Name: name}).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GroupRepository) IsMember(tx *gorm.DB, groupID, userID uint) (bool, error) {
	var count int64
	err := tx.Table("user_groups").
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *GroupRepository) AddMember(tx *gorm.DB, group *entity.Group, user *entity.User) error {
	return tx.Model(group).Association("Users").Append(user)
}

func (r *GroupRepository) RemoveMember(tx *gorm.DB, group *entity.Group, user *entity.User) error {
	return tx.Model(group).Association("Users").Delete(user)
}

func (r *GroupRepository) Members(groupID uint) ([]entity.User, error) {
	var users []entity.User
	err := r.DB.
		Joins("JOIN user_groups ON user_groups.user_id = users.id").
		Where("user_groups.group_id = ?", groupID).
		Find(&users).Error
	return users, err
}

// GroupNamesForUser returns the names of every group the user belongs to.
// Queried fresh on each request; role state is never cached.
func (r *GroupRepository) GroupNamesForUser(userID uint) ([]string, error) {
	var names []string
	err := r.DB.Model(&entity.Group{}).
		Joins("JOIN user_groups ON user_groups.group_id = groups.id").
		Where("user_groups.user_id = ?", userID).
		Pluck("groups.name", &names).Error
	return names, err
}

package repository

import (
	"strings"

	"github.com/reconized/LittleLemon/entity"

	"gorm.io/gorm"
)

type MenuRepository struct{ DB *gorm.DB }

func NewMenuRepository(db *gorm.DB) *MenuRepository { return &MenuRepository{DB: db} }

// ----- Categories -----

func (r *MenuRepository) ListCategories() ([]entity.Category, error) {
	var cats []entity.Category
	err := r.DB.Find(&cats).Error
	return cats, err
}

func (r *MenuRepository) GetCategory(id uint) (*entity.Category, error) {
	var cat entity.Category
	if err := r.DB.First(&cat, id).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *MenuRepository) CreateCategory(cat *entity.Category) error {
	return r.DB.Create(cat).Error
}

func (r *MenuRepository) SaveCategory(cat *entity.Category) error {
	return r.DB.Save(cat).Error
}

func (r *MenuRepository) DeleteCategory(id uint) error {
	return r.DB.Delete(&entity.Category{}, id).Error
}

func (r *MenuRepository) CountMenuItemsInCategory(categoryID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.MenuItem{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

// ----- Menu items -----

type MenuItemFilter struct {
	Category string // case-insensitive exact category title
	Search   string // case-insensitive title substring
	Ordering string // title | price | featured, "-" prefix for descending
}

var menuOrderings = map[string]string{
	"title":    "title",
	"price":    "price",
	"featured": "featured",
}

func (r *MenuRepository) ListMenuItems(f MenuItemFilter) ([]entity.MenuItem, error) {
	q := r.DB.Model(&entity.MenuItem{}).Preload("Category")

	if f.Category != "" {
		q = q.Joins("JOIN categories ON categories.id = menu_items.category_id").
			Where("LOWER(categories.title) = LOWER(?)", f.Category)
	}
	if f.Search != "" {
		q = q.Where("LOWER(menu_items.title) LIKE ?", "%"+strings.ToLower(f.Search)+"%")
	}
	if f.Ordering != "" {
		field := f.Ordering
		dir := "asc"
		if strings.HasPrefix(field, "-") {
			field = field[1:]
			dir = "desc"
		}
		if col, ok := menuOrderings[field]; ok {
			q = q.Order("menu_items." + col + " " + dir)
		}
	}

	var items []entity.MenuItem
	err := q.Find(&items).Error
	return items, err
}

func (r *MenuRepository) GetMenuItem(id uint) (*entity.MenuItem, error) {
	var item entity.MenuItem
	if err := r.DB.Preload("Category").First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindMenuItemByTitle matches the title case-insensitively and exactly.
func (r *MenuRepository) FindMenuItemByTitle(title string) (*entity.MenuItem, error) {
	var item entity.MenuItem
	err := r.DB.Preload("Category").
		Where("LOWER(title) = LOWER(?)", title).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *MenuRepository) CreateMenuItem(item *entity.MenuItem) error {
	return r.DB.Create(item).Error
}

func (r *MenuRepository) SaveMenuItem(item *entity.MenuItem) error {
	return r.DB.Save(item).Error
}

func (r *MenuRepository) DeleteMenuItem(id uint) error {
	return r.DB.Delete(&entity.MenuItem{}, id).Error
}

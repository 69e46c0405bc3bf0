package services

import (
	"errors"
	"strings"

	"github.com/reconized/LittleLemon/entity"
	"github.com/reconized/LittleLemon/pkg/apperr"
	"github.com/reconized/LittleLemon/pkg/money"
	"github.com/reconized/LittleLemon/repository"

	"gorm.io/gorm"
)

type MenuService struct {
	Repo *repository.MenuRepository
}

func NewMenuService(mr *repository.MenuRepository) *MenuService {
	return &MenuService{Repo: mr}
}

// ----- Categories -----

type CategoryIn struct {
	Slug  string `json:"slug"`
	Title string `json:"title" binding:"required"`
}

func (s *MenuService) ListCategories() ([]entity.Category, error) {
	return s.Repo.ListCategories()
}

func (s *MenuService) GetCategory(id uint) (*entity.Category, error) {
	cat, err := s.Repo.GetCategory(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "category not found")
		}
		return nil, err
	}
	return cat, nil
}

func (s *MenuService) CreateCategory(in *CategoryIn) (*entity.Category, error) {
	cat := &entity.Category{Slug: in.Slug, Title: in.Title}
	if cat.Slug == "" {
		cat.Slug = slugify(in.Title)
	}
	if err := s.Repo.CreateCategory(cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *MenuService) UpdateCategory(id uint, in *CategoryIn) (*entity.Category, error) {
	cat, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}
	cat.Title = in.Title
	if in.Slug != "" {
		cat.Slug = in.Slug
	}
	if err := s.Repo.SaveCategory(cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// DeleteCategory refuses while menu items still reference the category.
func (s *MenuService) DeleteCategory(id uint) error {
	if _, err := s.GetCategory(id); err != nil {
		return err
	}
	count, err := s.Repo.CountMenuItemsInCategory(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Wrap(apperr.ErrValidation, "category still has menu items")
	}
	return s.Repo.DeleteCategory(id)
}

func slugify(title string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(title)), " ", "-")
}

// ----- Menu items -----

type MenuItemIn struct {
	Title      string      `json:"title" binding:"required"`
	Price      money.Money `json:"price"`
	Featured   bool        `json:"featured"`
	CategoryID uint        `json:"category_id" binding:"required"`
}

func (s *MenuService) ListMenuItems(f repository.MenuItemFilter) ([]entity.MenuItem, error) {
	return s.Repo.ListMenuItems(f)
}

func (s *MenuService) GetMenuItem(id uint) (*entity.MenuItem, error) {
	item, err := s.Repo.GetMenuItem(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "menu item not found")
		}
		return nil, err
	}
	return item, nil
}

func (s *MenuService) CreateMenuItem(in *MenuItemIn) (*entity.MenuItem, error) {
	if err := s.validateMenuItem(in); err != nil {
		return nil, err
	}
	item := &entity.MenuItem{
		Title:      in.Title,
		Price:      in.Price,
		Featured:   in.Featured,
		CategoryID: in.CategoryID,
	}
	if err := s.Repo.CreateMenuItem(item); err != nil {
		return nil, err
	}
	return s.GetMenuItem(item.ID)
}

func (s *MenuService) UpdateMenuItem(id uint, in *MenuItemIn) (*entity.MenuItem, error) {
	item, err := s.GetMenuItem(id)
	if err != nil {
		return nil, err
	}
	if err := s.validateMenuItem(in); err != nil {
		return nil, err
	}
	item.Title = in.Title
	item.Price = in.Price
	item.Featured = in.Featured
	item.CategoryID = in.CategoryID
	if err := s.Repo.SaveMenuItem(item); err != nil {
		return nil, err
	}
	return s.GetMenuItem(id)
}

func (s *MenuService) DeleteMenuItem(id uint) error {
	if _, err := s.GetMenuItem(id); err != nil {
		return err
	}
	return s.Repo.DeleteMenuItem(id)
}

func (s *MenuService) validateMenuItem(in *MenuItemIn) error {
	if in.Price.IsNegative() {
		return apperr.Wrap(apperr.ErrValidation, "price must not be negative")
	}
	if _, err := s.Repo.GetCategory(in.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Wrap(apperr.ErrNotFound, "category not found")
		}
		return err
	}
	return nil
}

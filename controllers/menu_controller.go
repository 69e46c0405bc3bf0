package controllers

import (
	"github.com/reconized/LittleLemon/pkg/resp"
	"github.com/reconized/LittleLemon/repository"
	"github.com/reconized/LittleLemon/services"
	"github.com/reconized/LittleLemon/utils"

	"github.com/gin-gonic/gin"
)

// MenuController covers both categories and menu items: public reads,
// manager-only writes.
type MenuController struct {
	Svc   *services.MenuService
	Roles *services.RoleResolver
}

func NewMenuController(s *services.MenuService, rr *services.RoleResolver) *MenuController {
	return &MenuController{Svc: s, Roles: rr}
}

func (h *MenuController) requireManager(c *gin.Context) bool {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "authentication required")
		return false
	}
	role, err := h.Roles.Resolve(uid)
	if err != nil {
		resp.Error(c, err)
		return false
	}
	if role != services.RoleManager {
		resp.Forbidden(c, "manager role required")
		return false
	}
	return true
}

// ----- Categories -----

// GET /categories
func (h *MenuController) ListCategories(c *gin.Context) {
	cats, err := h.Svc.ListCategories()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, cats)
}

// POST /categories
func (h *MenuController) CreateCategory(c *gin.Context) {
	if !h.requireManager(c) {
		return
	}
	var req services.CategoryIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cat, err := h.Svc.CreateCategory(&req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, cat)
}

// GET /categories/:id
func (h *MenuController) GetCategory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid category id")
		return
	}
	cat, err := h.Svc.GetCategory(id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, cat)
}

// PATCH/PUT /categories/:id
func (h *MenuController) UpdateCategory(c *gin.Context) {
	if !h.requireManager(c) {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid category id")
		return
	}
	var req services.CategoryIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cat, err := h.Svc.UpdateCategory(id, &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, cat)
}

// DELETE /categories/:id
func (h *MenuController) DeleteCategory(c *gin.Context) {
	if !h.requireManager(c) {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid category id")
		return
	}
	if err := h.Svc.DeleteCategory(id); err != nil {
		resp.Error(c, err)
		return
	}
	resp.NoContent(c)
}

// ----- Menu items -----

// GET /menu-items?category=&search=&ordering=
func (h *MenuController) ListMenuItems(c *gin.Context) {
	f := repository.MenuItemFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
	}
	items, err := h.Svc.ListMenuItems(f)
	if err != nil {
		resp.Error(c, err)
		return
	}
	if f.Category != "" && len(items) == 0 {
		resp.OK(c, gin.H{"detail": "No menu items found for category: '" + f.Category + "' or category does not exist."})
		return
	}
	resp.OK(c, items)
}

// POST /menu-items
func (h *MenuController) CreateMenuItem(c *gin.Context) {
	if !h.requireManager(c) {
		return
	}
	var req services.MenuItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := h.Svc.CreateMenuItem(&req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, item)
}

// GET /menu-items/:id
func (h *MenuController) GetMenuItem(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid menu item id")
		return
	}
	item, err := h.Svc.GetMenuItem(id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, item)
}

// PATCH/PUT /menu-items/:id
func (h *MenuController) UpdateMenuItem(c *gin.Context) {
	if !h.requireManager(c) {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid menu item id")
		return
	}
	var req services.MenuItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := h.Svc.UpdateMenuItem(id, &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, item)
}

// DELETE /menu-items/:id
func (h *MenuController) DeleteMenuItem(c *gin.Context) {
	if !h.requireManager(c) {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid menu item id")
		return
	}
	if err := h.Svc.DeleteMenuItem(id); err != nil {
		resp.Error(c, err)
		return
	}
	resp.NoContent(c)
}

package controllers

import (
	"fmt"

	"github.com/reconized/LittleLemon/pkg/resp"
	"github.com/reconized/LittleLemon/services"
	"github.com/reconized/LittleLemon/utils"

	"github.com/gin-gonic/gin"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController { return &CartController{Svc: s} }

// GET /cart/menu-items
func (h *CartController) List(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	rows, err := h.Svc.List(uid)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, rows)
}

// POST /cart/menu-items
func (h *CartController) Add(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req services.AddToCartIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	row, err := h.Svc.Add(uid, &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, row)
}

// DELETE /cart/menu-items
// Responds 200, not 204: the count message would be dropped on a 204.
func (h *CartController) Clear(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	deleted, err := h.Svc.Clear(uid)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"message": fmt.Sprintf("Deleted %d cart item(s).", deleted)})
}

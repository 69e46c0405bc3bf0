package controllers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/reconized/LittleLemon/pkg/resp"
	"github.com/reconized/LittleLemon/repository"
	"github.com/reconized/LittleLemon/services"
	"github.com/reconized/LittleLemon/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Svc   *services.OrderService
	Roles *services.RoleResolver
}

func NewOrderController(s *services.OrderService, rr *services.RoleResolver) *OrderController {
	return &OrderController{Svc: s, Roles: rr}
}

// GET /orders
func (h *OrderController) List(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	role, err := h.Roles.Resolve(uid)
	if err != nil {
		resp.Error(c, err)
		return
	}

	f := repository.OrderFilter{
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
	}
	orders, err := h.Svc.List(uid, role, f)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, orders)
}

// POST /orders — convert the caller's cart into an order.
func (h *OrderController) Place(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	order, err := h.Svc.Place(uid)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, order)
}

// GET /orders/:id
func (h *OrderController) Detail(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	role, err := h.Roles.Resolve(uid)
	if err != nil {
		resp.Error(c, err)
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid order id")
		return
	}
	order, err := h.Svc.Detail(uid, role, id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, order)
}

// PATCH /orders/:id and PUT /orders/:id share this handler; full replace is
// defined to behave exactly like partial update.
func (h *OrderController) Update(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	role, err := h.Roles.Resolve(uid)
	if err != nil {
		resp.Error(c, err)
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid order id")
		return
	}

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	in := services.OrderUpdateIn{}
	if v, present := body["delivery_crew"]; present {
		in.DeliveryCrew = normalizeField(v)
	}
	if v, present := body["status"]; present {
		in.Status = normalizeField(v)
	}

	order, err := h.Svc.Update(uid, role, id, &in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, order)
}

// DELETE /orders/:id
func (h *OrderController) Delete(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	role, err := h.Roles.Resolve(uid)
	if err != nil {
		resp.Error(c, err)
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid order id")
		return
	}
	if err := h.Svc.Delete(role, id); err != nil {
		resp.Error(c, err)
		return
	}
	resp.NoContent(c)
}

// normalizeField folds JSON numbers and strings into the string forms the
// service expects: "0", "1", "unassigned", or a username. Status may arrive
// as 0, "0", 1 or "1". Numbers keep their textual form, so 0.5 stays "0.5"
// and fails status validation instead of truncating into a valid value.
func normalizeField(v any) *string {
	var s string
	switch t := v.(type) {
	case string:
		s = strings.TrimSpace(t)
		if strings.EqualFold(s, "unassigned") {
			s = "unassigned"
		}
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	default:
		s = fmt.Sprintf("%v", t)
	}
	return &s
}

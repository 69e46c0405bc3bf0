package controllers

import (
	"fmt"

	"github.com/reconized/LittleLemon/pkg/resp"
	"github.com/reconized/LittleLemon/services"
	"github.com/reconized/LittleLemon/utils"

	"github.com/gin-gonic/gin"
)

// GroupController serves one group's membership endpoints; the routes file
// instantiates it once per group name.
type GroupController struct {
	Svc       *services.GroupService
	Roles     *services.RoleResolver
	GroupName string
	Label     string // "Manager" / "Delivery" in response messages
}

func NewGroupController(s *services.GroupService, rr *services.RoleResolver, groupName, label string) *GroupController {
	return &GroupController{Svc: s, Roles: rr, GroupName: groupName, Label: label}
}

func (h *GroupController) requireManager(c *gin.Context) bool {
	role, err := h.Roles.Resolve(utils.CurrentUserID(c))
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

// GET /groups/{group}/users
func (h *GroupController) List(c *gin.Context) {
	members, err := h.Svc.Members(h.GroupName)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, members)
}

type addMemberReq struct {
	Username string `json:"username" binding:"required"`
}

// POST /groups/{group}/users
func (h *GroupController) Add(c *gin.Context) {
	if !h.requireManager(c) {
		return
	}
	var req addMemberReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.AddMember(h.GroupName, req.Username); err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, gin.H{"message": fmt.Sprintf("User %s added to %s group.", req.Username, h.Label)})
}

// DELETE /groups/{group}/users/:userId
func (h *GroupController) Remove(c *gin.Context) {
	if !h.requireManager(c) {
		return
	}
	userID, ok := idParam(c, "userId")
	if !ok {
		resp.BadRequest(c, "invalid user id")
		return
	}
	username, err := h.Svc.RemoveMember(h.GroupName, userID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"message": fmt.Sprintf("User %s removed from %s group.", username, h.Label)})
}

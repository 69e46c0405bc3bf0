package controllers

import (
	"github.com/reconized/LittleLemon/pkg/resp"
	"github.com/reconized/LittleLemon/services"
	"github.com/reconized/LittleLemon/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Svc   *services.AuthService
	Roles *services.RoleResolver
}

func NewAuthController(s *services.AuthService, rr *services.RoleResolver) *AuthController {
	return &AuthController{Svc: s, Roles: rr}
}

type registerReq struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/register
func (h *AuthController) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	user, err := h.Svc.Register(req.Username, req.Email, req.Password)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, gin.H{"id": user.ID, "username": user.Username, "email": user.Email})
}

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/login
func (h *AuthController) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	token, user, err := h.Svc.Login(req.Username, req.Password)
	if err != nil {
		resp.Unauthorized(c, "invalid credentials")
		return
	}
	resp.OK(c, gin.H{"token": token, "username": user.Username})
}

// GET /auth/me
func (h *AuthController) Me(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	user, err := h.Svc.GetProfile(uid)
	if err != nil {
		resp.Error(c, err)
		return
	}
	role, err := h.Roles.Resolve(uid)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     role.String(),
	})
}

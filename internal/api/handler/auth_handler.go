package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jyjuk/backend-internship/internal/dto"
	"github.com/jyjuk/backend-internship/internal/service"
	"github.com/jyjuk/backend-internship/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Register 用户注册
// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			response.Conflict(c, 11002, "邮箱已被注册")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// Login 用户登录
// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Unauthorized(c, 11001, "邮箱或密码错误")
		case errors.Is(err, service.ErrUserInactive):
			response.Forbidden(c, 11003, "账号已停用")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Logout 用户登出
// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.GetString("jti")
	exp, _ := c.Get("token_exp")
	expiresAt, _ := exp.(time.Time)

	if err := h.authSvc.Logout(c.Request.Context(), jti, expiresAt); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"message": "Logged out successfully"})
}

// Me 获取当前用户信息
// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 11004, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, user)
}

package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jyjuk/backend-internship/internal/dto"
	"github.com/jyjuk/backend-internship/internal/service"
	"github.com/jyjuk/backend-internship/pkg/response"
)

// CompanyHandler 公司模块 HTTP 处理器
type CompanyHandler struct {
	companySvc service.CompanyService
}

// NewCompanyHandler 创建 CompanyHandler
func NewCompanyHandler(companySvc service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companySvc: companySvc}
}

// Create 创建公司
// POST /companies
func (h *CompanyHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.companySvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// Get 查询公司详情
// GET /companies/:id
func (h *CompanyHandler) Get(c *gin.Context) {
	result, err := h.companySvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			response.NotFound(c, 12001, "公司不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// AddMember 添加公司成员
// POST /companies/:id/members
func (h *CompanyHandler) AddMember(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	err := h.companySvc.AddMember(c.Request.Context(), c.Param("id"), &req, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCompanyNotFound):
			response.NotFound(c, 12001, "公司不存在")
		case errors.Is(err, service.ErrNotCompanyAdmin):
			response.Forbidden(c, 12002, "仅所有者或管理员可添加成员")
		case errors.Is(err, service.ErrAlreadyMember):
			response.Conflict(c, 12003, "用户已是公司成员")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 11004, "用户不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, gin.H{"message": "Member added"})
}

// ListMembers 查询公司成员列表
// GET /companies/:id/members
func (h *CompanyHandler) ListMembers(c *gin.Context) {
	members, err := h.companySvc.ListMembers(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			response.NotFound(c, 12001, "公司不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, members)
}

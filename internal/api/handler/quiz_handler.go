package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jyjuk/backend-internship/internal/dto"
	"github.com/jyjuk/backend-internship/internal/service"
	"github.com/jyjuk/backend-internship/pkg/response"
)

// QuizHandler 测验模块 HTTP 处理器
type QuizHandler struct {
	quizSvc service.QuizService
}

// NewQuizHandler 创建 QuizHandler
func NewQuizHandler(quizSvc service.QuizService) *QuizHandler {
	return &QuizHandler{quizSvc: quizSvc}
}

// Create 创建测验并通知公司成员
// POST /quizzes
func (h *QuizHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.quizSvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCompanyNotFound):
			response.NotFound(c, 12001, "公司不存在")
		case errors.Is(err, service.ErrNotMember):
			response.Forbidden(c, 13002, "仅公司成员可创建测验")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// Get 查询测验详情
// GET /quizzes/:id
func (h *QuizHandler) Get(c *gin.Context) {
	result, err := h.quizSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrQuizNotFound) {
			response.NotFound(c, 13001, "测验不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// SubmitAttempt 提交答题结果
// POST /quizzes/:id/attempts
func (h *QuizHandler) SubmitAttempt(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.quizSvc.SubmitAttempt(c.Request.Context(), c.Param("id"), &req, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuizNotFound):
			response.NotFound(c, 13001, "测验不存在")
		case errors.Is(err, service.ErrNotMember):
			response.Forbidden(c, 13003, "仅公司成员可答题")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

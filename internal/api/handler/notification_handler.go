package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jyjuk/backend-internship/internal/dto"
	"github.com/jyjuk/backend-internship/internal/service"
	"github.com/jyjuk/backend-internship/pkg/response"
)

// NotificationHandler 通知模块 HTTP 处理器
type NotificationHandler struct {
	notificationSvc service.NotificationService
}

// NewNotificationHandler 创建 NotificationHandler
func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// List 分页查询当前用户的通知
// GET /notifications?skip=0&limit=50&unread_only=false
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.NotificationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.notificationSvc.ListForUser(c.Request.Context(), userID, req.Skip, req.Limit, req.UnreadOnly)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// UnreadCount 查询当前用户的未读通知数
// GET /notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.notificationSvc.GetUnreadCount(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// MarkRead 标记单条通知已读（幂等）
// PUT /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.notificationSvc.MarkRead(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			response.NotFound(c, 14001, "通知不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// MarkAllRead 标记当前用户全部通知已读
// PUT /notifications/mark-all-read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	updated, err := h.notificationSvc.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, dto.MarkAllReadResponse{
		Message:      "All notifications marked as read",
		UpdatedCount: updated,
	})
}

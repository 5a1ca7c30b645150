package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jyjuk/backend-internship/internal/dto"
	"github.com/jyjuk/backend-internship/internal/service"
	"github.com/jyjuk/backend-internship/pkg/response"
)

// SchedulerHandler 定时任务模块 HTTP 处理器
type SchedulerHandler struct {
	reminderSvc service.ReminderService
	logger      *zap.Logger
}

// NewSchedulerHandler 创建 SchedulerHandler
func NewSchedulerHandler(reminderSvc service.ReminderService, logger *zap.Logger) *SchedulerHandler {
	return &SchedulerHandler{reminderSvc: reminderSvc, logger: logger}
}

// TriggerQuizReminder 手动触发一次测验提醒扫描
// POST /scheduler/trigger-quiz-reminder
//
// 与定时触发执行同一套逻辑，返回本次扫描的统计结果。
func (h *SchedulerHandler) TriggerQuizReminder(c *gin.Context) {
	stats, err := h.reminderSvc.Run(c.Request.Context())
	if err != nil {
		h.logger.Error("手动触发测验提醒失败", zap.Error(err))
		response.InternalError(c)
		return
	}

	response.OK(c, dto.TriggerReminderResponse{
		Message: "Quiz reminder check triggered successfully",
		Stats:   *stats,
	})
}

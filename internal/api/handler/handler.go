package handler

import (
	"go.uber.org/zap"

	"github.com/jyjuk/backend-internship/internal/service"
	"github.com/jyjuk/backend-internship/internal/ws"
	"github.com/jyjuk/backend-internship/pkg/jwt"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	Company      *CompanyHandler
	Quiz         *QuizHandler
	Notification *NotificationHandler
	Scheduler    *SchedulerHandler
	WS           *WSHandler
	Export       *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, hub *ws.Hub, jwtMgr *jwt.Manager, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		Company:      NewCompanyHandler(svc.Company),
		Quiz:         NewQuizHandler(svc.Quiz),
		Notification: NewNotificationHandler(svc.Notification),
		Scheduler:    NewSchedulerHandler(svc.Reminder, logger),
		WS:           NewWSHandler(hub, jwtMgr, svc.Auth, logger),
		Export:       NewExportHandler(svc.Export),
	}
}

package service

import (
	"go.uber.org/zap"

	"github.com/jyjuk/backend-internship/config"
	"github.com/jyjuk/backend-internship/internal/repository"
	"github.com/jyjuk/backend-internship/pkg/jwt"
	"github.com/jyjuk/backend-internship/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth         AuthService
	Company      CompanyService
	Quiz         QuizService
	Notification NotificationService
	Reminder     ReminderService
	Export       ExportService
}

// NewService 创建 Service 聚合
//
// pusher 为 WebSocket 推送端，通常是 ws.Hub；rdb 为 nil 时令牌黑名单降级为关闭
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	pusher NotificationPusher,
	logger *zap.Logger,
) *Service {
	notificationSvc := NewNotificationService(repo, pusher, logger)

	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Company:      NewCompanyService(repo, logger),
		Quiz:         NewQuizService(repo, notificationSvc, logger),
		Notification: notificationSvc,
		Reminder:     NewReminderService(repo, notificationSvc, logger),
		Export:       NewExportService(repo, logger),
	}
}

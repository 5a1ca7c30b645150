package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jyjuk/backend-internship/internal/dto"
	"github.com/jyjuk/backend-internship/internal/model"
	"github.com/jyjuk/backend-internship/internal/repository"
)

// ReminderService 超期测验提醒任务
// 每轮扫描超期候选源，为每个 (用户, 测验) 对创建提醒通知并尽力推送。
// 单条失败只计入 Errors，不中断批次。
type ReminderService interface {
	Run(ctx context.Context) (*dto.ReminderStats, error)
}

type reminderService struct {
	repo            *repository.Repository
	notificationSvc NotificationService
	logger          *zap.Logger
}

// NewReminderService 创建 ReminderService 实例
func NewReminderService(
	repo *repository.Repository,
	notificationSvc NotificationService,
	logger *zap.Logger,
) ReminderService {
	return &reminderService{
		repo:            repo,
		notificationSvc: notificationSvc,
		logger:          logger,
	}
}

func (s *reminderService) Run(ctx context.Context) (*dto.ReminderStats, error) {
	s.logger.Info("开始执行测验提醒扫描")

	stats := &dto.ReminderStats{}

	// 候选源失败与单条失败走同一条路：计入 stats.Errors 返回，
	// 手动触发与定时触发因此拿到一致的统计口径
	pending, err := s.repo.Staleness.PendingQuizzes(ctx)
	if err != nil {
		s.logger.Error("查询超期测验失败", zap.Error(err))
		stats.Errors++
		return stats, nil
	}

	stats.PendingQuizzes = len(pending)

	uniqueUsers := make(map[string]struct{}, len(pending))
	for i := range pending {
		uniqueUsers[pending[i].UserID] = struct{}{}
	}
	stats.UsersChecked = len(uniqueUsers)

	s.logger.Info("超期扫描完成",
		zap.Int("pending_quizzes", stats.PendingQuizzes),
		zap.Int("users", stats.UsersChecked),
	)

	// 单条结果显式计入 stats：一条失败绝不影响后续条目
	for i := range pending {
		if err := s.sendReminder(ctx, &pending[i]); err != nil {
			s.logger.Error("发送提醒失败",
				zap.String("user_id", pending[i].UserID),
				zap.String("quiz_id", pending[i].QuizID),
				zap.Error(err),
			)
			stats.Errors++
			continue
		}
		stats.NotificationsSent++
	}

	s.logger.Info("测验提醒任务结束",
		zap.Int("sent", stats.NotificationsSent),
		zap.Int("errors", stats.Errors),
	)

	return stats, nil
}

// sendReminder 处理单个超期描述符：落库 + 尽力推送
func (s *reminderService) sendReminder(ctx context.Context, pending *repository.PendingQuiz) error {
	message := fmt.Sprintf(
		"Reminder: Complete quiz '%s' in %s. You need to take this quiz every 24 hours!",
		pending.QuizTitle, pending.CompanyName,
	)

	quizID := pending.QuizID
	created, err := s.notificationSvc.CreateForUsers(
		ctx,
		[]string{pending.UserID},
		message,
		model.NotificationTypeQuizReminder,
		&quizID,
	)
	if err != nil {
		return err
	}

	if len(created) > 0 {
		s.logger.Debug("提醒通知已创建",
			zap.String("notification_id", created[0].ID),
			zap.String("username", pending.UserUsername),
		)
	}

	return nil
}

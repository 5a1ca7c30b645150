package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/jyjuk/backend-internship/config"
	"github.com/jyjuk/backend-internship/internal/service"
)

// runTimeout 单次扫描的最长执行时间
const runTimeout = 10 * time.Minute

// Scheduler 后台定时任务调度器
//
// 当前只挂载一个任务：每日测验提醒扫描。表达式来自配置，
// 默认 "0 0 * * *"（每天 00:00）。每次触发使用独立的 context，
// 任务失败只记录日志，不影响后续调度。
type Scheduler struct {
	cron        *cron.Cron
	reminderSvc service.ReminderService
	logger      *zap.Logger
}

// New 创建 Scheduler 并注册测验提醒任务
func New(cfg *config.SchedulerConfig, reminderSvc service.ReminderService, logger *zap.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:        cron.New(),
		reminderSvc: reminderSvc,
		logger:      logger,
	}

	if _, err := s.cron.AddFunc(cfg.QuizReminderCron, s.runQuizReminder); err != nil {
		return nil, err
	}

	return s, nil
}

// Start 启动调度器（非阻塞）
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("定时任务调度器已启动")
}

// Stop 停止调度器并等待进行中的任务结束
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("定时任务调度器已停止")
}

func (s *Scheduler) runQuizReminder() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	stats, err := s.reminderSvc.Run(ctx)
	if err != nil {
		s.logger.Error("测验提醒任务执行失败", zap.Error(err))
		return
	}

	s.logger.Info("测验提醒任务执行完成",
		zap.Int("users_checked", stats.UsersChecked),
		zap.Int("pending_quizzes", stats.PendingQuizzes),
		zap.Int("notifications_sent", stats.NotificationsSent),
		zap.Int("errors", stats.Errors),
	)
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jyjuk/backend-internship/internal/model"
	"github.com/jyjuk/backend-internship/internal/repository"
)

func setupTestReminderService(pending []repository.PendingQuiz) (ReminderService, *repository.Repository, *fakePusher) {
	repo := newTestRepository()
	repo.Staleness = &mockStalenessRepo{pending: pending}
	pusher := newFakePusher()
	notificationSvc := NewNotificationService(repo, pusher, zap.NewNop())
	svc := NewReminderService(repo, notificationSvc, zap.NewNop())
	return svc, repo, pusher
}

func TestReminderService_Run_SinglePending(t *testing.T) {
	last := time.Now().Add(-30 * time.Hour)
	svc, repo, pusher := setupTestReminderService([]repository.PendingQuiz{
		{
			UserID:      "user-1",
			UserEmail:   "a@example.com",
			QuizID:      "quiz-1",
			QuizTitle:   "Go 基础",
			CompanyID:   "company-1",
			CompanyName: "Acme",
			LastAttempt: &last,
		},
	})

	stats, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run 应成功: %v", err)
	}
	if stats.UsersChecked != 1 || stats.PendingQuizzes != 1 || stats.NotificationsSent != 1 || stats.Errors != 0 {
		t.Errorf("期望 stats={1,1,1,0}，实际=%+v", stats)
	}

	// 落库一条提醒通知并指向测验
	list, _ := repo.Notification.ListByUser(context.Background(), "user-1", 0, 10, false)
	if len(list) != 1 {
		t.Fatalf("期望落库1条通知，实际=%d", len(list))
	}
	if list[0].Type != model.NotificationTypeQuizReminder {
		t.Errorf("期望类型=quiz_reminder，实际=%s", list[0].Type)
	}
	if list[0].RelatedEntityID == nil || *list[0].RelatedEntityID != "quiz-1" {
		t.Errorf("related_entity_id 应指向测验")
	}

	// 在线推送应同步送达
	if len(pusher.pushed["user-1"]) != 1 {
		t.Errorf("期望推送1次，实际=%d", len(pusher.pushed["user-1"]))
	}
}

func TestReminderService_Run_NoPending(t *testing.T) {
	svc, _, pusher := setupTestReminderService(nil)

	stats, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run 应成功: %v", err)
	}
	if stats.UsersChecked != 0 || stats.PendingQuizzes != 0 || stats.NotificationsSent != 0 || stats.Errors != 0 {
		t.Errorf("期望 stats 全0，实际=%+v", stats)
	}
	if len(pusher.pushed) != 0 {
		t.Errorf("无超期不应推送")
	}
}

func TestReminderService_Run_UsersDeduplicated(t *testing.T) {
	// 同一用户两个超期测验：users_checked 去重，通知逐条发送
	svc, _, pusher := setupTestReminderService([]repository.PendingQuiz{
		{UserID: "user-1", QuizID: "quiz-1", QuizTitle: "A", CompanyName: "Acme"},
		{UserID: "user-1", QuizID: "quiz-2", QuizTitle: "B", CompanyName: "Acme"},
	})

	stats, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run 应成功: %v", err)
	}
	if stats.UsersChecked != 1 {
		t.Errorf("期望去重后 users_checked=1，实际=%d", stats.UsersChecked)
	}
	if stats.PendingQuizzes != 2 || stats.NotificationsSent != 2 {
		t.Errorf("期望 pending=2 sent=2，实际=%+v", stats)
	}
	if len(pusher.pushed["user-1"]) != 2 {
		t.Errorf("期望推送2次，实际=%d", len(pusher.pushed["user-1"]))
	}
}

func TestReminderService_Run_FailureIsolation(t *testing.T) {
	// user-bad 的落库失败只计入 errors，不影响 user-ok
	svc, repo, _ := setupTestReminderService([]repository.PendingQuiz{
		{UserID: "user-bad", QuizID: "quiz-1", QuizTitle: "A", CompanyName: "Acme"},
		{UserID: "user-ok", QuizID: "quiz-2", QuizTitle: "B", CompanyName: "Acme"},
	})
	repo.Notification.(*mockNotificationRepo).failForUsers["user-bad"] = true

	stats, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("单条失败不应令 Run 整体失败: %v", err)
	}
	if stats.Errors != 1 {
		t.Errorf("期望 errors=1，实际=%d", stats.Errors)
	}
	if stats.NotificationsSent != 1 {
		t.Errorf("期望 sent=1，实际=%d", stats.NotificationsSent)
	}

	count, _ := repo.Notification.UnreadCount(context.Background(), "user-ok")
	if count != 1 {
		t.Errorf("user-ok 应收到1条通知，实际=%d", count)
	}
}

func TestReminderService_Run_SourceError(t *testing.T) {
	repo := newTestRepository()
	repo.Staleness = &mockStalenessRepo{err: errors.New("db down")}
	pusher := newFakePusher()
	notificationSvc := NewNotificationService(repo, pusher, zap.NewNop())
	svc := NewReminderService(repo, notificationSvc, zap.NewNop())

	// 候选源失败计入 stats.Errors，手动触发端仍返回统计而非 500
	stats, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("候选源失败应聚合进 stats 而非返回错误: %v", err)
	}
	if stats == nil || stats.Errors != 1 {
		t.Fatalf("期望 errors=1，实际=%+v", stats)
	}
	if stats.UsersChecked != 0 || stats.PendingQuizzes != 0 || stats.NotificationsSent != 0 {
		t.Errorf("期望其余统计为0，实际=%+v", stats)
	}
	if len(pusher.pushed) != 0 {
		t.Errorf("候选源失败不应推送")
	}
}

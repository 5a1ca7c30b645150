package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/jyjuk/backend-internship/internal/dto"
	"github.com/jyjuk/backend-internship/internal/model"
	"github.com/jyjuk/backend-internship/internal/repository"
)

func setupTestQuizService() (QuizService, *repository.Repository, *fakePusher) {
	repo := newTestRepository()
	pusher := newFakePusher()
	notificationSvc := NewNotificationService(repo, pusher, zap.NewNop())
	svc := NewQuizService(repo, notificationSvc, zap.NewNop())
	return svc, repo, pusher
}

func seedCompanyWithMembers(repo *repository.Repository, companyID string, memberIDs ...string) {
	companyRepo := repo.Company.(*mockCompanyRepo)
	companyRepo.companies[companyID] = &model.Company{ID: companyID, Name: "Acme", OwnerID: memberIDs[0]}
	for _, uid := range memberIDs {
		_ = companyRepo.AddMember(context.Background(), &model.CompanyMember{
			CompanyID: companyID,
			UserID:    uid,
		})
	}
}

// ── Create 测试 ──

func TestQuizService_Create_NotifiesMembers(t *testing.T) {
	svc, repo, pusher := setupTestQuizService()
	seedCompanyWithMembers(repo, "company-1", "creator", "member-1", "member-2")

	result, err := svc.Create(context.Background(), &dto.CreateQuizRequest{
		Title:     "Go 基础",
		CompanyID: "company-1",
	}, "creator")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.ID == "" {
		t.Errorf("测验应已落库并分配 ID")
	}
	if result.NotifiedMembers != 2 {
		t.Errorf("期望通知2人，实际=%d", result.NotifiedMembers)
	}
	if len(pusher.pushed["creator"]) != 0 {
		t.Errorf("创建者不应收到推送")
	}
	if len(pusher.pushed["member-1"]) != 1 {
		t.Errorf("成员应收到1次推送，实际=%d", len(pusher.pushed["member-1"]))
	}
}

func TestQuizService_Create_CompanyNotFound(t *testing.T) {
	svc, _, _ := setupTestQuizService()

	_, err := svc.Create(context.Background(), &dto.CreateQuizRequest{
		Title:     "Go 基础",
		CompanyID: "missing",
	}, "creator")
	if !errors.Is(err, ErrCompanyNotFound) {
		t.Errorf("期望 ErrCompanyNotFound，实际=%v", err)
	}
}

func TestQuizService_Create_NotMember(t *testing.T) {
	svc, repo, _ := setupTestQuizService()
	seedCompanyWithMembers(repo, "company-1", "member-1")

	_, err := svc.Create(context.Background(), &dto.CreateQuizRequest{
		Title:     "Go 基础",
		CompanyID: "company-1",
	}, "outsider")
	if !errors.Is(err, ErrNotMember) {
		t.Errorf("期望 ErrNotMember，实际=%v", err)
	}
}

func TestQuizService_Create_NotificationFailureIgnored(t *testing.T) {
	svc, repo, _ := setupTestQuizService()
	seedCompanyWithMembers(repo, "company-1", "creator", "member-1")
	repo.Notification.(*mockNotificationRepo).createBulkErr = errors.New("db down")

	// 通知整体失败也不能让测验创建失败
	result, err := svc.Create(context.Background(), &dto.CreateQuizRequest{
		Title:     "Go 基础",
		CompanyID: "company-1",
	}, "creator")
	if err != nil {
		t.Fatalf("通知失败不应影响创建: %v", err)
	}
	if result.NotifiedMembers != 0 {
		t.Errorf("通知失败时人数应为0，实际=%d", result.NotifiedMembers)
	}
}

// ── SubmitAttempt 测试 ──

func TestQuizService_SubmitAttempt(t *testing.T) {
	svc, repo, _ := setupTestQuizService()
	seedCompanyWithMembers(repo, "company-1", "creator", "member-1")
	repo.Quiz.(*mockQuizRepo).quizzes["quiz-1"] = &model.Quiz{
		ID:        "quiz-1",
		Title:     "Go 基础",
		CompanyID: "company-1",
	}

	result, err := svc.SubmitAttempt(context.Background(), "quiz-1", &dto.SubmitAttemptRequest{
		Score:          8,
		TotalQuestions: 10,
	}, "member-1")
	if err != nil {
		t.Fatalf("SubmitAttempt 应成功: %v", err)
	}
	if result.CompletedAt == "" {
		t.Errorf("completed_at 应由服务端填写")
	}

	last, _ := repo.QuizAttempt.LastCompletedAt(context.Background(), "member-1", "quiz-1")
	if last == nil {
		t.Errorf("答题记录应已落库")
	}
}

func TestQuizService_SubmitAttempt_NotMember(t *testing.T) {
	svc, repo, _ := setupTestQuizService()
	seedCompanyWithMembers(repo, "company-1", "creator")
	repo.Quiz.(*mockQuizRepo).quizzes["quiz-1"] = &model.Quiz{
		ID:        "quiz-1",
		CompanyID: "company-1",
	}

	_, err := svc.SubmitAttempt(context.Background(), "quiz-1", &dto.SubmitAttemptRequest{
		Score:          8,
		TotalQuestions: 10,
	}, "outsider")
	if !errors.Is(err, ErrNotMember) {
		t.Errorf("期望 ErrNotMember，实际=%v", err)
	}
}

func TestQuizService_GetByID_NotFound(t *testing.T) {
	svc, _, _ := setupTestQuizService()

	_, err := svc.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrQuizNotFound) {
		t.Errorf("期望 ErrQuizNotFound，实际=%v", err)
	}
}

package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jyjuk/backend-internship/internal/dto"
	"github.com/jyjuk/backend-internship/internal/model"
	"github.com/jyjuk/backend-internship/internal/repository"
)

// ── 测验模块业务错误 ──

var (
	ErrQuizNotFound = errors.New("测验不存在")
	ErrNotMember    = errors.New("非公司成员无法访问该测验")
)

// QuizService 测验业务接口
type QuizService interface {
	// Create 创建测验并向除创建者外的公司成员发送通知
	Create(ctx context.Context, req *dto.CreateQuizRequest, creatorID string) (*dto.QuizResponse, error)
	GetByID(ctx context.Context, id string) (*dto.QuizResponse, error)
	// SubmitAttempt 记录一次完成的答题，completed_at 取服务端当前时间
	SubmitAttempt(ctx context.Context, quizID string, req *dto.SubmitAttemptRequest, userID string) (*dto.AttemptResponse, error)
}

type quizService struct {
	repo            *repository.Repository
	notificationSvc NotificationService
	logger          *zap.Logger
}

// NewQuizService 创建 QuizService 实例
func NewQuizService(
	repo *repository.Repository,
	notificationSvc NotificationService,
	logger *zap.Logger,
) QuizService {
	return &quizService{
		repo:            repo,
		notificationSvc: notificationSvc,
		logger:          logger,
	}
}

// ────────────────────── Create ──────────────────────

func (s *quizService) Create(ctx context.Context, req *dto.CreateQuizRequest, creatorID string) (*dto.QuizResponse, error) {
	company, err := s.repo.Company.GetByID(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("查询公司失败", zap.String("id", req.CompanyID), zap.Error(err))
		return nil, err
	}

	if _, err := s.repo.Company.GetMember(ctx, req.CompanyID, creatorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotMember
		}
		s.logger.Error("查询成员关系失败", zap.Error(err))
		return nil, err
	}

	quiz := &model.Quiz{
		Title:       req.Title,
		Description: req.Description,
		CompanyID:   req.CompanyID,
		Frequency:   req.Frequency,
	}

	if err := s.repo.Quiz.Create(ctx, quiz); err != nil {
		s.logger.Error("创建测验失败", zap.Error(err))
		return nil, err
	}

	// 通知失败不影响创建结果
	notified, _ := s.notificationSvc.NotifyQuizCreated(
		ctx, quiz.ID, quiz.Title, company.ID, company.Name, creatorID,
	)

	resp := toQuizResponse(quiz)
	resp.NotifiedMembers = notified
	return resp, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *quizService) GetByID(ctx context.Context, id string) (*dto.QuizResponse, error) {
	quiz, err := s.repo.Quiz.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		s.logger.Error("查询测验失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toQuizResponse(quiz), nil
}

// ────────────────────── SubmitAttempt ──────────────────────

func (s *quizService) SubmitAttempt(
	ctx context.Context,
	quizID string,
	req *dto.SubmitAttemptRequest,
	userID string,
) (*dto.AttemptResponse, error) {
	quiz, err := s.repo.Quiz.GetByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		s.logger.Error("查询测验失败", zap.String("id", quizID), zap.Error(err))
		return nil, err
	}

	if _, err := s.repo.Company.GetMember(ctx, quiz.CompanyID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotMember
		}
		s.logger.Error("查询成员关系失败", zap.Error(err))
		return nil, err
	}

	now := time.Now().UTC()
	attempt := &model.QuizAttempt{
		UserID:         userID,
		QuizID:         quiz.ID,
		CompanyID:      quiz.CompanyID,
		Score:          req.Score,
		TotalQuestions: req.TotalQuestions,
		CompletedAt:    &now,
	}

	if err := s.repo.QuizAttempt.Create(ctx, attempt); err != nil {
		s.logger.Error("记录答题失败",
			zap.String("quiz_id", quizID),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}

	return &dto.AttemptResponse{
		ID:             attempt.ID,
		QuizID:         attempt.QuizID,
		UserID:         attempt.UserID,
		Score:          attempt.Score,
		TotalQuestions: attempt.TotalQuestions,
		CompletedAt:    now.Format(time.RFC3339),
	}, nil
}

// ── 内部辅助方法 ──

func toQuizResponse(quiz *model.Quiz) *dto.QuizResponse {
	return &dto.QuizResponse{
		ID:          quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
		CompanyID:   quiz.CompanyID,
		Frequency:   quiz.Frequency,
		CreatedAt:   quiz.CreatedAt.Format(time.RFC3339),
	}
}

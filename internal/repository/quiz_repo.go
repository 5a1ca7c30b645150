package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jyjuk/backend-internship/internal/model"
)

// QuizRepository 测验数据访问接口
type QuizRepository interface {
	Create(ctx context.Context, quiz *model.Quiz) error
	GetByID(ctx context.Context, id string) (*model.Quiz, error)
	ListByCompany(ctx context.Context, companyID string) ([]model.Quiz, error)
}

// quizRepo QuizRepository 的 GORM 实现
type quizRepo struct {
	db *gorm.DB
}

// NewQuizRepo 创建 QuizRepository 实例
func NewQuizRepo(db *gorm.DB) QuizRepository {
	return &quizRepo{db: db}
}

func (r *quizRepo) Create(ctx context.Context, quiz *model.Quiz) error {
	return r.db.WithContext(ctx).Create(quiz).Error
}

func (r *quizRepo) GetByID(ctx context.Context, id string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.db.WithContext(ctx).
		Preload("Company").
		Where("id = ?", id).
		First(&quiz).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepo) ListByCompany(ctx context.Context, companyID string) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&quizzes).Error
	if err != nil {
		return nil, err
	}
	return quizzes, nil
}

// QuizAttemptRepository 答题记录数据访问接口
type QuizAttemptRepository interface {
	Create(ctx context.Context, attempt *model.QuizAttempt) error
	// LastCompletedAt 返回用户在某测验上最近一次完成时间，从未完成时返回 nil
	LastCompletedAt(ctx context.Context, userID, quizID string) (*time.Time, error)
	ListByCompany(ctx context.Context, companyID string) ([]model.QuizAttempt, error)
}

// quizAttemptRepo QuizAttemptRepository 的 GORM 实现
type quizAttemptRepo struct {
	db *gorm.DB
}

// NewQuizAttemptRepo 创建 QuizAttemptRepository 实例
func NewQuizAttemptRepo(db *gorm.DB) QuizAttemptRepository {
	return &quizAttemptRepo{db: db}
}

func (r *quizAttemptRepo) Create(ctx context.Context, attempt *model.QuizAttempt) error {
	return r.db.WithContext(ctx).Create(attempt).Error
}

func (r *quizAttemptRepo) LastCompletedAt(ctx context.Context, userID, quizID string) (*time.Time, error) {
	var last *time.Time
	err := r.db.WithContext(ctx).
		Model(&model.QuizAttempt{}).
		Select("MAX(completed_at)").
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Scan(&last).Error
	if err != nil {
		return nil, err
	}
	return last, nil
}

func (r *quizAttemptRepo) ListByCompany(ctx context.Context, companyID string) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}
	return attempts, nil
}

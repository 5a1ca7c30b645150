package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jyjuk/backend-internship/internal/model"
)

// ReminderWindow 超期判定窗口：最近一次完成早于该窗口的 (用户, 测验) 对需要提醒
const ReminderWindow = 24 * time.Hour

// PendingQuiz 超期描述符 — 每次扫描即时计算，不落库、不跨轮缓存
type PendingQuiz struct {
	UserID       string
	UserEmail    string
	UserUsername string
	QuizID       string
	QuizTitle    string
	CompanyID    string
	CompanyName  string
	LastAttempt  *time.Time
}

// StalenessRepository 超期候选源接口
// 故意收窄为单方法，便于未来以增量/索引实现替换全量扫描，
// 而不触及调度与通知逻辑。
type StalenessRepository interface {
	// PendingQuizzes 全量扫描活跃用户可见的测验，返回超期描述符列表
	PendingQuizzes(ctx context.Context) ([]PendingQuiz, error)
}

// stalenessRepo StalenessRepository 的 GORM 实现
// 复杂度为 O(用户数 × 人均测验数)，作为基线契约保留，不做缓存。
// 最近完成时间的查询复用 QuizAttemptRepository，保证判定口径一致。
type stalenessRepo struct {
	db       *gorm.DB
	attempts QuizAttemptRepository
}

// NewStalenessRepo 创建 StalenessRepository 实例
func NewStalenessRepo(db *gorm.DB, attempts QuizAttemptRepository) StalenessRepository {
	return &stalenessRepo{db: db, attempts: attempts}
}

func (r *stalenessRepo) PendingQuizzes(ctx context.Context) ([]PendingQuiz, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Find(&users).Error; err != nil {
		return nil, err
	}

	// 扫描时刻在整轮扫描开始时取一次，保证单轮判定一致
	threshold := time.Now().UTC().Add(-ReminderWindow)

	var pending []PendingQuiz
	for i := range users {
		user := &users[i]

		quizzes, err := r.quizzesForUser(ctx, user.ID)
		if err != nil {
			return nil, err
		}

		for j := range quizzes {
			quiz := &quizzes[j]

			last, err := r.attempts.LastCompletedAt(ctx, user.ID, quiz.ID)
			if err != nil {
				return nil, err
			}

			if !NeedsReminder(last, threshold) {
				continue
			}

			companyName := "Unknown Company"
			if quiz.Company != nil {
				companyName = quiz.Company.Name
			}

			pending = append(pending, PendingQuiz{
				UserID:       user.ID,
				UserEmail:    user.Email,
				UserUsername: user.Username,
				QuizID:       quiz.ID,
				QuizTitle:    quiz.Title,
				CompanyID:    quiz.CompanyID,
				CompanyName:  companyName,
				LastAttempt:  last,
			})
		}
	}

	return pending, nil
}

// quizzesForUser 通过公司成员关系 JOIN 查询用户可见的测验。
// 用户在多个公司重复可见同一测验时按 DISTINCT 去重。
func (r *stalenessRepo) quizzesForUser(ctx context.Context, userID string) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.db.WithContext(ctx).
		Distinct("quizzes.*").
		Joins("JOIN company_members ON company_members.company_id = quizzes.company_id").
		Where("company_members.user_id = ?", userID).
		Preload("Company").
		Find(&quizzes).Error
	if err != nil {
		return nil, err
	}
	return quizzes, nil
}

// NeedsReminder 超期判定规则：从未完成，或最近完成早于阈值时刻
func NeedsReminder(lastAttempt *time.Time, threshold time.Time) bool {
	return lastAttempt == nil || lastAttempt.Before(threshold)
}

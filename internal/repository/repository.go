package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User         UserRepository
	Company      CompanyRepository
	Quiz         QuizRepository
	QuizAttempt  QuizAttemptRepository
	Notification NotificationRepository
	Staleness    StalenessRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	attempts := NewQuizAttemptRepo(db)
	return &Repository{
		User:         NewUserRepo(db),
		Company:      NewCompanyRepo(db),
		Quiz:         NewQuizRepo(db),
		QuizAttempt:  attempts,
		Notification: NewNotificationRepo(db),
		Staleness:    NewStalenessRepo(db, attempts),
	}
}

package model

import "time"

// Quiz 测验表 — 对应 quizzes
type Quiz struct {
	ID          string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title       string `gorm:"type:varchar(255);not null"                     json:"title"`
	Description string `gorm:"type:text"                                      json:"description,omitempty"`
	CompanyID   string `gorm:"type:uuid;not null;index"                       json:"company_id"`
	// Frequency 要求的答题周期（天），0 表示不限
	Frequency int `gorm:"not null;default:0" json:"frequency"`
	BaseModel

	// 关联
	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

// TableName 指定表名
func (Quiz) TableName() string { return "quizzes" }

// QuizAttempt 答题记录表 — 对应 quiz_attempts
// CompletedAt 为空表示中途放弃，过期检查只统计已完成的记录
type QuizAttempt struct {
	ID             string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID         string     `gorm:"type:uuid;not null;index:idx_attempt_user_quiz" json:"user_id"`
	QuizID         string     `gorm:"type:uuid;not null;index:idx_attempt_user_quiz" json:"quiz_id"`
	CompanyID      string     `gorm:"type:uuid;not null"                             json:"company_id"`
	Score          int        `gorm:"not null"                                       json:"score"`
	TotalQuestions int        `gorm:"not null"                                       json:"total_questions"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	BaseModel
}

// TableName 指定表名
func (QuizAttempt) TableName() string { return "quiz_attempts" }

package dto

// ── 测验模块 DTO ──

// CreateQuizRequest 创建测验请求
type CreateQuizRequest struct {
	Title       string `json:"title"       binding:"required,min=2,max=255"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	CompanyID   string `json:"company_id"  binding:"required,uuid"`
	Frequency   int    `json:"frequency"   binding:"omitempty,min=0"`
}

// QuizResponse 测验信息响应
type QuizResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	CompanyID   string `json:"company_id"`
	Frequency   int    `json:"frequency"`
	CreatedAt   string `json:"created_at"`
	// NotifiedMembers 创建时收到通知的成员数（仅创建响应中返回）
	NotifiedMembers int `json:"notified_members,omitempty"`
}

// SubmitAttemptRequest 提交答题结果请求
type SubmitAttemptRequest struct {
	Score          int `json:"score"           binding:"min=0"`
	TotalQuestions int `json:"total_questions" binding:"required,min=1"`
}

// AttemptResponse 答题记录响应
type AttemptResponse struct {
	ID             string `json:"id"`
	QuizID         string `json:"quiz_id"`
	UserID         string `json:"user_id"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"total_questions"`
	CompletedAt    string `json:"completed_at"`
}

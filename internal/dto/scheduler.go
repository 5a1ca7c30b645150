package dto

// ── 定时任务模块 DTO ──

// ReminderStats 一次提醒扫描的汇总结果
type ReminderStats struct {
	// UsersChecked 本次扫描命中的去重用户数
	UsersChecked int `json:"users_checked"`
	// PendingQuizzes 超期 (用户, 测验) 对总数
	PendingQuizzes int `json:"pending_quizzes"`
	// NotificationsSent 成功创建并投递的提醒数
	NotificationsSent int `json:"notifications_sent"`
	// Errors 处理失败（已隔离，不中断批次）的条目数
	Errors int `json:"errors"`
}

// TriggerReminderResponse 手动触发提醒任务的响应
type TriggerReminderResponse struct {
	Message string        `json:"message"`
	Stats   ReminderStats `json:"stats"`
}

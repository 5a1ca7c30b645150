package model

import "time"

// ── 通知类型 ──

const (
	NotificationTypeQuizCreated  = "quiz_created"
	NotificationTypeQuizReminder = "quiz_reminder"
)

// Notification 通知消息表 — 对应 notifications
// 不变式：IsRead == false 时 ReadAt 必为 nil；已读通知不会回到未读。
// 本模块只创建和标记已读，从不删除通知。
type Notification struct {
	ID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID  string `gorm:"type:uuid;not null;index"                       json:"user_id"`
	Message string `gorm:"type:varchar(500);not null"                     json:"message"`
	Type    string `gorm:"column:notification_type;type:varchar(50);not null" json:"notification_type"`
	IsRead  bool   `gorm:"not null;default:false;index"                   json:"is_read"`
	ReadAt  *time.Time `json:"read_at,omitempty"`
	// RelatedEntityID 触发通知的业务实体（目前为测验）ID
	RelatedEntityID *string `gorm:"type:uuid" json:"related_entity_id,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Notification) TableName() string { return "notifications" }

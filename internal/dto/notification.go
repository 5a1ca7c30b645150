package dto

import "time"

// ── 通知模块 DTO ──

// NotificationListRequest 通知列表查询参数
type NotificationListRequest struct {
	Skip       int  `form:"skip"        binding:"omitempty,min=0"`
	Limit      int  `form:"limit"       binding:"omitempty,min=1,max=100"`
	UnreadOnly bool `form:"unread_only"`
}

// NotificationResponse 通知信息响应
type NotificationResponse struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	Message         string     `json:"message"`
	Type            string     `json:"notification_type"`
	IsRead          bool       `json:"is_read"`
	ReadAt          *time.Time `json:"read_at"`
	RelatedEntityID *string    `json:"related_entity_id"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// NotificationList 通知列表响应
// Total 为过滤条件下的总数；TotalCount 为当前未读数。
// 两者由两次独立查询产生，并发写入下可能短暂不一致。
type NotificationList struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int64                  `json:"total"`
	TotalCount    int64                  `json:"total_count"`
}

// NotificationEvent WebSocket 推送的新通知事件
type NotificationEvent struct {
	Type         string               `json:"type"`
	Notification NotificationResponse `json:"notification"`
}

// UnreadCountResponse 未读数响应
type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}

// MarkAllReadResponse 全部标记已读响应
type MarkAllReadResponse struct {
	Message      string `json:"message"`
	UpdatedCount int64  `json:"updated_count"`
}

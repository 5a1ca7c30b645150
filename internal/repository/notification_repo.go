package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jyjuk/backend-internship/internal/model"
)

// NotificationRepository 通知数据访问接口
type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
	// CreateBulk 单条 INSERT 批量创建，任一失败则整批失败
	CreateBulk(ctx context.Context, notifications []model.Notification) ([]model.Notification, error)
	// GetByIDForUser 按 ID 查询且校验归属，未命中返回 gorm.ErrRecordNotFound
	GetByIDForUser(ctx context.Context, id, userID string) (*model.Notification, error)
	ListByUser(ctx context.Context, userID string, skip, limit int, unreadOnly bool) ([]model.Notification, error)
	CountByUser(ctx context.Context, userID string, unreadOnly bool) (int64, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	Update(ctx context.Context, notification *model.Notification) error
	// MarkAllRead 一条 UPDATE 将用户全部未读置为已读，返回受影响行数
	MarkAllRead(ctx context.Context, userID string, readAt time.Time) (int64, error)
}

// notificationRepo NotificationRepository 的 GORM 实现
type notificationRepo struct {
	db *gorm.DB
}

// NewNotificationRepo 创建 NotificationRepository 实例
func NewNotificationRepo(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, notification *model.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepo) CreateBulk(ctx context.Context, notifications []model.Notification) ([]model.Notification, error) {
	if len(notifications) == 0 {
		return notifications, nil
	}
	if err := r.db.WithContext(ctx).Create(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepo) GetByIDForUser(ctx context.Context, id, userID string) (*model.Notification, error) {
	var notification model.Notification
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&notification).Error
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepo) ListByUser(ctx context.Context, userID string, skip, limit int, unreadOnly bool) ([]model.Notification, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}

	var notifications []model.Notification
	err := q.Order("created_at DESC").
		Offset(skip).Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepo) CountByUser(ctx context.Context, userID string, unreadOnly bool) (int64, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *notificationRepo) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return r.CountByUser(ctx, userID, true)
}

func (r *notificationRepo) Update(ctx context.Context, notification *model.Notification) error {
	return r.db.WithContext(ctx).Save(notification).Error
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, userID string, readAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": readAt,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

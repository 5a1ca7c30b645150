package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jyjuk/backend-internship/internal/dto"
	"github.com/jyjuk/backend-internship/internal/model"
	"github.com/jyjuk/backend-internship/internal/repository"
)

// ── 通知模块业务错误 ──

var (
	ErrNotificationNotFound = errors.New("通知不存在")
)

// NotificationPusher 在线推送出口（由 ws.Hub 实现）
// 推送永远是尽力而为的：实现不返回错误，失败在内部消化。
type NotificationPusher interface {
	PushToUser(userID string, payload interface{})
	PushToMany(userIDs []string, payload interface{})
}

// NotificationService 通知业务接口
type NotificationService interface {
	// CreateForUsers 批量落库后向各用户尽力推送，推送结果不影响返回值
	CreateForUsers(ctx context.Context, userIDs []string, message, notificationType string, relatedEntityID *string) ([]model.Notification, error)
	ListForUser(ctx context.Context, userID string, skip, limit int, unreadOnly bool) (*dto.NotificationList, error)
	GetUnreadCount(ctx context.Context, userID string) (*dto.UnreadCountResponse, error)
	// MarkRead 幂等：已读通知再次标记原样返回；非本人通知视同不存在
	MarkRead(ctx context.Context, notificationID, userID string) (*dto.NotificationResponse, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	// NotifyQuizCreated 向除创建者外的公司成员发送新测验通知，返回通知人数
	NotifyQuizCreated(ctx context.Context, quizID, quizTitle, companyID, companyName, creatorID string) (int, error)
}

type notificationService struct {
	repo   *repository.Repository
	hub    NotificationPusher
	logger *zap.Logger
}

// NewNotificationService 创建 NotificationService 实例
func NewNotificationService(repo *repository.Repository, hub NotificationPusher, logger *zap.Logger) NotificationService {
	return &notificationService{repo: repo, hub: hub, logger: logger}
}

// ────────────────────── CreateForUsers ──────────────────────

func (s *notificationService) CreateForUsers(
	ctx context.Context,
	userIDs []string,
	message, notificationType string,
	relatedEntityID *string,
) ([]model.Notification, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	notifications := make([]model.Notification, 0, len(userIDs))
	for _, userID := range userIDs {
		notifications = append(notifications, model.Notification{
			UserID:          userID,
			Message:         message,
			Type:            notificationType,
			RelatedEntityID: relatedEntityID,
		})
	}

	created, err := s.repo.Notification.CreateBulk(ctx, notifications)
	if err != nil {
		s.logger.Error("批量创建通知失败",
			zap.Int("count", len(notifications)),
			zap.Error(err),
		)
		return nil, err
	}

	// 落库成功后尽力推送，任何投递失败都不回滚写入
	for i := range created {
		s.pushNotification(&created[i])
	}

	return created, nil
}

// ────────────────────── ListForUser ──────────────────────

func (s *notificationService) ListForUser(
	ctx context.Context,
	userID string,
	skip, limit int,
	unreadOnly bool,
) (*dto.NotificationList, error) {
	if limit <= 0 {
		limit = 50
	}

	notifications, err := s.repo.Notification.ListByUser(ctx, userID, skip, limit, unreadOnly)
	if err != nil {
		s.logger.Error("查询通知列表失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	// total 与 unread_count 是两次独立查询，并发写入间隙内可能短暂不一致
	total, err := s.repo.Notification.CountByUser(ctx, userID, unreadOnly)
	if err != nil {
		s.logger.Error("统计通知总数失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	unread, err := s.repo.Notification.UnreadCount(ctx, userID)
	if err != nil {
		s.logger.Error("统计未读数失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		result = append(result, *toNotificationResponse(&notifications[i]))
	}

	return &dto.NotificationList{
		Notifications: result,
		Total:         total,
		TotalCount:    unread,
	}, nil
}

// ────────────────────── GetUnreadCount ──────────────────────

func (s *notificationService) GetUnreadCount(ctx context.Context, userID string) (*dto.UnreadCountResponse, error) {
	unread, err := s.repo.Notification.UnreadCount(ctx, userID)
	if err != nil {
		s.logger.Error("统计未读数失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return &dto.UnreadCountResponse{UnreadCount: unread}, nil
}

// ────────────────────── MarkRead ──────────────────────

func (s *notificationService) MarkRead(ctx context.Context, notificationID, userID string) (*dto.NotificationResponse, error) {
	notification, err := s.repo.Notification.GetByIDForUser(ctx, notificationID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		s.logger.Error("查询通知失败", zap.String("id", notificationID), zap.Error(err))
		return nil, err
	}

	// 已读状态只有 未读→已读 一条单向转移
	if !notification.IsRead {
		now := time.Now().UTC()
		notification.IsRead = true
		notification.ReadAt = &now

		if err := s.repo.Notification.Update(ctx, notification); err != nil {
			s.logger.Error("标记已读失败", zap.String("id", notificationID), zap.Error(err))
			return nil, err
		}
	}

	return toNotificationResponse(notification), nil
}

// ────────────────────── MarkAllRead ──────────────────────

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	updated, err := s.repo.Notification.MarkAllRead(ctx, userID, time.Now().UTC())
	if err != nil {
		s.logger.Error("全部标记已读失败", zap.String("user_id", userID), zap.Error(err))
		return 0, err
	}
	return updated, nil
}

// ────────────────────── NotifyQuizCreated ──────────────────────

func (s *notificationService) NotifyQuizCreated(
	ctx context.Context,
	quizID, quizTitle, companyID, companyName, creatorID string,
) (int, error) {
	members, err := s.repo.Company.ListMembers(ctx, companyID)
	if err != nil {
		// 通知失败不阻塞测验创建，调用方只关心人数
		s.logger.Error("查询公司成员失败",
			zap.String("company_id", companyID),
			zap.Error(err),
		)
		return 0, nil
	}

	memberIDs := make([]string, 0, len(members))
	for i := range members {
		if members[i].UserID != creatorID {
			memberIDs = append(memberIDs, members[i].UserID)
		}
	}

	if len(memberIDs) == 0 {
		return 0, nil
	}

	message := fmt.Sprintf("New quiz '%s' has been created in %s. Take it now!", quizTitle, companyName)

	if _, err := s.CreateForUsers(ctx, memberIDs, message, model.NotificationTypeQuizCreated, &quizID); err != nil {
		s.logger.Error("创建新测验通知失败",
			zap.String("quiz_id", quizID),
			zap.Error(err),
		)
		return 0, nil
	}

	s.logger.Info("新测验通知已发送",
		zap.String("quiz_id", quizID),
		zap.String("company_id", companyID),
		zap.Int("notified", len(memberIDs)),
	)

	return len(memberIDs), nil
}

// ── 内部辅助方法 ──

func (s *notificationService) pushNotification(n *model.Notification) {
	s.hub.PushToUser(n.UserID, dto.NotificationEvent{
		Type:         "new_notification",
		Notification: *toNotificationResponse(n),
	})
}

func toNotificationResponse(n *model.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:              n.ID,
		UserID:          n.UserID,
		Message:         n.Message,
		Type:            n.Type,
		IsRead:          n.IsRead,
		ReadAt:          n.ReadAt,
		RelatedEntityID: n.RelatedEntityID,
		CreatedAt:       n.CreatedAt,
		UpdatedAt:       n.UpdatedAt,
	}
}

package services

import (
	"encoding/json"

	"teamlink/internal/models"
	"teamlink/internal/repository"
	"teamlink/pkg/cache"
	"teamlink/pkg/errors"
	"teamlink/pkg/logger"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NotificationService 站内通知服务。
// 未读数走Redis缓存加速，数据库始终是数据源
type NotificationService struct {
	db            *gorm.DB
	log           *logrus.Logger
	notifications *repository.Repository[models.Notification]
	unreadCache   *cache.UnreadCache
}

// NewNotificationService 创建通知服务
func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{
		db:            db,
		log:           logger.GetLogger(),
		notifications: repository.MustNew[models.Notification](db),
	}
}

// WithCache 挂接未读数缓存，未挂接时全部回源数据库
func (s *NotificationService) WithCache(unreadCache *cache.UnreadCache) *NotificationService {
	s.unreadCache = unreadCache
	return s
}

// Create 创建通知
func (s *NotificationService) Create(userID, message string) (*models.Notification, error) {
	if userID == "" || message == "" {
		return nil, errors.NewValidationError("通知的用户和内容不能为空")
	}

	notification := &models.Notification{
		UserID:  userID,
		Message: message,
	}
	if _, err := s.notifications.Add(notification); err != nil {
		return nil, err
	}

	s.invalidateUnread(userID)
	s.publish(notification)
	return notification, nil
}

// publish 向Redis频道推送新通知，供WebSocket在线推送，失败只记日志
func (s *NotificationService) publish(notification *models.Notification) {
	if s.unreadCache == nil {
		return
	}
	payload, err := json.Marshal(notification)
	if err != nil {
		s.log.Warnf("序列化通知失败: %v", err)
		return
	}
	if err := s.unreadCache.PublishNotification(notification.UserID, payload); err != nil {
		s.log.Warnf("推送通知到Redis频道失败: %v", err)
	}
}

// ListByUser 分页查询用户通知，新的在前
func (s *NotificationService) ListByUser(userID string, page, pageSize int) ([]*models.Notification, int64, error) {
	var notifications []*models.Notification
	var total int64

	query := s.db.Model(&models.Notification{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

// MarkRead 将单条通知置为已读，只能操作自己的通知
func (s *NotificationService) MarkRead(id, userID string) error {
	res := s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.NewNotFoundError("通知不存在")
	}

	s.invalidateUnread(userID)
	return nil
}

// MarkAllRead 将用户全部通知置为已读
func (s *NotificationService) MarkAllRead(userID string) error {
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
	if err != nil {
		return err
	}

	s.invalidateUnread(userID)
	return nil
}

// CountUnread 查询用户未读通知数，优先命中缓存
func (s *NotificationService) CountUnread(userID string) (int64, error) {
	if s.unreadCache != nil {
		count, hit, err := s.unreadCache.GetUnread(userID)
		if err == nil && hit {
			return count, nil
		}
		if err != nil {
			s.log.Warnf("读取未读数缓存失败，回源数据库: %v", err)
		}
	}

	count, err := s.notifications.Count(repository.Where("user_id = ? AND is_read = ?", userID, false))
	if err != nil {
		return 0, err
	}

	if s.unreadCache != nil {
		if err := s.unreadCache.SetUnread(userID, count); err != nil {
			s.log.Warnf("写入未读数缓存失败: %v", err)
		}
	}
	return count, nil
}

// invalidateUnread 失效未读数缓存，失败只记日志
func (s *NotificationService) invalidateUnread(userID string) {
	if s.unreadCache == nil {
		return
	}
	if err := s.unreadCache.Invalidate(userID); err != nil {
		s.log.WithFields(logrus.Fields{"user_id": userID}).Warnf("失效未读数缓存失败: %v", err)
	}
}

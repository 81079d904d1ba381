package services

import (
	"time"

	"teamlink/internal/models"
	"teamlink/pkg/logger"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MaintenanceService 数据一致性修复任务。
// 帖子删除对回复是NoAction，回复计数也可能因异常流程偏差，
// 这里提供显式修复步骤并由cron周期执行
type MaintenanceService struct {
	db   *gorm.DB
	log  *logrus.Logger
	cron *cron.Cron

	notificationRetention time.Duration
}

// NewMaintenanceService 创建修复任务服务
func NewMaintenanceService(db *gorm.DB) *MaintenanceService {
	return &MaintenanceService{
		db:                    db,
		log:                   logger.GetLogger(),
		cron:                  cron.New(),
		notificationRetention: 30 * 24 * time.Hour,
	}
}

// Start 启动周期修复任务
func (s *MaintenanceService) Start() error {
	if _, err := s.cron.AddFunc("@hourly", func() {
		if err := s.RunOnce(); err != nil {
			s.log.Errorf("数据修复任务执行失败: %v", err)
		}
	}); err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info("数据修复调度器已启动")
	return nil
}

// Stop 停止调度器
func (s *MaintenanceService) Stop() {
	s.cron.Stop()
	s.log.Info("数据修复调度器已停止")
}

// RunOnce 执行一轮全部修复步骤
func (s *MaintenanceService) RunOnce() error {
	if err := s.CleanupOrphanResponses(); err != nil {
		return err
	}
	if err := s.RepairReplyCounts(); err != nil {
		return err
	}
	return s.CleanupReadNotifications()
}

// CleanupOrphanResponses 清理父帖已删除的孤儿回复
func (s *MaintenanceService) CleanupOrphanResponses() error {
	res := s.db.Exec(`DELETE FROM response_messages
		WHERE post_message_id NOT IN (SELECT id FROM post_messages)`)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		s.log.Infof("清理孤儿回复 %d 条", res.RowsAffected)
	}
	return nil
}

// RepairReplyCounts 以回复行数为准重算帖子计数
func (s *MaintenanceService) RepairReplyCounts() error {
	res := s.db.Exec(`UPDATE post_messages SET reply_count = (
		SELECT COUNT(*) FROM response_messages
		WHERE response_messages.post_message_id = post_messages.id)`)
	if res.Error != nil {
		return res.Error
	}
	return nil
}

// CleanupReadNotifications 删除超过保留期的已读通知
func (s *MaintenanceService) CleanupReadNotifications() error {
	cutoff := time.Now().Add(-s.notificationRetention)
	res := s.db.Where("is_read = ? AND created_at < ?", true, cutoff).
		Delete(&models.Notification{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		s.log.Infof("清理过期已读通知 %d 条", res.RowsAffected)
	}
	return nil
}

package services

import (
	"fmt"
	"strings"

	"teamlink/internal/models"
	"teamlink/internal/repository"
	"teamlink/pkg/errors"
	"teamlink/pkg/logger"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ResponseService 帖子回复服务
type ResponseService struct {
	db        *gorm.DB
	log       *logrus.Logger
	responses *repository.Repository[models.ResponseMessage]
	posts     *repository.Repository[models.PostMessage]
}

// NewResponseService 创建回复服务
func NewResponseService(db *gorm.DB) *ResponseService {
	return &ResponseService{
		db:        db,
		log:       logger.GetLogger(),
		responses: repository.MustNew[models.ResponseMessage](db),
		posts:     repository.MustNew[models.PostMessage](db),
	}
}

// CreateResponseInput 回复参数
type CreateResponseInput struct {
	ReplyText string `json:"reply_text" binding:"required"`
	FileRef   string `json:"file_ref"`
}

// Create 回复帖子。回复行、父帖计数与楼主通知在同一事务内完成
func (s *ResponseService) Create(postID, userID string, input *CreateResponseInput) (*models.ResponseMessage, error) {
	if input == nil || strings.TrimSpace(input.ReplyText) == "" {
		return nil, errors.NewValidationError("回复内容不能为空")
	}

	post, ok, err := s.posts.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NewNotFoundError("帖子不存在")
	}

	response := &models.ResponseMessage{
		PostMessageID: post.ID,
		UserID:        userID,
		ReplyText:     input.ReplyText,
		FileRef:       input.FileRef,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.responses.WithTx(tx).Add(response); err != nil {
			return err
		}

		if err := tx.Model(&models.PostMessage{}).
			Where("id = ?", post.ID).
			Update("reply_count", gorm.Expr("reply_count + 1")).Error; err != nil {
			return err
		}

		// 回复自己的帖子不发通知
		if post.UserID == userID {
			return nil
		}

		notification := &models.Notification{
			UserID:  post.UserID,
			Message: "你的帖子收到了新回复",
			Payload: datatypes.JSON(fmt.Sprintf(`{"post_message_id":%q,"response_message_id":%q}`, post.ID, response.ID)),
		}
		if err := tx.Create(notification).Error; err != nil {
			return err
		}
		return tx.Model(&models.ResponseMessage{}).
			Where("id = ?", response.ID).
			Update("notification_id", notification.ID).Error
	})
	if err != nil {
		return nil, err
	}

	return response, nil
}

// ListByPost 查询帖子的全部回复
func (s *ResponseService) ListByPost(postID string) ([]models.ResponseMessage, error) {
	return s.responses.GetAll(repository.Where("post_message_id = ?", postID))
}

// Delete 删除回复并同步父帖计数。父帖可能已不存在（孤儿回复），此时只删回复
func (s *ResponseService) Delete(id string) error {
	response, ok, err := s.responses.GetByID(id)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ResponseMessage{}, "id = ?", response.ID).Error; err != nil {
			return err
		}

		res := tx.Model(&models.PostMessage{}).
			Where("id = ? AND reply_count > 0", response.PostMessageID).
			Update("reply_count", gorm.Expr("reply_count - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			s.log.WithFields(logrus.Fields{
				"response_id": response.ID,
				"post_id":     response.PostMessageID,
			}).Debug("删除孤儿回复，父帖不存在或计数已为零")
		}
		return nil
	})
}

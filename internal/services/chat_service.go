package services

import (
	"strings"

	"teamlink/internal/models"
	"teamlink/internal/repository"
	"teamlink/pkg/errors"

	"gorm.io/gorm"
)

// ChatService 私聊服务
type ChatService struct {
	db    *gorm.DB
	chats *repository.Repository[models.Chat]
	users *repository.Repository[models.User]
}

// NewChatService 创建私聊服务
func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{
		db:    db,
		chats: repository.MustNew[models.Chat](db),
		users: repository.MustNew[models.User](db),
	}
}

// SendChatInput 发送私聊参数
type SendChatInput struct {
	ReceiverUserID string `json:"receiver_user_id" binding:"required"`
	Message        string `json:"message" binding:"required"`
	FileRef        string `json:"file_ref"`
}

// Send 发送私聊消息，发送方和接收方必须是不同的既有用户
func (s *ChatService) Send(senderUserID string, input *SendChatInput) (*models.Chat, error) {
	if input == nil || strings.TrimSpace(input.Message) == "" {
		return nil, errors.NewValidationError("消息内容不能为空")
	}
	if senderUserID == input.ReceiverUserID {
		return nil, errors.NewValidationError("不能给自己发送私聊消息")
	}

	receiverExists, err := s.users.Exists(repository.Where("id = ?", input.ReceiverUserID))
	if err != nil {
		return nil, err
	}
	if !receiverExists {
		return nil, errors.NewNotFoundError("接收人不存在")
	}

	chat := &models.Chat{
		SenderUserID:   senderUserID,
		ReceiverUserID: input.ReceiverUserID,
		Message:        input.Message,
		FileRef:        input.FileRef,
	}
	return s.chats.Add(chat)
}

// ListConversation 查询两人之间的会话，按时间升序
func (s *ChatService) ListConversation(userA, userB string) ([]models.Chat, error) {
	var chats []models.Chat
	err := s.db.
		Where("(sender_user_id = ? AND receiver_user_id = ?) OR (sender_user_id = ? AND receiver_user_id = ?)",
			userA, userB, userB, userA).
		Order("created_at ASC").
		Find(&chats).Error
	if err != nil {
		return nil, err
	}
	return chats, nil
}

// MarkConversationRead 将某个发送方发来的消息全部置为已读
func (s *ChatService) MarkConversationRead(receiverUserID, senderUserID string) error {
	return s.db.Model(&models.Chat{}).
		Where("receiver_user_id = ? AND sender_user_id = ? AND is_read = ?", receiverUserID, senderUserID, false).
		Update("is_read", true).Error
}

// CountUnread 统计用户未读私聊数
func (s *ChatService) CountUnread(receiverUserID string) (int64, error) {
	return s.chats.Count(repository.Where("receiver_user_id = ? AND is_read = ?", receiverUserID, false))
}

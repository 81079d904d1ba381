package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Chat 私聊消息，发送方与接收方都限制用户删除
type Chat struct {
	ID             string    `json:"id" gorm:"type:varchar(36);primarykey"`
	SenderUserID   string    `json:"sender_user_id" gorm:"type:varchar(36);not null;index"`
	ReceiverUserID string    `json:"receiver_user_id" gorm:"type:varchar(36);not null;index"`
	Message        string    `json:"message" gorm:"not null;size:2000"`
	FileRef        string    `json:"file_ref,omitempty" gorm:"size:255"`
	IsRead         bool      `json:"is_read" gorm:"not null;default:false"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName 表名
func (c *Chat) TableName() string {
	return "chats"
}

// BeforeCreate 未提供主键时生成UUID
func (c *Chat) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ResponseMessage 帖子回复。父帖删除不自动级联，孤儿行由修复任务清理
type ResponseMessage struct {
	ID             string    `json:"id" gorm:"type:varchar(36);primarykey"`
	PostMessageID  string    `json:"post_message_id" gorm:"type:varchar(36);not null;index"`
	UserID         string    `json:"user_id" gorm:"type:varchar(36);not null;index"`
	ReplyText      string    `json:"reply_text" gorm:"not null;size:2000"`
	FileRef        string    `json:"file_ref,omitempty" gorm:"size:255"`
	NotificationID *string   `json:"notification_id" gorm:"type:varchar(36)"`
	RepliedAt      time.Time `json:"replied_at" gorm:"autoCreateTime"`
}

// TableName 表名
func (r *ResponseMessage) TableName() string {
	return "response_messages"
}

// BeforeCreate 未提供主键时生成UUID
func (r *ResponseMessage) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

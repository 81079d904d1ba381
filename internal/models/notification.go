package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Notification 站内通知，随所属用户级联删除
type Notification struct {
	ID        string         `json:"id" gorm:"type:varchar(36);primarykey"`
	UserID    string         `json:"user_id" gorm:"type:varchar(36);not null;index"`
	Message   string         `json:"message" gorm:"not null;size:500"`
	Payload   datatypes.JSON `json:"payload,omitempty" gorm:"type:json"` // 来源实体等附加信息
	IsRead    bool           `json:"is_read" gorm:"not null;default:false;index"`
	CreatedAt time.Time      `json:"created_at"`
}

// TableName 表名
func (n *Notification) TableName() string {
	return "notifications"
}

// BeforeCreate 未提供主键时生成UUID
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

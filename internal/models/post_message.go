package models

// PostMessage 帖子消息
type PostMessage struct {
	BaseModel
	TenantID    string `json:"tenant_id" gorm:"type:varchar(36);not null;index"`
	UserID      string `json:"user_id" gorm:"type:varchar(36);not null;index"`
	Description string `json:"description" gorm:"not null;size:2000"`
	Department  string `json:"department" gorm:"size:100;index"`
	FileRef     string `json:"file_ref,omitempty" gorm:"size:255"`
	ReplyCount  int64  `json:"reply_count" gorm:"not null;default:0"` // 与回复行数保持一致，偏差由修复任务纠正
}

// TableName 表名
func (p *PostMessage) TableName() string {
	return "post_messages"
}

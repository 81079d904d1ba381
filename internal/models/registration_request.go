package models

// RegistrationRequest 注册申请，经管理员审批后开通账号
type RegistrationRequest struct {
	BaseModel
	Username          string  `json:"username" gorm:"not null;size:50"`
	Email             string  `json:"email" gorm:"not null;size:100;index"`
	PasswordHash      string  `json:"-" gorm:"not null;size:255"`
	Role              string  `json:"role" gorm:"not null;size:20"`       // 申请的角色，与用户角色是两套枚举
	Department        string  `json:"department" gorm:"size:100;index"`   // 申请的部门
	CompanyName       string  `json:"company_name" gorm:"size:100"`
	Status            string  `json:"status" gorm:"not null;default:'pending';size:20;index"`
	RejectReason      string  `json:"reject_reason,omitempty" gorm:"size:500"`
	AssignedManagerID *string `json:"assigned_manager_id" gorm:"type:varchar(36)"` // 审批人
	NotificationID    *string `json:"notification_id" gorm:"type:varchar(36)"`
}

// TableName 表名
func (r *RegistrationRequest) TableName() string {
	return "registration_requests"
}

// 注册申请状态常量，accepted/rejected 为终态
const (
	RegistrationStatusPending  = "pending"
	RegistrationStatusAccepted = "accepted"
	RegistrationStatusRejected = "rejected"
)

// 申请角色常量，由审批流程翻译为用户角色
const (
	RequestedRoleManager     = "manager"
	RequestedRoleDeptManager = "dept_manager"
	RequestedRoleEmployee    = "employee"
)

// IsPending 是否仍处于待审批状态
func (r *RegistrationRequest) IsPending() bool {
	return r.Status == RegistrationStatusPending
}

// IsValidRegistrationStatus 校验申请状态取值
func IsValidRegistrationStatus(status string) bool {
	switch status {
	case RegistrationStatusPending, RegistrationStatusAccepted, RegistrationStatusRejected:
		return true
	}
	return false
}

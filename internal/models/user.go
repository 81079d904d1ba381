package models

import (
	"golang.org/x/crypto/bcrypt"
)

// User 用户模型
type User struct {
	BaseModel
	TenantID              *string `json:"tenant_id" gorm:"type:varchar(36);index"` // 平台管理员无租户
	DepartmentName        string  `json:"department_name" gorm:"size:100;index"`
	Username              string  `json:"username" gorm:"not null;size:50;index"`
	Email                 string  `json:"email" gorm:"unique;not null;size:100;index"`
	PasswordHash          string  `json:"-" gorm:"not null;size:255"`
	Role                  string  `json:"role" gorm:"not null;default:'employee';size:20"`
	RegistrationRequestID *string `json:"registration_request_id" gorm:"type:varchar(36)"` // 由审批创建的用户回指注册申请
}

// TableName 表名
func (u *User) TableName() string {
	return "users"
}

// 用户角色常量
const (
	UserRoleAdmin       = "admin"
	UserRoleManager     = "manager"
	UserRoleDeptManager = "dept_manager"
	UserRoleEmployee    = "employee"
)

// SetPassword 设置密码 - 数据操作方法
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

// CheckPassword 验证密码 - 数据操作方法
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// IsPlatformAdmin 是否平台管理员（无租户归属的admin）
func (u *User) IsPlatformAdmin() bool {
	return u.TenantID == nil && u.Role == UserRoleAdmin
}

// CanApproveRegistrations 是否有审批注册申请的权限
func (u *User) CanApproveRegistrations() bool {
	return u.Role == UserRoleAdmin || u.Role == UserRoleManager
}

// IsValidUserRole 校验用户角色取值
func IsValidUserRole(role string) bool {
	switch role {
	case UserRoleAdmin, UserRoleManager, UserRoleDeptManager, UserRoleEmployee:
		return true
	}
	return false
}

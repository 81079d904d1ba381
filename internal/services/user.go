package services

import (
	"fmt"

	"teamlink/internal/models"
	"teamlink/internal/repository"
	"teamlink/pkg/errors"

	"gorm.io/gorm"
)

// UserService 用户服务
type UserService struct {
	db    *gorm.DB
	users *repository.Repository[models.User]
}

// UserStats 用户统计信息
type UserStats struct {
	Total     int64 `json:"total"`
	Managers  int64 `json:"managers"`
	Employees int64 `json:"employees"`
	NoTenant  int64 `json:"no_tenant"`
}

// NewUserService 创建用户服务
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{
		db:    db,
		users: repository.MustNew[models.User](db),
	}
}

// ========== 基础CRUD方法 ==========

// Create 管理员直接创建用户（不经注册审批）
func (s *UserService) Create(tenantID *string, departmentName, username, email, password, role string) (*models.User, error) {
	if err := s.ValidateCreateParams(username, email, password, role); err != nil {
		return nil, err
	}

	// 检查租户是否存在
	if tenantID != nil {
		var tenantCount int64
		s.db.Model(&models.Tenant{}).Where("id = ?", *tenantID).Count(&tenantCount)
		if tenantCount == 0 {
			return nil, errors.NewValidationError("租户不存在")
		}
	}

	// 检查邮箱是否重复
	taken, err := s.users.Exists(repository.Where("email = ?", email))
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errors.NewConflictError("邮箱已存在")
	}

	user := &models.User{
		TenantID:       tenantID,
		DepartmentName: departmentName,
		Username:       username,
		Email:          email,
		Role:           role,
	}

	if err := user.SetPassword(password); err != nil {
		return nil, fmt.Errorf("密码加密失败: %v", err)
	}

	return s.users.Add(user)
}

// GetByID 根据ID获取用户
func (s *UserService) GetByID(id string) (*models.User, error) {
	user, ok, err := s.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NewNotFoundError("用户不存在")
	}
	return user, nil
}

// GetByEmail 根据邮箱获取用户
func (s *UserService) GetByEmail(email string) (*models.User, error) {
	user, ok, err := s.users.Get(repository.Where("email = ?", email))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NewNotFoundError("用户不存在")
	}
	return user, nil
}

// GetWithFiltersAndPage 组合查询（分页版本）
func (s *UserService) GetWithFiltersAndPage(tenantID *string, department, role, keyword string, page, pageSize int) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	query := s.db.Model(&models.User{})
	if tenantID != nil {
		query = query.Where("tenant_id = ?", *tenantID)
	}
	if department != "" {
		query = query.Where("department_name = ?", department)
	}
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if keyword != "" {
		pattern := fmt.Sprintf("%%%s%%", keyword)
		query = query.Where("username LIKE ? OR email LIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Offset(offset).Limit(pageSize).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// Update 更新用户资料
func (s *UserService) Update(id, departmentName, username, role string) (*models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if role != "" && !models.IsValidUserRole(role) {
		return nil, errors.NewValidationError("角色只能是admin、manager、dept_manager或employee")
	}

	if departmentName != "" {
		user.DepartmentName = departmentName
	}
	if username != "" {
		user.Username = username
	}
	if role != "" {
		user.Role = role
	}

	return s.users.Update(user)
}

// ResetPassword 重置密码
func (s *UserService) ResetPassword(id, newPassword string) (*models.User, error) {
	if len(newPassword) < 6 {
		return nil, errors.NewValidationError("密码长度不能少于6位")
	}

	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := user.SetPassword(newPassword); err != nil {
		return nil, fmt.Errorf("密码加密失败: %v", err)
	}

	return s.users.Update(user)
}

// Delete 删除用户。通知随之级联删除，存在帖子、回复或私聊时拒绝
func (s *UserService) Delete(id string) error {
	return s.users.Delete(id)
}

// GetStats 获取用户统计
func (s *UserService) GetStats() (*UserStats, error) {
	stats := &UserStats{}

	if err := s.db.Model(&models.User{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	s.db.Model(&models.User{}).Where("role = ?", models.UserRoleManager).Count(&stats.Managers)
	s.db.Model(&models.User{}).Where("role = ?", models.UserRoleEmployee).Count(&stats.Employees)
	s.db.Model(&models.User{}).Where("tenant_id IS NULL").Count(&stats.NoTenant)

	return stats, nil
}

// ========== 验证相关方法 ==========

// ValidateCreateParams 验证创建用户的参数
func (s *UserService) ValidateCreateParams(username, email, password, role string) error {
	if len(username) < 3 || len(username) > 50 {
		return errors.NewValidationError("用户名长度必须在3-50个字符之间")
	}
	if !validEmail(email) {
		return errors.NewValidationError("邮箱格式不正确")
	}
	if len(password) < 6 || len(password) > 50 {
		return errors.NewValidationError("密码长度必须在6-50位之间")
	}
	if !models.IsValidUserRole(role) {
		return errors.NewValidationError("角色只能是admin、manager、dept_manager或employee")
	}
	return nil
}

// validEmail 验证邮箱格式
func validEmail(email string) bool {
	if len(email) < 5 || len(email) > 100 {
		return false
	}
	at := -1
	dot := -1
	for i, r := range email {
		if r == '@' {
			at = i
		}
		if r == '.' {
			dot = i
		}
	}
	return at > 0 && dot > at
}

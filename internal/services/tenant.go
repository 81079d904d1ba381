package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"teamlink/internal/models"
	"teamlink/internal/repository"
	"teamlink/pkg/errors"

	"gorm.io/gorm"
)

// TenantService 租户服务
type TenantService struct {
	db      *gorm.DB
	tenants *repository.Repository[models.Tenant]
}

// NewTenantService 创建租户服务
func NewTenantService(db *gorm.DB) *TenantService {
	return &TenantService{
		db:      db,
		tenants: repository.MustNew[models.Tenant](db),
	}
}

// Create 创建租户，名称在活跃租户内唯一
func (s *TenantService) Create(name string) (*models.Tenant, error) {
	if err := s.validateName(name); err != nil {
		return nil, err
	}

	taken, err := s.tenants.Exists(repository.Where("name = ? AND status = ?",
		name, models.TenantStatusActive))
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errors.NewConflictError("租户名称已被使用")
	}

	tenant := &models.Tenant{
		Name:   name,
		Status: models.TenantStatusActive,
	}
	return s.tenants.Add(tenant)
}

// GetByID 根据ID获取租户
func (s *TenantService) GetByID(id string) (*models.Tenant, error) {
	tenant, ok, err := s.tenants.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NewNotFoundError("租户不存在")
	}
	return tenant, nil
}

// GetWithFiltersAndPage 组合查询（分页版本）
func (s *TenantService) GetWithFiltersAndPage(status, keyword string, page, pageSize int) ([]*models.Tenant, int64, error) {
	var tenants []*models.Tenant
	var total int64

	query := s.db.Model(&models.Tenant{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if keyword != "" {
		query = query.Where("name LIKE ?", fmt.Sprintf("%%%s%%", keyword))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Offset(offset).Limit(pageSize).Find(&tenants).Error; err != nil {
		return nil, 0, err
	}

	return tenants, total, nil
}

// Update 更新租户名称
func (s *TenantService) Update(id, name string) (*models.Tenant, error) {
	if err := s.validateName(name); err != nil {
		return nil, err
	}

	tenant, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	tenant.Name = name
	return s.tenants.Update(tenant)
}

// Delete 删除租户。存在用户或帖子时由关系策略拒绝
func (s *TenantService) Delete(id string) error {
	return s.tenants.Delete(id)
}

// Activate 启用租户
func (s *TenantService) Activate(id string) (*models.Tenant, error) {
	return s.setStatus(id, models.TenantStatusActive)
}

// Deactivate 停用租户
func (s *TenantService) Deactivate(id string) (*models.Tenant, error) {
	return s.setStatus(id, models.TenantStatusInactive)
}

func (s *TenantService) setStatus(id, status string) (*models.Tenant, error) {
	tenant, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	tenant.Status = status
	return s.tenants.Update(tenant)
}

// validateName 校验租户名称
func (s *TenantService) validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.NewValidationError("租户名称不能为空")
	}
	if utf8.RuneCountInString(name) > 100 {
		return errors.NewValidationError("租户名称长度不能超过100个字符")
	}
	return nil
}

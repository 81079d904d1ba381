package services

import (
	"teamlink/internal/models"
	"teamlink/pkg/errors"

	"gorm.io/gorm"
)

// ReportService 注册申请的统计查询，不走泛型仓储契约
type ReportService struct {
	db *gorm.DB
}

// NewReportService 创建报表服务
func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// DepartmentCount 部门申请量统计
type DepartmentCount struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}

// CountByDepartment 按部门分组统计注册申请数。
// 没有申请的部门不会出现在结果里，空部门同样排除
func (s *ReportService) CountByDepartment() (map[string]int64, error) {
	var rows []DepartmentCount
	err := s.db.Model(&models.RegistrationRequest{}).
		Select("department, COUNT(*) as count").
		Where("department <> ''").
		Group("department").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]int64, len(rows))
	for _, row := range rows {
		result[row.Department] = row.Count
	}
	return result, nil
}

// GetByStatus 按状态过滤注册申请，顺序由存储决定
func (s *ReportService) GetByStatus(status string) ([]models.RegistrationRequest, error) {
	if !models.IsValidRegistrationStatus(status) {
		return nil, errors.NewValidationError("状态只能是pending、accepted或rejected")
	}

	var requests []models.RegistrationRequest
	if err := s.db.Where("status = ?", status).Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

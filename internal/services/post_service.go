package services

import (
	"strings"

	"teamlink/internal/models"
	"teamlink/internal/repository"
	"teamlink/pkg/errors"

	"gorm.io/gorm"
)

// PostService 帖子服务
type PostService struct {
	db    *gorm.DB
	posts *repository.Repository[models.PostMessage]
}

// NewPostService 创建帖子服务
func NewPostService(db *gorm.DB) *PostService {
	return &PostService{
		db:    db,
		posts: repository.MustNew[models.PostMessage](db),
	}
}

// CreatePostInput 发帖参数
type CreatePostInput struct {
	Description string `json:"description" binding:"required"`
	Department  string `json:"department"`
	FileRef     string `json:"file_ref"`
}

// Create 发布帖子
func (s *PostService) Create(tenantID, userID string, input *CreatePostInput) (*models.PostMessage, error) {
	if input == nil || strings.TrimSpace(input.Description) == "" {
		return nil, errors.NewValidationError("帖子内容不能为空")
	}

	post := &models.PostMessage{
		TenantID:    tenantID,
		UserID:      userID,
		Description: input.Description,
		Department:  input.Department,
		FileRef:     input.FileRef,
	}
	return s.posts.Add(post)
}

// GetByID 查询单个帖子
func (s *PostService) GetByID(id string) (*models.PostMessage, error) {
	post, ok, err := s.posts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NewNotFoundError("帖子不存在")
	}
	return post, nil
}

// GetWithFiltersAndPage 租户内组合查询（分页版本）
func (s *PostService) GetWithFiltersAndPage(tenantID, department string, page, pageSize int) ([]*models.PostMessage, int64, error) {
	var posts []*models.PostMessage
	var total int64

	query := s.db.Model(&models.PostMessage{}).Where("tenant_id = ?", tenantID)
	if department != "" {
		query = query.Where("department = ?", department)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// UpdateDescription 修改帖子内容，仅作者本人可改
func (s *PostService) UpdateDescription(id, userID, description string) (*models.PostMessage, error) {
	if strings.TrimSpace(description) == "" {
		return nil, errors.NewValidationError("帖子内容不能为空")
	}

	post, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, errors.NewConflictError("只有作者才能修改帖子")
	}

	post.Description = description
	return s.posts.Update(post)
}

// Delete 删除帖子。回复不自动级联（NoAction），孤儿回复由修复任务清理
func (s *PostService) Delete(id string) error {
	return s.posts.Delete(id)
}

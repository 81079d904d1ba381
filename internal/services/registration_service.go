package services

import (
	"fmt"
	"strings"

	"teamlink/internal/models"
	"teamlink/internal/repository"
	"teamlink/pkg/errors"
	"teamlink/pkg/logger"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RegistrationService 注册审批服务。
// 审批状态机只有 pending -> accepted | rejected 两条出边，终态不可再变
type RegistrationService struct {
	db       *gorm.DB
	log      *logrus.Logger
	requests *repository.Repository[models.RegistrationRequest]
	users    *repository.Repository[models.User]
}

// NewRegistrationService 创建注册审批服务
func NewRegistrationService(db *gorm.DB) *RegistrationService {
	return &RegistrationService{
		db:       db,
		log:      logger.GetLogger(),
		requests: repository.MustNew[models.RegistrationRequest](db),
		users:    repository.MustNew[models.User](db),
	}
}

// roleMapping 申请角色 -> 用户角色的翻译表。
// 两套枚举刻意分离，翻译只发生在这一处；admin永远不能通过注册获得
var roleMapping = map[string]string{
	models.RequestedRoleManager:     models.UserRoleManager,
	models.RequestedRoleDeptManager: models.UserRoleDeptManager,
	models.RequestedRoleEmployee:    models.UserRoleEmployee,
}

// MapRequestedRole 将申请角色翻译为用户角色，未知取值落到员工
func MapRequestedRole(requested string) string {
	if role, ok := roleMapping[requested]; ok {
		return role
	}
	return models.UserRoleEmployee
}

// SubmitRegistrationInput 提交注册申请的参数
type SubmitRegistrationInput struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	Role        string `json:"role"`
	Department  string `json:"department" binding:"required"`
	CompanyName string `json:"company_name"`
}

// Submit 提交注册申请，生成待审批记录
func (s *RegistrationService) Submit(input *SubmitRegistrationInput) (*models.RegistrationRequest, error) {
	if input == nil {
		return nil, errors.NewValidationError("申请内容不能为空")
	}
	if err := s.validateSubmitInput(input); err != nil {
		return nil, err
	}

	// 同一邮箱已有待审批申请时不允许重复提交
	pendingExists, err := s.requests.Exists(repository.Where("email = ? AND status = ?",
		input.Email, models.RegistrationStatusPending))
	if err != nil {
		return nil, err
	}
	if pendingExists {
		return nil, errors.NewConflictError("该邮箱已有待审批的注册申请")
	}

	// 邮箱已被正式账号占用
	emailTaken, err := s.users.Exists(repository.Where("email = ?", input.Email))
	if err != nil {
		return nil, err
	}
	if emailTaken {
		return nil, errors.NewConflictError("该邮箱已被注册")
	}

	// 提交时即完成密码散列，明文不落库
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("密码加密失败: %v", err)
	}

	request := &models.RegistrationRequest{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Role:         input.Role,
		Department:   input.Department,
		CompanyName:  input.CompanyName,
		Status:       models.RegistrationStatusPending,
	}

	if _, err := s.requests.Add(request); err != nil {
		s.log.Errorf("创建注册申请失败: %v", err)
		return nil, err
	}

	return request, nil
}

// Accept 批准注册申请并开通账号。
// 状态写入以读到的pending为条件，并发的第二次审批命中零行即报冲突；
// 用户行与状态变更在同一事务内，要么都可见要么都不可见
func (s *RegistrationService) Accept(requestID string, approver *models.User) (*models.User, error) {
	if approver == nil {
		return nil, errors.NewValidationError("审批人不能为空")
	}

	request, ok, err := s.requests.GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NewNotFoundError("注册申请不存在")
	}
	if !request.IsPending() {
		return nil, errors.NewConflictError("注册申请已处理，不能重复审批")
	}

	user := &models.User{
		TenantID:              approver.TenantID,
		DepartmentName:        request.Department,
		Username:              request.Username,
		Email:                 request.Email,
		PasswordHash:          request.PasswordHash,
		Role:                  MapRequestedRole(request.Role),
		RegistrationRequestID: &request.ID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// 条件写：仅当状态仍为pending时才能转入accepted
		res := tx.Model(&models.RegistrationRequest{}).
			Where("id = ? AND status = ?", request.ID, models.RegistrationStatusPending).
			Updates(map[string]interface{}{
				"status":              models.RegistrationStatusAccepted,
				"assigned_manager_id": approver.ID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.NewConflictError("注册申请已被其他审批处理")
		}

		if _, err := s.users.WithTx(tx).Add(user); err != nil {
			return err
		}

		// 激活通知与申请回链在同一事务内写入
		notification := &models.Notification{
			UserID:  user.ID,
			Message: fmt.Sprintf("欢迎加入，%s！你的账号已开通，部门：%s", user.Username, user.DepartmentName),
			Payload: datatypes.JSON(fmt.Sprintf(`{"registration_request_id":%q}`, request.ID)),
		}
		if err := tx.Create(notification).Error; err != nil {
			return err
		}
		return tx.Model(&models.RegistrationRequest{}).
			Where("id = ?", request.ID).
			Update("notification_id", notification.ID).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": request.ID,
		"user_id":    user.ID,
		"approver":   approver.ID,
		"role":       user.Role,
	}).Info("注册申请已批准")

	return user, nil
}

// Reject 驳回注册申请，记录原因，不产生任何用户行
func (s *RegistrationService) Reject(requestID string, reason string) (*models.RegistrationRequest, error) {
	request, ok, err := s.requests.GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NewNotFoundError("注册申请不存在")
	}
	if !request.IsPending() {
		return nil, errors.NewConflictError("注册申请已处理，不能重复审批")
	}

	res := s.db.Model(&models.RegistrationRequest{}).
		Where("id = ? AND status = ?", request.ID, models.RegistrationStatusPending).
		Updates(map[string]interface{}{
			"status":        models.RegistrationStatusRejected,
			"reject_reason": reason,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, errors.NewConflictError("注册申请已被其他审批处理")
	}

	s.log.WithFields(logrus.Fields{
		"request_id": request.ID,
		"email":      request.Email,
		"reason":     reason,
	}).Info("注册申请已驳回")

	request.Status = models.RegistrationStatusRejected
	request.RejectReason = reason
	return request, nil
}

// GetByID 查询单个注册申请
func (s *RegistrationService) GetByID(requestID string) (*models.RegistrationRequest, error) {
	request, ok, err := s.requests.GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NewNotFoundError("注册申请不存在")
	}
	return request, nil
}

// ListByStatus 按状态过滤注册申请，顺序由存储决定
func (s *RegistrationService) ListByStatus(status string) ([]models.RegistrationRequest, error) {
	if !models.IsValidRegistrationStatus(status) {
		return nil, errors.NewValidationError("状态只能是pending、accepted或rejected")
	}
	return s.requests.GetAll(repository.Where("status = ?", status))
}

// validateSubmitInput 校验提交参数
func (s *RegistrationService) validateSubmitInput(input *SubmitRegistrationInput) error {
	if strings.TrimSpace(input.Username) == "" {
		return errors.NewValidationError("用户名不能为空")
	}
	if len(input.Username) < 3 || len(input.Username) > 50 {
		return errors.NewValidationError("用户名长度必须在3-50个字符之间")
	}
	if !strings.Contains(input.Email, "@") || !strings.Contains(input.Email, ".") || len(input.Email) < 5 || len(input.Email) > 100 {
		return errors.NewValidationError("邮箱格式不正确")
	}
	if len(input.Password) < 6 {
		return errors.NewValidationError("密码长度不能少于6位")
	}
	if len(input.Password) > 50 {
		return errors.NewValidationError("密码长度不能超过50位")
	}
	if strings.TrimSpace(input.Department) == "" {
		return errors.NewValidationError("部门不能为空")
	}
	return nil
}

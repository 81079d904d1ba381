package services

import (
	"testing"

	"teamlink/internal/models"
	"teamlink/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 创建内存数据库并迁移全部实体表
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.RegistrationRequest{},
		&models.PostMessage{},
		&models.ResponseMessage{},
		&models.Notification{},
		&models.Chat{},
	)
	require.NoError(t, err)
	return db
}

// seedTenant 插入测试租户
func seedTenant(t *testing.T, db *gorm.DB, name string) *models.Tenant {
	t.Helper()
	tenant := &models.Tenant{Name: name, Status: models.TenantStatusActive}
	require.NoError(t, db.Create(tenant).Error)
	return tenant
}

// seedUser 插入测试用户
func seedUser(t *testing.T, db *gorm.DB, username, email, role string, tenantID *string) *models.User {
	t.Helper()
	user := &models.User{
		TenantID:     tenantID,
		Username:     username,
		Email:        email,
		PasswordHash: "hash",
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func validSubmitInput() *SubmitRegistrationInput {
	return &SubmitRegistrationInput{
		Username:    "zhangsan",
		Email:       "zhangsan@example.com",
		Password:    "secret123",
		Role:        models.RequestedRoleEmployee,
		Department:  "研发部",
		CompanyName: "示例公司",
	}
}

func TestMapRequestedRole(t *testing.T) {
	assert.Equal(t, models.UserRoleManager, MapRequestedRole(models.RequestedRoleManager))
	assert.Equal(t, models.UserRoleDeptManager, MapRequestedRole(models.RequestedRoleDeptManager))
	assert.Equal(t, models.UserRoleEmployee, MapRequestedRole(models.RequestedRoleEmployee))

	// 未知取值落到员工，admin不在翻译表里
	assert.Equal(t, models.UserRoleEmployee, MapRequestedRole("admin"))
	assert.Equal(t, models.UserRoleEmployee, MapRequestedRole("超级管理员"))
	assert.Equal(t, models.UserRoleEmployee, MapRequestedRole(""))
}

func TestSubmitCreatesPendingRequest(t *testing.T) {
	db := newTestDB(t)
	svc := NewRegistrationService(db)

	request, err := svc.Submit(validSubmitInput())
	require.NoError(t, err)
	assert.NotEmpty(t, request.ID)
	assert.Equal(t, models.RegistrationStatusPending, request.Status)

	// 密码提交时即散列，明文不落库
	assert.NotEqual(t, "secret123", request.PasswordHash)
	assert.NotEmpty(t, request.PasswordHash)
}

func TestSubmitValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewRegistrationService(db)

	cases := []struct {
		name   string
		mutate func(*SubmitRegistrationInput)
	}{
		{"用户名为空", func(in *SubmitRegistrationInput) { in.Username = "  " }},
		{"用户名过短", func(in *SubmitRegistrationInput) { in.Username = "ab" }},
		{"邮箱格式错误", func(in *SubmitRegistrationInput) { in.Email = "not-an-email" }},
		{"密码过短", func(in *SubmitRegistrationInput) { in.Password = "123" }},
		{"部门为空", func(in *SubmitRegistrationInput) { in.Department = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validSubmitInput()
			tc.mutate(input)
			_, err := svc.Submit(input)
			require.Error(t, err)
			assert.True(t, errors.IsValidation(err))
		})
	}

	_, err := svc.Submit(nil)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestSubmitRejectsDuplicatePending(t *testing.T) {
	db := newTestDB(t)
	svc := NewRegistrationService(db)

	_, err := svc.Submit(validSubmitInput())
	require.NoError(t, err)

	_, err = svc.Submit(validSubmitInput())
	require.Error(t, err)
	assert.True(t, errors.IsConflict(err))
}

func TestSubmitRejectsTakenEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewRegistrationService(db)
	seedUser(t, db, "zhangsan", "zhangsan@example.com", models.UserRoleEmployee, nil)

	_, err := svc.Submit(validSubmitInput())
	require.Error(t, err)
	assert.True(t, errors.IsConflict(err))
}

func TestAcceptCreatesUserInApproverTenant(t *testing.T) {
	db := newTestDB(t)
	svc := NewRegistrationService(db)
	tenant := seedTenant(t, db, "研发中心")
	approver := seedUser(t, db, "manager", "manager@example.com", models.UserRoleManager, &tenant.ID)

	input := validSubmitInput()
	input.Role = models.RequestedRoleDeptManager
	request, err := svc.Submit(input)
	require.NoError(t, err)

	user, err := svc.Accept(request.ID, approver)
	require.NoError(t, err)

	// 新用户落在审批人的租户，角色经过翻译，部门取自申请
	require.NotNil(t, user.TenantID)
	assert.Equal(t, tenant.ID, *user.TenantID)
	assert.Equal(t, models.UserRoleDeptManager, user.Role)
	assert.Equal(t, "研发部", user.DepartmentName)
	require.NotNil(t, user.RegistrationRequestID)
	assert.Equal(t, request.ID, *user.RegistrationRequestID)

	// 申请转入终态并记录审批人和通知回链
	var reloaded models.RegistrationRequest
	require.NoError(t, db.First(&reloaded, "id = ?", request.ID).Error)
	assert.Equal(t, models.RegistrationStatusAccepted, reloaded.Status)
	require.NotNil(t, reloaded.AssignedManagerID)
	assert.Equal(t, approver.ID, *reloaded.AssignedManagerID)
	require.NotNil(t, reloaded.NotificationID)

	// 激活通知发给新用户
	var notification models.Notification
	require.NoError(t, db.First(&notification, "id = ?", *reloaded.NotificationID).Error)
	assert.Equal(t, user.ID, notification.UserID)
}

func TestAcceptIsTerminal(t *testing.T) {
	db := newTestDB(t)
	svc := NewRegistrationService(db)
	tenant := seedTenant(t, db, "研发中心")
	approver := seedUser(t, db, "manager", "manager@example.com", models.UserRoleManager, &tenant.ID)

	request, err := svc.Submit(validSubmitInput())
	require.NoError(t, err)

	_, err = svc.Accept(request.ID, approver)
	require.NoError(t, err)

	// 终态不可再审批
	_, err = svc.Accept(request.ID, approver)
	require.Error(t, err)
	assert.True(t, errors.IsConflict(err))

	_, err = svc.Reject(request.ID, "重复驳回")
	require.Error(t, err)
	assert.True(t, errors.IsConflict(err))

	// 用户只开通一次
	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "zhangsan@example.com").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

// registerStatusFlip 在下一次registration_requests的更新执行前，
// 用同一连接把该申请改成目标状态，模拟读到pending之后被并发审批抢先
func registerStatusFlip(t *testing.T, db *gorm.DB, requestID, status string) {
	t.Helper()
	fired := false
	err := db.Callback().Update().Before("gorm:update").Register("test_status_flip", func(tx *gorm.DB) {
		if fired || tx.Statement.Table != "registration_requests" {
			return
		}
		fired = true
		_, execErr := tx.Statement.ConnPool.ExecContext(tx.Statement.Context,
			"UPDATE registration_requests SET status = ? WHERE id = ?", status, requestID)
		require.NoError(t, execErr)
	})
	require.NoError(t, err)
}

func TestAcceptLosesRaceToConcurrentApproval(t *testing.T) {
	db := newTestDB(t)
	svc := NewRegistrationService(db)
	tenant := seedTenant(t, db, "研发中心")
	approver := seedUser(t, db, "manager", "manager@example.com", models.UserRoleManager, &tenant.ID)

	request, err := svc.Submit(validSubmitInput())
	require.NoError(t, err)

	// 通过pending预检后、条件写执行前，状态被另一次审批改走
	registerStatusFlip(t, db, request.ID, models.RegistrationStatusRejected)

	_, err = svc.Accept(request.ID, approver)
	require.Error(t, err)
	assert.True(t, errors.IsConflict(err))
	assert.Contains(t, err.Error(), "已被其他审批")

	// 条件写零行命中导致整个事务回滚，不产生用户
	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestRejectLosesRaceToConcurrentApproval(t *testing.T) {
	db := newTestDB(t)
	svc := NewRegistrationService(db)

	request, err := svc.Submit(validSubmitInput())
	require.NoError(t, err)

	registerStatusFlip(t, db, request.ID, models.RegistrationStatusAccepted)

	_, err = svc.Reject(request.ID, "资料不全")
	require.Error(t, err)
	assert.True(t, errors.IsConflict(err))
	assert.Contains(t, err.Error(), "已被其他审批")

	// 抢先的审批结果保留，驳回原因不落库
	var reloaded models.RegistrationRequest
	require.NoError(t, db.First(&reloaded, "id = ?", request.ID).Error)
	assert.Equal(t, models.RegistrationStatusAccepted, reloaded.Status)
	assert.Empty(t, reloaded.RejectReason)
}

func TestAcceptMissingRequest(t *testing.T) {
	db := newTestDB(t)
	svc := NewRegistrationService(db)
	approver := seedUser(t, db, "manager", "manager@example.com", models.UserRoleManager, nil)

	_, err := svc.Accept("no-such-id", approver)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))

	_, err = svc.Accept("whatever", nil)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestRejectRecordsReasonWithoutUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewRegistrationService(db)

	request, err := svc.Submit(validSubmitInput())
	require.NoError(t, err)

	rejected, err := svc.Reject(request.ID, "部门信息不完整")
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationStatusRejected, rejected.Status)
	assert.Equal(t, "部门信息不完整", rejected.RejectReason)

	// 驳回不开通任何账号
	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	// 驳回同样是终态
	_, err = svc.Reject(request.ID, "再次驳回")
	require.Error(t, err)
	assert.True(t, errors.IsConflict(err))
}

func TestListByStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewRegistrationService(db)

	first, err := svc.Submit(validSubmitInput())
	require.NoError(t, err)

	second := validSubmitInput()
	second.Email = "lisi@example.com"
	second.Username = "lisi"
	_, err = svc.Submit(second)
	require.NoError(t, err)

	_, err = svc.Reject(first.ID, "资料不全")
	require.NoError(t, err)

	pending, err := svc.ListByStatus(models.RegistrationStatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	rejected, err := svc.ListByStatus(models.RegistrationStatusRejected)
	require.NoError(t, err)
	assert.Len(t, rejected, 1)

	_, err = svc.ListByStatus("unknown")
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

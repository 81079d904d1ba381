package services

import (
	"testing"

	"teamlink/internal/models"
	"teamlink/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	tenant := seedTenant(t, db, "研发中心")

	user, err := svc.Create(&tenant.ID, "研发部", "zhangsan", "zhangsan@example.com", "secret123", models.UserRoleEmployee)
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.True(t, user.CheckPassword("secret123"))
	assert.False(t, user.CheckPassword("wrong"))
}

func TestCreateUserValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	_, err := svc.Create(nil, "", "ab", "a@b.cn", "secret123", models.UserRoleEmployee)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))

	_, err = svc.Create(nil, "", "zhangsan", "bad-email", "secret123", models.UserRoleEmployee)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))

	_, err = svc.Create(nil, "", "zhangsan", "a@b.com", "123", models.UserRoleEmployee)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))

	_, err = svc.Create(nil, "", "zhangsan", "a@b.com", "secret123", "superuser")
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))

	unknownTenant := "no-such-tenant"
	_, err = svc.Create(&unknownTenant, "", "zhangsan", "a@b.com", "secret123", models.UserRoleEmployee)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	_, err := svc.Create(nil, "", "zhangsan", "zhangsan@example.com", "secret123", models.UserRoleEmployee)
	require.NoError(t, err)

	_, err = svc.Create(nil, "", "lisi", "zhangsan@example.com", "secret123", models.UserRoleEmployee)
	require.Error(t, err)
	assert.True(t, errors.IsConflict(err))
}

func TestGetByEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	seedUser(t, db, "zhangsan", "zhangsan@example.com", models.UserRoleEmployee, nil)

	user, err := svc.GetByEmail("zhangsan@example.com")
	require.NoError(t, err)
	assert.Equal(t, "zhangsan", user.Username)

	_, err = svc.GetByEmail("nobody@example.com")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestUpdateUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	created := seedUser(t, db, "zhangsan", "zhangsan@example.com", models.UserRoleEmployee, nil)

	updated, err := svc.Update(created.ID, "市场部", "", models.UserRoleDeptManager)
	require.NoError(t, err)
	assert.Equal(t, "市场部", updated.DepartmentName)
	assert.Equal(t, models.UserRoleDeptManager, updated.Role)
	assert.Equal(t, "zhangsan", updated.Username)

	_, err = svc.Update(created.ID, "", "", "superuser")
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))

	_, err = svc.Update("no-such-id", "市场部", "", "")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestGetWithFiltersAndPage(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	tenant := seedTenant(t, db, "研发中心")

	u1 := seedUser(t, db, "zhangsan", "zhangsan@example.com", models.UserRoleManager, &tenant.ID)
	u1.DepartmentName = "研发部"
	require.NoError(t, db.Save(u1).Error)
	u2 := seedUser(t, db, "lisi", "lisi@example.com", models.UserRoleEmployee, &tenant.ID)
	u2.DepartmentName = "研发部"
	require.NoError(t, db.Save(u2).Error)
	seedUser(t, db, "wangwu", "wangwu@example.com", models.UserRoleEmployee, nil)

	users, total, err := svc.GetWithFiltersAndPage(&tenant.ID, "", "", "", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, users, 2)

	users, total, err = svc.GetWithFiltersAndPage(&tenant.ID, "研发部", models.UserRoleManager, "", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, users, 1)
	assert.Equal(t, "zhangsan", users[0].Username)

	_, total, err = svc.GetWithFiltersAndPage(nil, "", "", "wang", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestResetPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	created := seedUser(t, db, "zhangsan", "zhangsan@example.com", models.UserRoleEmployee, nil)

	updated, err := svc.ResetPassword(created.ID, "newsecret")
	require.NoError(t, err)
	assert.True(t, updated.CheckPassword("newsecret"))

	_, err = svc.ResetPassword(created.ID, "123")
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestUserStats(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	tenant := seedTenant(t, db, "研发中心")

	seedUser(t, db, "admin", "admin@example.com", models.UserRoleAdmin, nil)
	seedUser(t, db, "manager", "manager@example.com", models.UserRoleManager, &tenant.ID)
	seedUser(t, db, "zhangsan", "zhangsan@example.com", models.UserRoleEmployee, &tenant.ID)

	stats, err := svc.GetStats()
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.Total)
	assert.EqualValues(t, 1, stats.Managers)
	assert.EqualValues(t, 1, stats.Employees)
	assert.EqualValues(t, 1, stats.NoTenant)
}

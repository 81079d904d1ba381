package main

import (
	"fmt"

	"teamlink/internal/database"
	"teamlink/internal/models"
	"teamlink/pkg/config"
	"teamlink/pkg/logger"

	"gorm.io/gorm"
)

// seedData 初始化种子数据
func seedData() error {
	appLogger := logger.GetLogger()
	appLogger.Info("Starting seed data initialization...")

	db := database.GetDB()

	if err := createPlatformAdmin(db); err != nil {
		return fmt.Errorf("创建平台管理员失败: %v", err)
	}

	appLogger.Info("Seed data initialization completed successfully")
	return nil
}

// createPlatformAdmin 创建平台管理员
// 平台管理员不属于任何租户，重复执行时跳过创建
func createPlatformAdmin(db *gorm.DB) error {
	cfg := config.GetConfig()

	var count int64
	db.Model(&models.User{}).
		Where("tenant_id IS NULL AND role = ?", models.UserRoleAdmin).
		Count(&count)
	if count > 0 {
		logger.GetLogger().Info("平台管理员已存在，跳过创建")
		return nil
	}

	user := &models.User{
		TenantID: nil,
		Username: cfg.Seed.AdminUsername,
		Email:    cfg.Seed.AdminEmail,
		Role:     models.UserRoleAdmin,
	}

	if err := user.SetPassword(cfg.Seed.AdminPassword); err != nil {
		return fmt.Errorf("设置密码失败: %v", err)
	}

	if err := db.Create(user).Error; err != nil {
		return err
	}

	logger.GetLogger().Infof("平台管理员创建成功 - 用户名: %s", cfg.Seed.AdminUsername)
	return nil
}

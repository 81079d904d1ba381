package handlers

import (
	"teamlink/internal/services"
	"teamlink/pkg/pagination"
	"teamlink/pkg/response"

	"github.com/gin-gonic/gin"
)

type CreateUserRequest struct {
	TenantID       *string `json:"tenant_id"`
	DepartmentName string  `json:"department_name"`
	Username       string  `json:"username" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	Password       string  `json:"password" binding:"required"`
	Role           string  `json:"role" binding:"required"`
}

type UpdateUserRequest struct {
	DepartmentName string `json:"department_name"`
	Username       string `json:"username"`
	Role           string `json:"role"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required"`
}

type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// ========== 基础CRUD方法 ==========

// Create 创建用户
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	user, err := h.service.Create(req.TenantID, req.DepartmentName, req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, user)
}

// GetByID 获取用户
func (h *UserHandler) GetByID(c *gin.Context) {
	user, err := h.service.GetByID(c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, user)
}

// GetAll 获取用户列表
func (h *UserHandler) GetAll(c *gin.Context) {
	pageParams := pagination.ParsePageParams(c)

	// 支持按租户、部门、角色筛选和关键词搜索
	var tenantID *string
	if value := c.Query("tenant_id"); value != "" {
		tenantID = &value
	}
	department := c.Query("department")
	role := c.Query("role")
	keyword := c.Query("keyword")

	users, total, err := h.service.GetWithFiltersAndPage(tenantID, department, role, keyword, pageParams.Page, pageParams.PageSize)
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}

	pageInfo := pagination.NewPageInfo(pageParams, total)
	response.SuccessWithPage(c, users, pageInfo)
}

// Update 更新用户
func (h *UserHandler) Update(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	user, err := h.service.Update(c.Param("id"), req.DepartmentName, req.Username, req.Role)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, user)
}

// Delete 删除用户
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, "删除成功", nil)
}

// ResetPassword 重置密码
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	if _, err := h.service.ResetPassword(c.Param("id"), req.NewPassword); err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "密码重置成功", nil)
}

// GetStats 获取用户统计
func (h *UserHandler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats()
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}
	response.Success(c, stats)
}

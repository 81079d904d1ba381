package handlers

import (
	"teamlink/internal/services"
	"teamlink/pkg/pagination"
	"teamlink/pkg/response"

	"github.com/gin-gonic/gin"
)

type CreateTenantRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateTenantRequest struct {
	Name string `json:"name" binding:"required"`
}

type TenantHandler struct {
	service *services.TenantService
}

func NewTenantHandler(service *services.TenantService) *TenantHandler {
	return &TenantHandler{service: service}
}

// Create 创建租户
func (h *TenantHandler) Create(c *gin.Context) {
	var req CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	tenant, err := h.service.Create(req.Name)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, tenant)
}

// GetByID 获取租户
func (h *TenantHandler) GetByID(c *gin.Context) {
	tenant, err := h.service.GetByID(c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, tenant)
}

// GetAll 获取租户列表
func (h *TenantHandler) GetAll(c *gin.Context) {
	pageParams := pagination.ParsePageParams(c)
	status := c.Query("status")
	keyword := c.Query("keyword")

	tenants, total, err := h.service.GetWithFiltersAndPage(status, keyword, pageParams.Page, pageParams.PageSize)
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}

	pageInfo := pagination.NewPageInfo(pageParams, total)
	response.SuccessWithPage(c, tenants, pageInfo)
}

// Update 更新租户
func (h *TenantHandler) Update(c *gin.Context) {
	var req UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	tenant, err := h.service.Update(c.Param("id"), req.Name)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, tenant)
}

// Delete 删除租户。仍有用户或帖子时返回冲突
func (h *TenantHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, "删除成功", nil)
}

// Activate 启用租户
func (h *TenantHandler) Activate(c *gin.Context) {
	tenant, err := h.service.Activate(c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, tenant)
}

// Deactivate 停用租户
func (h *TenantHandler) Deactivate(c *gin.Context) {
	tenant, err := h.service.Deactivate(c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, tenant)
}

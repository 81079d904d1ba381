package handlers

import (
	"teamlink/internal/middleware"
	"teamlink/internal/services"
	"teamlink/pkg/errors"
	"teamlink/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// RegistrationHandler 注册审批处理器
type RegistrationHandler struct {
	registrationService *services.RegistrationService
	reportService       *services.ReportService
}

func NewRegistrationHandler(registrationService *services.RegistrationService, reportService *services.ReportService) *RegistrationHandler {
	return &RegistrationHandler{
		registrationService: registrationService,
		reportService:       reportService,
	}
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// Submit 提交注册申请（公开接口）
func (h *RegistrationHandler) Submit(c *gin.Context) {
	var input services.SubmitRegistrationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		if validationErr, ok := err.(validator.ValidationErrors); ok {
			for _, fieldErr := range validationErr {
				response.BadRequest(c, "字段 "+fieldErr.Field()+" 校验失败: "+fieldErr.Tag())
				return
			}
		}
		response.BadRequest(c, "请求参数错误")
		return
	}

	request, err := h.registrationService.Submit(&input)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, request)
}

// GetByID 查询注册申请详情
func (h *RegistrationHandler) GetByID(c *gin.Context) {
	request, err := h.registrationService.GetByID(c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, request)
}

// ListByStatus 按状态查询注册申请列表
func (h *RegistrationHandler) ListByStatus(c *gin.Context) {
	status := c.DefaultQuery("status", "pending")

	requests, err := h.registrationService.ListByStatus(status)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, requests)
}

// Accept 批准注册申请
func (h *RegistrationHandler) Accept(c *gin.Context) {
	approver, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "请先登录")
		return
	}

	user, err := h.registrationService.Accept(c.Param("id"), approver)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "注册申请已批准", user)
}

// Reject 驳回注册申请
func (h *RegistrationHandler) Reject(c *gin.Context) {
	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "驳回原因不能为空")
		return
	}

	request, err := h.registrationService.Reject(c.Param("id"), req.Reason)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "注册申请已驳回", request)
}

// CountByDepartment 按部门统计注册申请
func (h *RegistrationHandler) CountByDepartment(c *gin.Context) {
	counts, err := h.reportService.CountByDepartment()
	if err != nil {
		response.Error(c, errors.CodeOf(err), err.Error())
		return
	}
	response.Success(c, counts)
}

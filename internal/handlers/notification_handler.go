package handlers

import (
	"teamlink/internal/middleware"
	"teamlink/internal/services"
	"teamlink/pkg/pagination"
	"teamlink/pkg/response"

	"github.com/gin-gonic/gin"
)

// NotificationHandler 通知处理器
type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// GetAll 分页查询我的通知
func (h *NotificationHandler) GetAll(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "请先登录")
		return
	}

	pageParams := pagination.ParsePageParams(c)
	notifications, total, err := h.notificationService.ListByUser(user.ID, pageParams.Page, pageParams.PageSize)
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}

	pageInfo := pagination.NewPageInfo(pageParams, total)
	response.SuccessWithPage(c, notifications, pageInfo)
}

// MarkRead 标记单条通知为已读
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "请先登录")
		return
	}

	if err := h.notificationService.MarkRead(c.Param("id"), user.ID); err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "已读", nil)
}

// MarkAllRead 全部标记为已读
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "请先登录")
		return
	}

	if err := h.notificationService.MarkAllRead(user.ID); err != nil {
		response.ServerError(c, "更新失败")
		return
	}

	response.SuccessWithMessage(c, "已读", nil)
}

// CountUnread 统计未读通知数
func (h *NotificationHandler) CountUnread(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "请先登录")
		return
	}

	count, err := h.notificationService.CountUnread(user.ID)
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}

	response.Success(c, gin.H{"unread": count})
}

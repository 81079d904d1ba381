package handlers

import (
	"teamlink/internal/middleware"
	"teamlink/internal/services"
	"teamlink/pkg/pagination"
	"teamlink/pkg/response"

	"github.com/gin-gonic/gin"
)

// PostHandler 帖子与回复处理器
type PostHandler struct {
	postService     *services.PostService
	responseService *services.ResponseService
}

func NewPostHandler(postService *services.PostService, responseService *services.ResponseService) *PostHandler {
	return &PostHandler{
		postService:     postService,
		responseService: responseService,
	}
}

type UpdatePostRequest struct {
	Description string `json:"description" binding:"required"`
}

// Create 发布帖子
func (h *PostHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "请先登录")
		return
	}
	if user.TenantID == nil {
		response.BadRequest(c, "平台管理员不能发帖")
		return
	}

	var input services.CreatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	post, err := h.postService.Create(*user.TenantID, user.ID, &input)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, post)
}

// GetByID 获取帖子详情
func (h *PostHandler) GetByID(c *gin.Context) {
	post, err := h.postService.GetByID(c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, post)
}

// GetAll 获取当前租户的帖子列表
func (h *PostHandler) GetAll(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok || user.TenantID == nil {
		response.BadRequest(c, "当前用户无租户归属")
		return
	}

	pageParams := pagination.ParsePageParams(c)
	department := c.Query("department")

	posts, total, err := h.postService.GetWithFiltersAndPage(*user.TenantID, department, pageParams.Page, pageParams.PageSize)
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}

	pageInfo := pagination.NewPageInfo(pageParams, total)
	response.SuccessWithPage(c, posts, pageInfo)
}

// Update 修改帖子内容
func (h *PostHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "请先登录")
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	post, err := h.postService.UpdateDescription(c.Param("id"), user.ID, req.Description)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, post)
}

// Delete 删除帖子
func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.postService.Delete(c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, "删除成功", nil)
}

// ========== 回复相关方法 ==========

// CreateResponse 回复帖子
func (h *PostHandler) CreateResponse(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "请先登录")
		return
	}

	var input services.CreateResponseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	reply, err := h.responseService.Create(c.Param("id"), user.ID, &input)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, reply)
}

// ListResponses 查询帖子的回复列表
func (h *PostHandler) ListResponses(c *gin.Context) {
	replies, err := h.responseService.ListByPost(c.Param("id"))
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}
	response.Success(c, replies)
}

// DeleteResponse 删除回复
func (h *PostHandler) DeleteResponse(c *gin.Context) {
	if err := h.responseService.Delete(c.Param("response_id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, "删除成功", nil)
}

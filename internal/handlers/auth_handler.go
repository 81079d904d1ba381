package handlers

import (
	"time"

	"teamlink/internal/middleware"
	"teamlink/internal/models"
	"teamlink/internal/services"
	"teamlink/pkg/jwt"
	"teamlink/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService *services.UserService
	jwtManager  *jwt.JWTManager
}

func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtManager:  jwt.GetJWTManager(), // 使用全局JWT管理器
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string   `json:"token"`
	ExpiresAt int64    `json:"expires_at"`
	User      UserInfo `json:"user"`
}

type UserInfo struct {
	ID             string  `json:"id"`
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	TenantID       *string `json:"tenant_id"`
	DepartmentName string  `json:"department_name"`
	Role           string  `json:"role"`
}

func toUserInfo(user *models.User) UserInfo {
	return UserInfo{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		TenantID:       user.TenantID,
		DepartmentName: user.DepartmentName,
		Role:           user.Role,
	}
}

// Login 用户登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	// 根据邮箱获取用户
	user, err := h.userService.GetByEmail(req.Email)
	if err != nil {
		response.Unauthorized(c, "邮箱或密码错误")
		return
	}

	// 验证密码
	if !user.CheckPassword(req.Password) {
		response.Unauthorized(c, "邮箱或密码错误")
		return
	}

	// 生成Token
	token, err := h.jwtManager.GenerateToken(
		user.ID,
		user.TenantID,
		user.Username,
		user.Role,
		user.IsPlatformAdmin(),
	)
	if err != nil {
		response.ServerError(c, "生成Token失败")
		return
	}

	expiresAt := time.Now().Add(h.jwtManager.GetTokenDuration()).Unix()

	response.Success(c, LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      toUserInfo(user),
	})
}

// Me 获取当前用户信息
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "请先登录")
		return
	}
	response.Success(c, toUserInfo(user))
}

// RefreshToken 刷新Token
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误")
		return
	}

	token, err := h.jwtManager.RefreshToken(req.Token)
	if err != nil {
		response.Unauthorized(c, "Token无效或已过期")
		return
	}

	response.Success(c, gin.H{
		"token":      token,
		"expires_at": time.Now().Add(h.jwtManager.GetTokenDuration()).Unix(),
	})
}

package handlers

import (
	"teamlink/internal/middleware"
	"teamlink/internal/services"
	"teamlink/pkg/response"

	"github.com/gin-gonic/gin"
)

// ChatHandler 私聊消息处理器
type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Send 发送私聊消息
func (h *ChatHandler) Send(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "请先登录")
		return
	}

	var input services.SendChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	chat, err := h.chatService.Send(user.ID, &input)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, chat)
}

// ListConversation 查询与某个用户的会话记录
func (h *ChatHandler) ListConversation(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "请先登录")
		return
	}

	peerID := c.Param("peer_id")
	chats, err := h.chatService.ListConversation(user.ID, peerID)
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}

	// 拉取会话的同时把对方发来的消息标记为已读
	if err := h.chatService.MarkConversationRead(user.ID, peerID); err != nil {
		response.ServerError(c, "更新已读状态失败")
		return
	}

	response.Success(c, chats)
}

// CountUnread 统计未读私聊消息数
func (h *ChatHandler) CountUnread(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "请先登录")
		return
	}

	count, err := h.chatService.CountUnread(user.ID)
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}

	response.Success(c, gin.H{"unread": count})
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"teamlink/internal/database"
	"teamlink/pkg/config"
	"teamlink/pkg/jwt"
	"teamlink/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// WebSocketHandler WebSocket处理器，负责通知的在线推送
type WebSocketHandler struct {
	upgrader   websocket.Upgrader
	log        *logrus.Logger
	jwtManager *jwt.JWTManager
}

// NewWebSocketHandler 创建WebSocket处理器
func NewWebSocketHandler() *WebSocketHandler {
	cfg := config.GetConfig()
	allowedOrigins := cfg.CORS.AllowOrigins

	return &WebSocketHandler{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")

				// 允许所有源
				for _, allowed := range allowedOrigins {
					if allowed == "*" {
						return true
					}
				}

				// 同源请求Origin为空，放行
				if origin == "" {
					return true
				}

				for _, allowed := range allowedOrigins {
					if matchOrigin(origin, allowed) {
						return true
					}
				}

				logger.GetLogger().Warnf("WebSocket连接被拒绝，非法Origin: %s", origin)
				return false
			},
			ReadBufferSize:  1024 * 4,
			WriteBufferSize: 1024 * 4,
		},
		log:        logger.GetLogger(),
		jwtManager: jwt.GetJWTManager(),
	}
}

// NotificationStream 推送当前用户的实时通知
func (h *WebSocketHandler) NotificationStream(c *gin.Context) {
	// WebSocket不支持自定义header，token从查询参数获取
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "缺少认证令牌"})
		return
	}

	claims, err := h.jwtManager.VerifyToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "无效的令牌"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Error("WebSocket升级失败")
		return
	}
	defer conn.Close()

	h.log.WithFields(logrus.Fields{
		"user_id":     claims.UserID,
		"remote_addr": c.ClientIP(),
	}).Info("通知推送WebSocket连接建立")

	h.handleNotificationStream(conn, claims.UserID)
}

// handleNotificationStream 订阅Redis频道并转发通知
func (h *WebSocketHandler) handleNotificationStream(conn *websocket.Conn, userID string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	unreadCache := database.GetUnreadCache()
	channel := unreadCache.NotifyChannel(userID)
	pubsub := unreadCache.GetClient().Subscribe(ctx, channel)
	defer pubsub.Close()

	// 等待订阅确认
	if _, err := pubsub.Receive(ctx); err != nil {
		h.log.WithError(err).Error("订阅Redis频道失败")
		return
	}

	go h.readPump(conn, cancel)

	ch := pubsub.Channel()
	const writeTimeout = 10 * time.Second

	// 心跳保活
	pingTicker := time.NewTicker(60 * time.Second)
	defer pingTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-pingTicker.C:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.log.WithError(err).Warn("发送ping失败")
				return
			}

		case msg, ok := <-ch:
			if !ok {
				return
			}

			var notification map[string]interface{}
			if err := json.Unmarshal([]byte(msg.Payload), &notification); err != nil {
				h.log.WithError(err).Error("解析通知消息失败")
				continue
			}

			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(notification); err != nil {
				h.log.WithError(err).Warn("推送通知到客户端失败")
				return
			}
		}
	}
}

// readPump 处理客户端消息，主要是维持ping/pong
func (h *WebSocketHandler) readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	pongWait := 300 * time.Second
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.WithError(err).Warn("WebSocket异常关闭")
			}
			break
		}
	}
}

// matchOrigin 检查origin是否匹配allowed模式，支持 *.example.com 通配
func matchOrigin(origin, allowed string) bool {
	if origin == allowed {
		return true
	}

	if strings.HasPrefix(allowed, "*.") {
		domain := allowed[2:]

		originHost := origin
		if idx := strings.Index(origin, "://"); idx != -1 {
			originHost = origin[idx+3:]
		}
		if idx := strings.Index(originHost, ":"); idx != -1 {
			originHost = originHost[:idx]
		}

		if originHost == domain {
			return true
		}
		if strings.HasSuffix(originHost, "."+domain) {
			return true
		}
	}

	return false
}

package router

import (
	"time"

	"teamlink/internal/database"
	"teamlink/internal/handlers"
	"teamlink/internal/middleware"
	"teamlink/internal/services"
	"teamlink/pkg/response"

	"github.com/gin-gonic/gin"
)

// SetupRouter 设置路由
func SetupRouter() *gin.Engine {
	router := gin.New()

	// 中间件
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.SetupCORS())

	// 注册路由
	registerRoutes(router)
	return router
}

// 注册所有路由
func registerRoutes(router *gin.Engine) {
	db := database.GetDB()

	userService := services.NewUserService(db)
	auth := middleware.NewAuthMiddleware(userService)

	// API路由组
	api := router.Group("/api/v1")
	{
		// 健康检查接口
		api.GET("/health", healthCheck)
		api.GET("/ping", ping)

		// 认证路由
		authHandler := handlers.NewAuthHandler(userService)
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.RefreshToken)
			authGroup.GET("/me", auth.RequireLogin(), authHandler.Me)
		}

		// 注册申请路由
		registrationHandler := handlers.NewRegistrationHandler(
			services.NewRegistrationService(db),
			services.NewReportService(db),
		)
		registrations := api.Group("/registrations")
		{
			// 提交申请无需登录
			registrations.POST("", registrationHandler.Submit)

			// 审批与查询需要管理者权限
			registrations.GET("", auth.RequireLogin(), auth.RequireManager(), registrationHandler.ListByStatus)
			registrations.GET("/:id", auth.RequireLogin(), auth.RequireManager(), registrationHandler.GetByID)
			registrations.POST("/:id/accept", auth.RequireLogin(), auth.RequireManager(), registrationHandler.Accept)
			registrations.POST("/:id/reject", auth.RequireLogin(), auth.RequireManager(), registrationHandler.Reject)

			// 按部门统计申请数
			registrations.GET("/stats/by-department", auth.RequireLogin(), auth.RequireManager(), registrationHandler.CountByDepartment)
		}

		// 用户路由
		userHandler := handlers.NewUserHandler(userService)
		users := api.Group("/users")
		{
			users.POST("", auth.RequireLogin(), auth.RequireManager(), userHandler.Create)
			users.GET("", auth.RequireLogin(), userHandler.GetAll)
			users.GET("/:id", auth.RequireLogin(), userHandler.GetByID)
			users.PUT("/:id", auth.RequireLogin(), auth.RequireManager(), userHandler.Update)
			users.DELETE("/:id", auth.RequireLogin(), auth.RequireManager(), userHandler.Delete)
			users.POST("/:id/reset-password", auth.RequireLogin(), auth.RequireManager(), userHandler.ResetPassword)
			users.GET("/stats", auth.RequireLogin(), auth.RequireManager(), userHandler.GetStats)
		}

		// 租户路由（平台管理员专用）
		tenantHandler := handlers.NewTenantHandler(services.NewTenantService(db))
		tenants := api.Group("/tenants")
		{
			tenants.POST("", auth.RequireLogin(), auth.RequirePlatformAdmin(), tenantHandler.Create)
			tenants.GET("", auth.RequireLogin(), auth.RequirePlatformAdmin(), tenantHandler.GetAll)
			tenants.GET("/:id", auth.RequireLogin(), auth.RequirePlatformAdmin(), tenantHandler.GetByID)
			tenants.PUT("/:id", auth.RequireLogin(), auth.RequirePlatformAdmin(), tenantHandler.Update)
			tenants.DELETE("/:id", auth.RequireLogin(), auth.RequirePlatformAdmin(), tenantHandler.Delete)
			tenants.POST("/:id/activate", auth.RequireLogin(), auth.RequirePlatformAdmin(), tenantHandler.Activate)
			tenants.POST("/:id/deactivate", auth.RequireLogin(), auth.RequirePlatformAdmin(), tenantHandler.Deactivate)
		}

		// 帖子与回复路由
		postHandler := handlers.NewPostHandler(
			services.NewPostService(db),
			services.NewResponseService(db),
		)
		posts := api.Group("/posts")
		{
			posts.POST("", auth.RequireLogin(), postHandler.Create)
			posts.GET("", auth.RequireLogin(), postHandler.GetAll)
			posts.GET("/:id", auth.RequireLogin(), postHandler.GetByID)
			posts.PUT("/:id", auth.RequireLogin(), postHandler.Update)
			posts.DELETE("/:id", auth.RequireLogin(), auth.RequireManager(), postHandler.Delete)

			posts.POST("/:id/responses", auth.RequireLogin(), postHandler.CreateResponse)
			posts.GET("/:id/responses", auth.RequireLogin(), postHandler.ListResponses)
			posts.DELETE("/:id/responses/:response_id", auth.RequireLogin(), auth.RequireManager(), postHandler.DeleteResponse)
		}

		// 私聊路由
		chatHandler := handlers.NewChatHandler(services.NewChatService(db))
		chats := api.Group("/chats")
		{
			chats.POST("", auth.RequireLogin(), chatHandler.Send)
			chats.GET("/unread", auth.RequireLogin(), chatHandler.CountUnread)
			chats.GET("/:peer_id", auth.RequireLogin(), chatHandler.ListConversation)
		}

		// 通知路由
		notificationService := services.NewNotificationService(db).WithCache(database.GetUnreadCache())
		notificationHandler := handlers.NewNotificationHandler(notificationService)
		notifications := api.Group("/notifications")
		{
			notifications.GET("", auth.RequireLogin(), notificationHandler.GetAll)
			notifications.GET("/unread", auth.RequireLogin(), notificationHandler.CountUnread)
			notifications.POST("/:id/read", auth.RequireLogin(), notificationHandler.MarkRead)
			notifications.POST("/read-all", auth.RequireLogin(), notificationHandler.MarkAllRead)
		}

		// WebSocket路由
		wsHandler := handlers.NewWebSocketHandler()
		api.GET("/ws/notifications", wsHandler.NotificationStream)
	}
}

func healthCheck(c *gin.Context) {
	data := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now(),
		"service":   "TeamLink",
		"version":   "1.0.0",
	}
	response.Success(c, data)
}

func ping(c *gin.Context) {
	response.SuccessWithMessage(c, "pong", nil)
}

package middleware

import (
	"time"

	"teamlink/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupCORS 按配置构建跨域中间件
func SetupCORS() gin.HandlerFunc {
	cfg := config.GetConfig()
	return cors.New(buildCORSConfig(&cfg.CORS))
}

// buildCORSConfig 允许列表仅含"*"时放开全部来源，并强制关闭凭证；
// 其余情况按显式来源列表配置
func buildCORSConfig(cc *config.CORSConfig) cors.Config {
	corsConfig := cors.Config{
		AllowMethods:     cc.AllowMethods,
		AllowHeaders:     cc.AllowHeaders,
		ExposeHeaders:    cc.ExposeHeaders,
		AllowCredentials: cc.AllowCredentials,
		MaxAge:           time.Duration(cc.MaxAge) * time.Hour,
	}

	if len(cc.AllowOrigins) == 1 && cc.AllowOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = cc.AllowOrigins
	}
	return corsConfig
}

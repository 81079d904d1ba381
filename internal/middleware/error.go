package middleware

import (
	"teamlink/pkg/logger"
	"teamlink/pkg/response"

	"github.com/gin-gonic/gin"
)

// ErrorHandler 兜底捕获panic。
// panic值是error时按业务错误类别渲染，其余一律按服务器内部错误返回
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.GetLogger().WithField("path", c.Request.URL.Path).
					Errorf("panic recovered: %v", r)

				if err, ok := r.(error); ok {
					response.FromError(c, err)
				} else {
					response.ServerError(c, "服务器内部错误")
				}
				c.Abort()
			}
		}()

		c.Next()
	}
}

package middleware

import (
	"github.com/gin-gonic/gin"
	kratoslog "github.com/go-kratos/kratos/v2/log"
)

// LoggingMiddleware 日志中间件
type LoggingMiddleware struct {
	logger kratoslog.Logger
}

// NewLoggingMiddleware 创建日志中间件
func NewLoggingMiddleware(logger kratoslog.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{
		logger: logger,
	}
}

// GinLogging Gin日志中间件
func (lm *LoggingMiddleware) GinLogging() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		lm.logger.Log(kratoslog.LevelInfo,
			"msg", "HTTP request",
			"method", param.Method,
			"path", param.Path,
			"status", param.StatusCode,
			"latency", param.Latency.String(),
			"client_ip", param.ClientIP,
			"user_agent", param.Request.UserAgent(),
			"error", param.ErrorMessage,
		)
		return ""
	})
}

package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"campus-hub/pkg/logger"
	"campus-hub/pkg/redis"
)

// RateLimiter 基于Redis计数器的固定窗口限流
type RateLimiter struct {
	redis  *redis.RedisClient
	logger logger.Logger
	limit  int64
	window time.Duration
}

// NewRateLimiter 创建限流器
func NewRateLimiter(rds *redis.RedisClient, log logger.Logger, limit int64, window time.Duration) *RateLimiter {
	return &RateLimiter{
		redis:  rds,
		logger: log,
		limit:  limit,
		window: window,
	}
}

// Limit 按用户限流，未认证请求按客户端IP限流
func (rl *RateLimiter) Limit(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		subject := c.ClientIP()
		if userIDVal, exists := c.Get("userID"); exists {
			if userID, ok := userIDVal.(int64); ok && userID > 0 {
				subject = fmt.Sprintf("u:%d", userID)
			}
		}

		key := fmt.Sprintf("ratelimit:%s:%s:%d", action, subject, time.Now().Unix()/int64(rl.window.Seconds()))

		count, err := rl.redis.Incr(ctx, key)
		if err != nil {
			// 限流器故障时放行，不拦截业务
			rl.logger.Warn(ctx, "Rate limiter unavailable",
				logger.F("action", action),
				logger.F("error", err.Error()))
			c.Next()
			return
		}
		if count == 1 {
			_ = rl.redis.Expire(ctx, key, rl.window)
		}

		if count > rl.limit {
			rl.logger.Warn(ctx, "Rate limit exceeded",
				logger.F("action", action),
				logger.F("subject", subject))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			c.Abort()
			return
		}

		c.Next()
	}
}

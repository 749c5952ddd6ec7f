package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"campus-hub/pkg/auth"
	tracecontext "campus-hub/pkg/context"
	"campus-hub/pkg/logger"
)

// AuthMiddleware 认证中间件配置
type AuthMiddleware struct {
	logger    logger.Logger
	jwtConfig *auth.JWTConfig
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(log logger.Logger, jwtSecret string) *AuthMiddleware {
	cfg := *auth.DefaultJWTConfig
	if jwtSecret != "" {
		cfg.Secret = jwtSecret
	}
	return &AuthMiddleware{
		logger:    log,
		jwtConfig: &cfg,
	}
}

// GinAuth Gin认证中间件，公开读接口跳过认证
func (am *AuthMiddleware) GinAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if am.shouldSkipAuth(c.Request.Method, c.Request.URL.Path) {
			c.Next()
			return
		}

		token := am.extractTokenFromHeader(c.GetHeader("Authorization"))
		if token == "" {
			am.logger.Warn(c.Request.Context(), "Missing authorization token",
				logger.F("path", c.Request.URL.Path))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization token"})
			c.Abort()
			return
		}

		claims, err := auth.ParseTokenWithConfig(token, am.jwtConfig)
		if err != nil {
			am.logger.Warn(c.Request.Context(), "Invalid token",
				logger.F("error", err.Error()),
				logger.F("path", c.Request.URL.Path))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		// 将身份信息写入gin和请求context
		c.Set("userID", claims.UserID)
		c.Set("userRole", claims.Role)
		c.Set("userEmail", claims.Email)

		ctx := tracecontext.WithUserID(c.Request.Context(), claims.UserID)
		ctx = tracecontext.WithUserRole(ctx, claims.Role)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// extractTokenFromHeader 从Authorization头中提取token
func (am *AuthMiddleware) extractTokenFromHeader(authHeader string) string {
	if authHeader == "" {
		return ""
	}

	// 支持 "Bearer token" 和直接的 "token" 格式
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return authHeader
}

// shouldSkipAuth 判断是否跳过认证
func (am *AuthMiddleware) shouldSkipAuth(method, path string) bool {
	if strings.HasPrefix(path, "/health") {
		return true
	}

	// 公开内容接口只读，写操作仍需认证
	if method != http.MethodGet {
		return false
	}

	skipPrefixes := []string{
		"/api/v1/news",
		"/api/v1/topics",
		"/api/v1/comments",
		"/api/v1/sharespeare",
		"/api/v1/events",
		"/api/v1/search",
	}

	for _, prefix := range skipPrefixes {
		if strings.HasPrefix(path, prefix) && !strings.HasPrefix(path, "/api/v1/admin") {
			return true
		}
	}

	return false
}

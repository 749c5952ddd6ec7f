package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	tracecontext "campus-hub/pkg/context"
	"campus-hub/pkg/logger"
)

// OTelMiddleware OpenTelemetry中间件配置
type OTelMiddleware struct {
	serviceName string
	logger      logger.Logger
}

// NewOTelMiddleware 创建OpenTelemetry中间件
func NewOTelMiddleware(serviceName string, logger logger.Logger) *OTelMiddleware {
	return &OTelMiddleware{
		serviceName: serviceName,
		logger:      logger,
	}
}

// GinMiddleware 返回Gin的OpenTelemetry中间件
func (m *OTelMiddleware) GinMiddleware() gin.HandlerFunc {
	// 使用官方的otelgin中间件作为基础
	baseMiddleware := otelgin.Middleware(m.serviceName)

	return gin.HandlerFunc(func(c *gin.Context) {
		baseMiddleware(c)

		// 增强context，添加业务信息
		ctx := m.enhanceContext(c.Request.Context(), c)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	})
}

// enhanceContext 增强context，添加业务追踪信息
func (m *OTelMiddleware) enhanceContext(ctx context.Context, c *gin.Context) context.Context {
	// 生成或提取TraceID
	traceID := c.GetHeader("X-Trace-ID")
	if traceID == "" {
		if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
			traceID = span.SpanContext().TraceID().String()
		}
	}
	ctx = tracecontext.WithTraceID(ctx, traceID)

	requestID := c.GetHeader("X-Request-ID")
	ctx = tracecontext.WithRequestID(ctx, requestID)

	// 提取UserID（由认证中间件设置）
	if userIDVal, exists := c.Get("userID"); exists {
		if userID, ok := userIDVal.(int64); ok {
			ctx = tracecontext.WithUserID(ctx, userID)
		}
	}

	ctx = tracecontext.WithClientInfo(ctx, c.ClientIP(), c.GetHeader("User-Agent"))

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.url", c.Request.URL.String()),
			attribute.String("http.route", c.FullPath()),
			attribute.String("http.user_agent", c.GetHeader("User-Agent")),
			attribute.String("http.client_ip", c.ClientIP()),
		)

		if userID := tracecontext.GetUserID(ctx); userID > 0 {
			span.SetAttributes(attribute.Int64("user.id", userID))
		}
	}

	return ctx
}

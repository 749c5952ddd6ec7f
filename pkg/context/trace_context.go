package context

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// 上下文键类型
type contextKey string

const (
	TraceIDKey   contextKey = "trace_id"
	RequestIDKey contextKey = "request_id"
	UserIDKey    contextKey = "user_id"
	UserRoleKey  contextKey = "user_role"
	ClientIPKey  contextKey = "client_ip"
	UserAgentKey contextKey = "user_agent"
)

// WithTraceID 在context中设置TraceID
func WithTraceID(ctx context.Context, traceID string) context.Context {
	if traceID == "" {
		traceID = uuid.New().String()
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(attribute.String("trace.id", traceID))
	}

	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID 从context中获取TraceID，优先取OpenTelemetry的TraceID
func GetTraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		return span.SpanContext().TraceID().String()
	}

	if traceID, ok := ctx.Value(TraceIDKey).(string); ok {
		return traceID
	}

	return ""
}

// WithRequestID 在context中设置RequestID
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		requestID = uuid.New().String()
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(attribute.String("request.id", requestID))
	}

	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID 从context中获取RequestID
func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithUserID 在context中设置UserID
func WithUserID(ctx context.Context, userID int64) context.Context {
	if userID <= 0 {
		return ctx
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(attribute.Int64("user.id", userID))
	}

	return context.WithValue(ctx, UserIDKey, userID)
}

// GetUserID 从context中获取UserID
func GetUserID(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	if userID, ok := ctx.Value(UserIDKey).(int64); ok {
		return userID
	}
	return 0
}

// WithUserRole 在context中设置用户角色
func WithUserRole(ctx context.Context, role string) context.Context {
	if role == "" {
		return ctx
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(attribute.String("user.role", role))
	}

	return context.WithValue(ctx, UserRoleKey, role)
}

// GetUserRole 从context中获取用户角色
func GetUserRole(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if role, ok := ctx.Value(UserRoleKey).(string); ok {
		return role
	}
	return ""
}

// WithClientInfo 在context中设置客户端信息
func WithClientInfo(ctx context.Context, clientIP, userAgent string) context.Context {
	ctx = context.WithValue(ctx, ClientIPKey, clientIP)
	ctx = context.WithValue(ctx, UserAgentKey, userAgent)

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.String("client.ip", clientIP),
			attribute.String("client.user_agent", userAgent),
		)
	}

	return ctx
}

// GetClientIP 从context中获取客户端IP
func GetClientIP(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if clientIP, ok := ctx.Value(ClientIPKey).(string); ok {
		return clientIP
	}
	return ""
}

// GetUserAgent 从context中获取用户代理
func GetUserAgent(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if userAgent, ok := ctx.Value(UserAgentKey).(string); ok {
		return userAgent
	}
	return ""
}

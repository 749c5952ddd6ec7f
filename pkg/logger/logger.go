package logger

import (
	"context"
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	tracecontext "campus-hub/pkg/context"
)

// Logger 日志接口
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...Field)
	Info(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)
	Fatal(ctx context.Context, msg string, fields ...Field)
}

// Field 日志字段
type Field struct {
	Key   string
	Value interface{}
}

// F 构造日志字段
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// zapLogger 基于zap的日志实现
type zapLogger struct {
	zl *zap.Logger
}

// NewLogger 创建日志实例
func NewLogger(level string) (Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	zl, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}

	return &zapLogger{zl: zl}, nil
}

func (l *zapLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, zapcore.DebugLevel, msg, fields...)
}

func (l *zapLogger) Info(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, zapcore.InfoLevel, msg, fields...)
}

func (l *zapLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, zapcore.WarnLevel, msg, fields...)
}

func (l *zapLogger) Error(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, zapcore.ErrorLevel, msg, fields...)
}

func (l *zapLogger) Fatal(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, zapcore.FatalLevel, msg, fields...)
}

// log 内部日志方法，自动附加请求追踪字段
func (l *zapLogger) log(ctx context.Context, level zapcore.Level, msg string, fields ...Field) {
	zapFields := make([]zap.Field, 0, len(fields)+3)

	if traceID := tracecontext.GetTraceID(ctx); traceID != "" {
		zapFields = append(zapFields, zap.String("trace_id", traceID))
	}
	if requestID := tracecontext.GetRequestID(ctx); requestID != "" {
		zapFields = append(zapFields, zap.String("request_id", requestID))
	}
	if userID := tracecontext.GetUserID(ctx); userID > 0 {
		zapFields = append(zapFields, zap.Int64("user_id", userID))
	}

	for _, field := range fields {
		zapFields = append(zapFields, zap.Any(field.Key, field.Value))
	}

	switch level {
	case zapcore.DebugLevel:
		l.zl.Debug(msg, zapFields...)
	case zapcore.WarnLevel:
		l.zl.Warn(msg, zapFields...)
	case zapcore.ErrorLevel:
		l.zl.Error(msg, zapFields...)
	case zapcore.FatalLevel:
		l.zl.Fatal(msg, zapFields...)
	default:
		l.zl.Info(msg, zapFields...)
	}
}

// 默认日志实例
var defaultLogger Logger

// Init 初始化默认日志
func Init(level string) error {
	var err error
	defaultLogger, err = NewLogger(level)
	return err
}

// GetLogger 获取默认日志实例
func GetLogger() Logger {
	if defaultLogger == nil {
		log.Println("Warning: Using fallback logger")
		return &fallbackLogger{}
	}
	return defaultLogger
}

// fallbackLogger 备用日志实现
type fallbackLogger struct{}

func (l *fallbackLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	log.Printf("[DEBUG] %s", msg)
}

func (l *fallbackLogger) Info(ctx context.Context, msg string, fields ...Field) {
	log.Printf("[INFO] %s", msg)
}

func (l *fallbackLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	log.Printf("[WARN] %s", msg)
}

func (l *fallbackLogger) Error(ctx context.Context, msg string, fields ...Field) {
	log.Printf("[ERROR] %s", msg)
}

func (l *fallbackLogger) Fatal(ctx context.Context, msg string, fields ...Field) {
	log.Fatalf("[FATAL] %s", msg)
}

package logger

import (
	"context"
	"fmt"
	"os"

	kratoslog "github.com/go-kratos/kratos/v2/log"
)

// KratosLogger Kratos日志适配器，把Kratos的键值对日志转发到Logger接口
type KratosLogger struct {
	logger Logger
}

// NewKratosLogger 创建Kratos日志适配器
func NewKratosLogger(logger Logger) kratoslog.Logger {
	return &KratosLogger{logger: logger}
}

// Log 实现Kratos Logger接口
func (kl *KratosLogger) Log(level kratoslog.Level, keyvals ...interface{}) error {
	if len(keyvals) == 0 {
		return nil
	}

	var msg string
	fields := make([]Field, 0, len(keyvals)/2)

	for i := 0; i+1 < len(keyvals); i += 2 {
		key := fmt.Sprintf("%v", keyvals[i])
		if key == "msg" {
			msg = fmt.Sprintf("%v", keyvals[i+1])
			continue
		}
		fields = append(fields, F(key, keyvals[i+1]))
	}

	ctx := context.TODO()
	switch level {
	case kratoslog.LevelDebug:
		kl.logger.Debug(ctx, msg, fields...)
	case kratoslog.LevelWarn:
		kl.logger.Warn(ctx, msg, fields...)
	case kratoslog.LevelError:
		kl.logger.Error(ctx, msg, fields...)
	case kratoslog.LevelFatal:
		kl.logger.Fatal(ctx, msg, fields...)
	default:
		kl.logger.Info(ctx, msg, fields...)
	}

	return nil
}

// NewKratosStdLogger 创建标准输出的Kratos日志器
func NewKratosStdLogger(serviceName, version string) kratoslog.Logger {
	return kratoslog.With(
		kratoslog.NewStdLogger(os.Stdout),
		"service.name", serviceName,
		"service.version", version,
		"ts", kratoslog.DefaultTimestamp,
		"caller", kratoslog.DefaultCaller,
	)
}

// Package logging builds the zap loggers shared by the game, the terminal
// front end and the chart tool.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options 日志配置
type Options struct {
	// Level debug|info|warn|error
	Level string
	// ShowCaller 输出调用位置
	ShowCaller bool
	// File 输出到文件，为空则输出到 stderr
	File string
}

// ParseLevel 将字符串级别转换为 zapcore.Level
func ParseLevel(level string) (zapcore.Level, error) {
	switch level {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn", "":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.WarnLevel, fmt.Errorf("unknown log level %q", level)
}

// New 构建开发风格的 sugared logger（彩色级别、无时间戳、无堆栈）
func New(opts Options) (*zap.SugaredLogger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.Level = zap.NewAtomicLevelAt(level)
	config.EncoderConfig.TimeKey = ""
	config.EncoderConfig.StacktraceKey = ""
	if !opts.ShowCaller {
		config.EncoderConfig.CallerKey = ""
	}
	if opts.File != "" {
		// 文件中不写颜色控制符
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		config.OutputPaths = []string{opts.File}
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.Sugar(), nil
}

// Nop 返回丢弃所有输出的 logger，用于未注入 logger 的组件
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// OrNop 在 log 为 nil 时返回 Nop()
func OrNop(log *zap.SugaredLogger) *zap.SugaredLogger {
	if log == nil {
		return Nop()
	}
	return log
}

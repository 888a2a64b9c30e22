// Package log 提供基于 zap 的全局结构化日志封装。
package log

import (
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var sugar atomic.Pointer[zap.SugaredLogger]

func init() {
	sugar.Store(zap.NewNop().Sugar())
}

// Init 根据级别与格式初始化 logger。format 为 console 时使用开发配置，否则输出 JSON。
func Init(level, format, outputPath string) error {
	logLevel := zap.NewAtomicLevel()
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel.SetLevel(zap.InfoLevel)
	}

	var zapConfig zap.Config
	if format == "console" {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapConfig = zap.NewProductionConfig()
		zapConfig.Encoding = "json"
	}

	zapConfig.Level = logLevel
	zapConfig.OutputPaths = []string{"stdout"}
	if outputPath != "" {
		_ = os.MkdirAll(outputPath, os.ModePerm)
		zapConfig.OutputPaths = append(zapConfig.OutputPaths, outputPath+"/app.log")
	}

	logger, err := zapConfig.Build()
	if err != nil {
		return err
	}
	sugar.Store(logger.Sugar())
	return nil
}

// Replace 替换全局 logger，测试中可以注入 zaptest/observer。
func Replace(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	sugar.Store(logger.Sugar())
}

// L 返回当前 SugaredLogger。
func L() *zap.SugaredLogger {
	return sugar.Load()
}

func Debugf(template string, args ...interface{}) {
	L().Debugf(template, args...)
}

// Infof 使用格式化字符串记录一条 info 级别的日志
func Infof(template string, args ...interface{}) {
	L().Infof(template, args...)
}

// Infow 使用键值对记录一条 info 级别的结构化日志。
func Infow(msg string, keysAndValues ...interface{}) {
	L().Infow(msg, keysAndValues...)
}

// Warnf 使用格式化字符串记录一条 warn 级别的日志
func Warnf(template string, args ...interface{}) {
	L().Warnf(template, args...)
}

func Errorf(template string, args ...interface{}) {
	L().Errorf(template, args...)
}

// Error 记录一条 error 级别的日志，并附带 error 信息
func Error(msg string, err error) {
	L().Errorw(msg, "error", err)
}

func Fatalf(template string, args ...interface{}) {
	L().Fatalf(template, args...)
}

// Sync 将缓冲区中的日志刷新到底层 Writer。
func Sync() {
	_ = L().Sync()
}

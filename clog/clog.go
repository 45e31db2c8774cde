// Package clog 为 unique 提供基于 slog 的结构化日志组件。
//
// 特性：
//   - 抽象 Logger 接口，不暴露底层 slog 实现
//   - 层级命名空间，以 "." 连接输出到 namespace 字段
//   - 函数式选项
//   - 零外部依赖（仅依赖 Go 标准库）
//
// 基本使用：
//
//	logger, _ := clog.New(&clog.Config{Level: "debug", Format: "console"})
//	logger.Info("counter opened", clog.String("path", path))
//
// 组件内部通常派生带 component 字段的子 Logger：
//
//	logger = logger.With(clog.String("component", "counter"))
package clog

import (
	"fmt"
	"sync"
)

var (
	defaultOnce   sync.Once
	defaultLogger Logger
)

// New 创建一个新的 Logger 实例
//
// config 为 nil 时使用 NewDevDefaultConfig。
func New(config *Config, opts ...Option) (Logger, error) {
	if config == nil {
		config = NewDevDefaultConfig()
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return newLogger(config, applyOptions(opts...))
}

// Default 返回进程级默认 Logger（info 级别，输出到 stderr）
//
// 组件在调用方未注入 Logger 时使用它。
func Default() Logger {
	defaultOnce.Do(func() {
		logger, err := New(&Config{Level: "info", Format: "console", Output: "stderr"})
		if err != nil {
			logger = Discard()
		}
		defaultLogger = logger
	})
	return defaultLogger
}

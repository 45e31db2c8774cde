// Package testkit 为测试提供 unique 的夹具（fixture）。
//
// 按作用域提供 Dispatcher：
//
//	func TestSignup(t *testing.T) {
//	    u := testkit.NewUniqueInMemory(t)
//	    email := testkit.Email(t, u, unique.EmailOptions{Prefix: "alice"})
//	    ...
//	}
//
// 集成测试所需的后端由 testcontainers 启动，也可以通过
// UNIQUE_TEST_* 环境变量指向已有服务。
package testkit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ceyewan/unique/clog"
	"github.com/ceyewan/unique/metrics"
)

// Kit 包含通用的测试依赖
type Kit struct {
	Ctx    context.Context
	Logger clog.Logger
	Meter  metrics.Meter
}

// NewKit 返回一个包含默认依赖的测试工具包
func NewKit(t *testing.T) *Kit {
	meter := NewMeter()
	t.Cleanup(func() {
		_ = meter.Shutdown(context.Background())
	})
	return &Kit{
		Ctx:    context.Background(),
		Logger: NewLogger(),
		Meter:  meter,
	}
}

// NewLogger 返回一个用于测试的 logger
// 输出到开发环境格式，适合本地调试
func NewLogger() clog.Logger {
	logger, err := clog.New(clog.NewDevDefaultConfig(), clog.WithNamespace("test"))
	if err != nil {
		return clog.Discard()
	}
	return logger
}

// NewMeter 返回一个用于测试的 meter，不启动 HTTP 服务
func NewMeter() metrics.Meter {
	meter, err := metrics.New(&metrics.Config{Enabled: true, ServiceName: "unique-test"})
	if err != nil {
		return metrics.Discard()
	}
	return meter
}

// NewContext 返回一个带有超时的测试上下文，随测试结束取消
func NewContext(t *testing.T, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}

// NewID 返回一个随机的短 ID (UUID v4 前 8 位)
// 用于生成互不冲突的 Key 或桶名，避免并行测试共享外部状态
func NewID() string {
	return uuid.New().String()[0:8]
}

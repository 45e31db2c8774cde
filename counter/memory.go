package counter

import (
	"context"
	"sync/atomic"

	"github.com/ceyewan/unique/clog"
)

// Memory 进程内计数器，状态随进程结束丢失
type Memory struct {
	next   atomic.Int64
	logger clog.Logger
}

// NewMemory 创建从 0 开始的内存计数器
func NewMemory(opts ...Option) *Memory {
	o := applyOptions(DriverMemory, opts)
	return &Memory{logger: o.logger}
}

// Next 返回当前值并加 1，永不失败
func (m *Memory) Next(ctx context.Context) (int64, error) {
	v := m.next.Add(1) - 1
	m.logger.DebugContext(ctx, "next count", clog.Int64("value", v))
	return v, nil
}

// Close 无资源需要释放
func (m *Memory) Close() error {
	return nil
}

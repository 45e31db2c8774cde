package testkit

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ceyewan/unique/config"
	"github.com/ceyewan/unique/counter"
	"github.com/ceyewan/unique/unique"
)

// ========================================
// 夹具 (Fixtures)
// ========================================

// NewUniqueInMemory 返回仅本测试使用的内存 Dispatcher
func NewUniqueInMemory(t *testing.T) *unique.Dispatcher {
	t.Helper()
	d, err := unique.New(counter.NewMemory(counter.WithLogger(NewLogger())), unique.WithLogger(NewLogger()))
	require.NoError(t, err, "failed to create in-memory dispatcher")
	return d
}

// NewUniqueInFile 返回文件计数的 Dispatcher，计数文件位于 t.TempDir()
func NewUniqueInFile(t *testing.T) *unique.Dispatcher {
	t.Helper()
	return NewUniqueWithCounter(t, &counter.Config{
		Driver: counter.DriverFile,
		File:   counter.FileConfig{Path: filepath.Join(t.TempDir(), "count")},
	})
}

// NewUniqueWithCounter 按计数器配置创建 Dispatcher，计数器随测试结束关闭
func NewUniqueWithCounter(t *testing.T, cfg *counter.Config) *unique.Dispatcher {
	t.Helper()
	c, err := counter.New(context.Background(), cfg, counter.WithLogger(NewLogger()))
	require.NoError(t, err, "failed to create counter")
	t.Cleanup(func() {
		_ = c.Close()
	})

	d, err := unique.New(c, unique.WithLogger(NewLogger()))
	require.NoError(t, err, "failed to create dispatcher")
	return d
}

var session struct {
	once sync.Once
	d    *unique.Dispatcher
	err  error
}

// NewUnique 按 cfg.Scope 返回 Dispatcher
//
//   - "test"：每次调用创建新的计数器，随测试结束关闭
//   - "session"：进程内只创建一次，由第一次调用的配置决定，所有测试共享，
//     计数器在进程退出前不会关闭
//
// cfg 为 nil 时使用 config.Load() 的结果。
func NewUnique(t *testing.T, cfg *config.Config) *unique.Dispatcher {
	t.Helper()
	if cfg == nil {
		loaded, err := config.Load()
		require.NoError(t, err, "failed to load unique config")
		cfg = loaded
	}
	require.NoError(t, cfg.Validate(), "invalid unique config")

	if cfg.Scope != config.ScopeSession {
		return NewUniqueWithCounter(t, &cfg.Counter)
	}

	session.once.Do(func() {
		var c counter.Counter
		c, session.err = counter.New(context.Background(), &cfg.Counter, counter.WithLogger(NewLogger()))
		if session.err != nil {
			return
		}
		session.d, session.err = unique.New(c, unique.WithLogger(NewLogger()))
	})
	require.NoError(t, session.err, "failed to create session dispatcher")
	return session.d
}

// ========================================
// 类型化取值 (Typed Helpers)
// ========================================

// Get 按名称取值并断言类型，失败时终止测试
func Get[V any](t *testing.T, d *unique.Dispatcher, name string, opts any) V {
	t.Helper()
	v, err := d.Get(context.Background(), name, opts)
	require.NoError(t, err, "generate %q", name)
	typed, ok := v.(V)
	require.True(t, ok, "generator %q returned %T", name, v)
	return typed
}

// Text 返回唯一文本
func Text(t *testing.T, d *unique.Dispatcher, opts unique.TextOptions) string {
	t.Helper()
	return Get[string](t, d, unique.NameText, opts)
}

// Email 返回唯一邮箱
func Email(t *testing.T, d *unique.Dispatcher, opts unique.EmailOptions) string {
	t.Helper()
	return Get[string](t, d, unique.NameEmail, opts)
}

// Integer 返回唯一整数
func Integer(t *testing.T, d *unique.Dispatcher, opts unique.IntegerOptions) int64 {
	t.Helper()
	return Get[int64](t, d, unique.NameInteger, opts)
}

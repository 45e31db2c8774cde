package testkit

import (
	"path/filepath"
	"testing"

	"github.com/ceyewan/unique/counter"
)

// NewSQLiteCounterConfig 返回 SQLite 计数器配置
// 数据库文件存储在 t.TempDir() 中，测试结束后自动清理
func NewSQLiteCounterConfig(t *testing.T) *counter.Config {
	return &counter.Config{
		Driver: counter.DriverSQL,
		SQL: counter.SQLConfig{
			Dialect: "sqlite",
			DSN:     filepath.Join(t.TempDir(), "count.db"),
		},
	}
}

func skipIfShort(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
}

package testkit

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mysql"

	"github.com/ceyewan/unique/counter"
)

// NewMySQLDSN 返回测试 MySQL 的 DSN
// 优先使用 UNIQUE_TEST_MYSQL_DSN，否则用 testcontainers 启动容器
func NewMySQLDSN(t *testing.T) string {
	t.Helper()
	skipIfShort(t)
	if dsn := os.Getenv("UNIQUE_TEST_MYSQL_DSN"); dsn != "" {
		return dsn
	}

	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	container, err := mysql.Run(ctx,
		"mysql:8.0",
		mysql.WithDatabase("unique_db"),
		mysql.WithUsername("unique_user"),
		mysql.WithPassword("unique_password"),
	)
	require.NoError(t, err, "failed to start MySQL container")

	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	dsn, err := container.ConnectionString(ctx, "parseTime=true")
	require.NoError(t, err)

	return dsn
}

// NewMySQLCounterConfig 返回指向测试 MySQL 的计数器配置，每次调用使用独立的行
func NewMySQLCounterConfig(t *testing.T) *counter.Config {
	return &counter.Config{
		Driver: counter.DriverSQL,
		SQL: counter.SQLConfig{
			Dialect: "mysql",
			DSN:     NewMySQLDSN(t),
			Name:    "test-" + NewID(),
		},
	}
}

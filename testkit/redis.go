package testkit

import (
	"context"
	"net"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	rediscontainer "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/ceyewan/unique/counter"
)

// NewRedisAddr 返回测试 Redis 地址
// 优先使用 UNIQUE_TEST_REDIS_ADDR，否则用 testcontainers 启动容器，生命周期由 t.Cleanup 管理
func NewRedisAddr(t *testing.T) string {
	t.Helper()
	skipIfShort(t)
	if addr := os.Getenv("UNIQUE_TEST_REDIS_ADDR"); addr != "" {
		return addr
	}

	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	container, err := rediscontainer.Run(ctx, "redis:7-alpine")
	require.NoError(t, err, "failed to start Redis container")

	// 注册 cleanup
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	return net.JoinHostPort(host, mappedPort.Port())
}

// NewRedisCounterConfig 返回指向测试 Redis 的计数器配置，每次调用使用独立的键
func NewRedisCounterConfig(t *testing.T) *counter.Config {
	return &counter.Config{
		Driver: counter.DriverRedis,
		Redis: counter.RedisConfig{
			Addr: NewRedisAddr(t),
			Key:  "unique:test:" + NewID(),
		},
	}
}

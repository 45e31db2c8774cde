package testkit

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	natscontainer "github.com/testcontainers/testcontainers-go/modules/nats"

	"github.com/ceyewan/unique/counter"
)

// NewNATSURL 返回开启 JetStream 的测试 NATS 地址
// 优先使用 UNIQUE_TEST_NATS_URL，否则用 testcontainers 启动容器
func NewNATSURL(t *testing.T) string {
	t.Helper()
	skipIfShort(t)
	if url := os.Getenv("UNIQUE_TEST_NATS_URL"); url != "" {
		return url
	}

	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	container, err := natscontainer.Run(ctx, "nats:2.10-alpine")
	require.NoError(t, err, "failed to start NATS container")

	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "4222/tcp")
	require.NoError(t, err)

	return "nats://" + host + ":" + mappedPort.Port()
}

// NewNATSCounterConfig 返回指向测试 NATS 的计数器配置，每次调用使用独立的桶
func NewNATSCounterConfig(t *testing.T) *counter.Config {
	return &counter.Config{
		Driver: counter.DriverNATS,
		NATS: counter.NATSConfig{
			URL:    NewNATSURL(t),
			Bucket: "unique_test_" + NewID(),
		},
	}
}

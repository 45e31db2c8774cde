package testkit

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	etcdcontainer "github.com/testcontainers/testcontainers-go/modules/etcd"

	"github.com/ceyewan/unique/counter"
)

// NewEtcdEndpoints 返回测试 Etcd 端点
// 优先使用 UNIQUE_TEST_ETCD_ENDPOINT（逗号分隔），否则用 testcontainers 启动容器
func NewEtcdEndpoints(t *testing.T) []string {
	t.Helper()
	skipIfShort(t)
	if endpoint := os.Getenv("UNIQUE_TEST_ETCD_ENDPOINT"); endpoint != "" {
		return strings.Split(endpoint, ",")
	}

	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	container, err := etcdcontainer.Run(ctx, "gcr.io/etcd-development/etcd:v3.5.14")
	require.NoError(t, err, "failed to start Etcd container")

	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	endpoint, err := container.ClientEndpoint(ctx)
	require.NoError(t, err)

	return []string{endpoint}
}

// NewEtcdCounterConfig 返回指向测试 Etcd 的计数器配置，每次调用使用独立的键
func NewEtcdCounterConfig(t *testing.T) *counter.Config {
	return &counter.Config{
		Driver: counter.DriverEtcd,
		Etcd: counter.EtcdConfig{
			Endpoints: NewEtcdEndpoints(t),
			Key:       "/unique/test/" + NewID(),
		},
	}
}

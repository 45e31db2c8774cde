package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceyewan/unique/counter"
	"github.com/ceyewan/unique/trace"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// unsetAfter 在测试结束后移除 .env 写入的环境变量
func unsetAfter(t *testing.T, keys ...string) {
	t.Cleanup(func() {
		for _, k := range keys {
			_ = os.Unsetenv(k)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(WithConfigPaths(t.TempDir()))
	require.NoError(t, err)

	assert.Equal(t, ScopeTest, cfg.Scope)
	assert.Equal(t, counter.DriverMemory, cfg.Counter.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "unique", cfg.Metrics.ServiceName)
	assert.False(t, cfg.Trace.Enabled)
	assert.Equal(t, 1.0, cfg.Trace.Sampler)
	assert.Equal(t, trace.BatcherBatch, cfg.Trace.Batcher)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "unique.yaml"), `
scope: session
counter:
  driver: redis
  redis:
    addr: "10.0.0.1:6379"
    db: 2
    dial_timeout: 2s
log:
  level: debug
  format: json
metrics:
  enabled: true
  port: 9100
`)

	cfg, err := Load(WithConfigPaths(dir))
	require.NoError(t, err)

	assert.Equal(t, ScopeSession, cfg.Scope)
	assert.Equal(t, counter.DriverRedis, cfg.Counter.Driver)
	assert.Equal(t, "10.0.0.1:6379", cfg.Counter.Redis.Addr)
	assert.Equal(t, 2, cfg.Counter.Redis.DB)
	assert.Equal(t, 2*time.Second, cfg.Counter.Redis.DialTimeout)
	assert.Equal(t, "unique:count", cfg.Counter.Redis.Key, "counter defaults applied by Validate")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 9100, cfg.Metrics.Port)
}

func TestLoad_ExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, `
counter:
  driver: file
  file:
    path: /tmp/unique-explicit
`)

	cfg, err := Load(WithConfigFile(path))
	require.NoError(t, err)
	assert.Equal(t, counter.DriverFile, cfg.Counter.Driver)
	assert.Equal(t, "/tmp/unique-explicit", cfg.Counter.File.Path)

	_, err = Load(WithConfigFile(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "unique.yaml"), `
counter:
  driver: file
  file:
    path: /from/base
  etcd:
    key: /from/base
log:
  level: warn
`)
	writeFile(t, filepath.Join(dir, "unique.ci.yaml"), `
counter:
  etcd:
    key: /from/ci
`)
	writeFile(t, filepath.Join(dir, ".env"), `
UNIQUE_LOG_FORMAT=json
UNIQUE_COUNTER_FILE_PATH=/from/dotenv
`)
	unsetAfter(t, "UNIQUE_LOG_FORMAT", "UNIQUE_COUNTER_FILE_PATH")

	t.Setenv("UNIQUE_ENV", "ci")
	t.Setenv("UNIQUE_LOG_LEVEL", "error")

	loader, err := NewLoader(WithConfigPaths(dir))
	require.NoError(t, err)
	require.NoError(t, loader.Load())

	// 1. 环境变量
	assert.Equal(t, "error", loader.Get("log.level"))
	// 2. .env
	assert.Equal(t, "json", loader.Get("log.format"))
	assert.Equal(t, "/from/dotenv", loader.Get("counter.file.path"))
	// 3. 环境特定配置
	assert.Equal(t, "/from/ci", loader.Get("counter.etcd.key"))
	// 4. 基础配置
	assert.Equal(t, "file", loader.Get("counter.driver"))

	cfg, err := loader.Config()
	require.NoError(t, err)
	assert.Equal(t, "/from/dotenv", cfg.Counter.File.Path)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("UNIQUE_SCOPE", "session")
	t.Setenv("UNIQUE_COUNTER_DRIVER", "etcd")
	t.Setenv("UNIQUE_COUNTER_ETCD_ENDPOINTS", "10.0.0.1:2379,10.0.0.2:2379")
	t.Setenv("UNIQUE_COUNTER_ETCD_MAX_RETRIES", "3")

	cfg, err := Load(WithConfigPaths(t.TempDir()))
	require.NoError(t, err)

	assert.Equal(t, ScopeSession, cfg.Scope)
	assert.Equal(t, counter.DriverEtcd, cfg.Counter.Driver)
	assert.Equal(t, []string{"10.0.0.1:2379", "10.0.0.2:2379"}, cfg.Counter.Etcd.Endpoints)
	assert.Equal(t, 3, cfg.Counter.Etcd.MaxRetries)
}

func TestLoad_WithViper(t *testing.T) {
	v := viper.New()
	v.Set("counter.driver", "sql")
	v.Set("counter.sql.dsn", filepath.Join(t.TempDir(), "count.db"))

	cfg, err := Load(WithViper(v), WithConfigPaths(t.TempDir()))
	require.NoError(t, err)
	assert.Equal(t, counter.DriverSQL, cfg.Counter.Driver)
	assert.Equal(t, "sqlite", cfg.Counter.SQL.Dialect)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "zero value", cfg: Config{}},
		{name: "session scope", cfg: Config{Scope: ScopeSession}},
		{name: "unknown scope", cfg: Config{Scope: "module"}, wantErr: true},
		{name: "unknown driver", cfg: Config{Counter: counter.Config{Driver: "zookeeper"}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.True(t, IsInvalidInput(err), "%v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestMustLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "unique.yaml"), "scope: module\n")

	assert.Panics(t, func() { MustLoad(WithConfigPaths(dir)) })
	assert.NotPanics(t, func() { MustLoad(WithConfigPaths(t.TempDir())) })
}

func TestNewLoader_RequiresName(t *testing.T) {
	_, err := NewLoader(WithConfigName(""))
	assert.True(t, IsInvalidInput(err))
}

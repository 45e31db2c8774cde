// Package config 加载 unique 的运行配置。
// 基于 Viper 实现，支持 YAML 文件、.env 文件和环境变量。
//
// 配置优先级：环境变量 > .env > 环境特定配置 (unique.<env>.yaml) > 基础配置 (unique.yaml) > 默认值
//
// 基本使用：
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	c, err := counter.New(ctx, &cfg.Counter)
//
// 环境变量以 UNIQUE 为前缀，层级用下划线连接：
//
//	UNIQUE_SCOPE=session
//	UNIQUE_COUNTER_DRIVER=redis
//	UNIQUE_COUNTER_REDIS_ADDR=127.0.0.1:6379
package config

import (
	"github.com/ceyewan/unique/clog"
	"github.com/ceyewan/unique/counter"
	"github.com/ceyewan/unique/metrics"
	"github.com/ceyewan/unique/trace"
	"github.com/ceyewan/unique/xerrors"
)

// 计数器作用域
const (
	// ScopeTest 每个测试使用独立的计数器
	ScopeTest = "test"

	// ScopeSession 整个测试进程共享一个计数器
	ScopeSession = "session"
)

// Config unique 的完整配置
//
// YAML 示例：
//
//	scope: session
//	counter:
//	  driver: file
//	  file:
//	    path: .cache/unique/count
//	log:
//	  level: info
//	metrics:
//	  enabled: false
//	trace:
//	  enabled: false
type Config struct {
	// Scope 计数器作用域: "test" | "session"，默认 "test"
	Scope string `mapstructure:"scope" yaml:"scope"`

	Counter counter.Config `mapstructure:"counter" yaml:"counter"`
	Log     clog.Config    `mapstructure:"log" yaml:"log"`
	Metrics metrics.Config `mapstructure:"metrics" yaml:"metrics"`
	Trace   trace.Config   `mapstructure:"trace" yaml:"trace"`
}

// Validate 设置默认值并校验配置
func (c *Config) Validate() error {
	if c.Scope == "" {
		c.Scope = ScopeTest
	}
	if c.Scope != ScopeTest && c.Scope != ScopeSession {
		return xerrors.Wrapf(ErrValidationFailed, "unsupported scope %q", c.Scope)
	}
	if err := c.Counter.Validate(); err != nil {
		return xerrors.Wrap(err, "validate counter config")
	}
	return nil
}

// defaults 每个可配置项的默认值
//
// 所有键都必须在此登记，否则只通过环境变量提供的值无法被 Unmarshal 读到。
var defaults = map[string]any{
	"scope": ScopeTest,

	"counter.driver":             counter.DriverMemory,
	"counter.telemetry":          false,
	"counter.file.path":          "",
	"counter.redis.addr":         "",
	"counter.redis.password":     "",
	"counter.redis.db":           0,
	"counter.redis.key":          "",
	"counter.redis.dial_timeout": "0s",
	"counter.etcd.endpoints":     []string{},
	"counter.etcd.key":           "",
	"counter.etcd.dial_timeout":  "0s",
	"counter.etcd.max_retries":   0,
	"counter.nats.url":           "",
	"counter.nats.bucket":        "",
	"counter.nats.key":           "",
	"counter.nats.max_retries":   0,
	"counter.sql.dialect":        "",
	"counter.sql.dsn":            "",
	"counter.sql.name":           "",

	"log.level":      "info",
	"log.format":     "console",
	"log.output":     "stderr",
	"log.add_source": false,

	"metrics.enabled":      false,
	"metrics.service_name": "unique",
	"metrics.version":      "",
	"metrics.port":         0,
	"metrics.path":         "/metrics",

	"trace.enabled":      false,
	"trace.service_name": "unique",
	"trace.endpoint":     "",
	"trace.sampler":      1.0,
	"trace.batcher":      trace.BatcherBatch,
	"trace.insecure":     false,
}

// Load 按默认搜索规则加载并校验配置
func Load(opts ...Option) (*Config, error) {
	loader, err := NewLoader(opts...)
	if err != nil {
		return nil, err
	}
	if err := loader.Load(); err != nil {
		return nil, err
	}
	return loader.Config()
}

// MustLoad 加载配置，失败时 panic
func MustLoad(opts ...Option) *Config {
	return xerrors.Must(Load(opts...))
}

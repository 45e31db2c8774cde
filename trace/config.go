package trace

import "github.com/ceyewan/unique/xerrors"

// 导出方式
const (
	BatcherBatch  = "batch"
	BatcherSimple = "simple"
)

// Config 链路追踪配置
//
// 典型配置（YAML）：
//
//	trace:
//	  enabled: true
//	  endpoint: "localhost:4317"
//	  sampler: 1.0
type Config struct {
	// Enabled 为 false 时 Init 不修改全局 TracerProvider
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// ServiceName 作为 OpenTelemetry Resource 的 service.name，默认 "unique"
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`

	// Endpoint OTLP gRPC 地址，为空时只生成 Span 不导出
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`

	// Sampler 采样率 [0, 1]，默认 1
	Sampler float64 `mapstructure:"sampler" yaml:"sampler"`

	// Batcher "batch" | "simple"，默认 "batch"
	Batcher string `mapstructure:"batcher" yaml:"batcher"`

	// Insecure 不使用 TLS 连接 Endpoint
	Insecure bool `mapstructure:"insecure" yaml:"insecure"`
}

func (c *Config) setDefaults() {
	if c.ServiceName == "" {
		c.ServiceName = "unique"
	}
	if c.Sampler == 0 {
		c.Sampler = 1.0
	}
	if c.Batcher == "" {
		c.Batcher = BatcherBatch
	}
}

func (c *Config) validate() error {
	if c.Sampler < 0 || c.Sampler > 1 {
		return xerrors.Wrapf(xerrors.ErrInvalidInput, "sampler must be between 0 and 1, got %v", c.Sampler)
	}
	if c.Batcher != BatcherBatch && c.Batcher != BatcherSimple {
		return xerrors.Wrapf(xerrors.ErrInvalidInput, "batcher must be %q or %q, got %q", BatcherBatch, BatcherSimple, c.Batcher)
	}
	return nil
}

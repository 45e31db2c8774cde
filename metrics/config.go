package metrics

// Config 指标配置
//
// 典型配置（YAML）：
//
//	metrics:
//	  enabled: true
//	  service_name: "user-service-tests"
//	  port: 9090
//	  path: "/metrics"
type Config struct {
	// Enabled 为 false 时 New 返回 noop Meter
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// ServiceName 作为 OpenTelemetry Resource 的 service.name
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`

	// Version 作为 OpenTelemetry Resource 的 service.version
	Version string `mapstructure:"version" yaml:"version"`

	// Port 大于 0 时启动 Prometheus HTTP 服务
	Port int `mapstructure:"port" yaml:"port"`

	// Path Prometheus 采集路径，默认 "/metrics"
	Path string `mapstructure:"path" yaml:"path"`
}

func (c *Config) setDefaults() {
	if c.ServiceName == "" {
		c.ServiceName = "unique"
	}
	if c.Path == "" {
		c.Path = "/metrics"
	}
}

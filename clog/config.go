package clog

import (
	"fmt"
	"strings"
)

const timeFormat = "2006-01-02T15:04:05.000Z07:00"

// Config 日志配置
//
// YAML 示例：
//
//	log:
//	  level: debug
//	  format: json
//	  output: stderr
type Config struct {
	Level     string `mapstructure:"level" yaml:"level"`           // debug|info|warn|error
	Format    string `mapstructure:"format" yaml:"format"`         // json|console
	Output    string `mapstructure:"output" yaml:"output"`         // stdout|stderr|<file path>
	AddSource bool   `mapstructure:"add_source" yaml:"add_source"` // 输出 caller 字段
}

// NewDevDefaultConfig 开发环境默认配置：debug 级别，console 格式，输出到 stderr
func NewDevDefaultConfig() *Config {
	return &Config{
		Level:  "debug",
		Format: "console",
		Output: "stderr",
	}
}

// validate 设置默认值并校验
func (c *Config) validate() error {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "console"
	}
	if c.Output == "" {
		c.Output = "stderr"
	}

	if _, err := ParseLevel(c.Level); err != nil {
		return err
	}
	format := strings.ToLower(c.Format)
	if format != "json" && format != "console" {
		return fmt.Errorf("invalid format: %s, must be json or console", c.Format)
	}
	return nil
}

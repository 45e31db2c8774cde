package config

import (
	"github.com/spf13/viper"

	"github.com/ceyewan/unique/clog"
)

// Option 加载选项
type Option func(*options)

type options struct {
	name      string   // 配置文件名称（不含扩展名）
	paths     []string // 配置文件搜索路径
	file      string   // 显式指定的配置文件，优先于 name/paths
	fileType  string   // 配置文件类型
	envPrefix string   // 环境变量前缀
	viper     *viper.Viper
	logger    clog.Logger
}

func defaultOptions() *options {
	return &options{
		name:      "unique",
		paths:     []string{".", "./config"},
		fileType:  "yaml",
		envPrefix: "UNIQUE",
	}
}

// WithConfigName 设置配置文件名称（不带扩展名）
func WithConfigName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithConfigPaths 设置配置文件搜索路径（覆盖默认值）
func WithConfigPaths(paths ...string) Option {
	return func(o *options) {
		o.paths = paths
	}
}

// WithConfigFile 直接指定配置文件路径，文件必须存在
func WithConfigFile(path string) Option {
	return func(o *options) {
		o.file = path
	}
}

// WithEnvPrefix 设置环境变量前缀
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithViper 使用外部 Viper 实例，便于命令行先绑定 flag
func WithViper(v *viper.Viper) Option {
	return func(o *options) {
		o.viper = v
	}
}

// WithLogger 设置 Logger，记录配置来源
func WithLogger(logger clog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

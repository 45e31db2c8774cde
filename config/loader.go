package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/ceyewan/unique/clog"
	"github.com/ceyewan/unique/xerrors"
)

// Loader 基于 Viper 的配置加载器
type Loader struct {
	v      *viper.Viper
	opts   *options
	logger clog.Logger
}

// NewLoader 创建配置加载器
func NewLoader(opts ...Option) (*Loader, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.name == "" && o.file == "" {
		return nil, xerrors.WithCode(xerrors.ErrInvalidInput, "config_name_required")
	}
	o.envPrefix = strings.ToUpper(o.envPrefix)

	v := o.viper
	if v == nil {
		v = viper.New()
	}
	logger := o.logger
	if logger == nil {
		logger = clog.Discard()
	}

	return &Loader{
		v:      v,
		opts:   o,
		logger: logger.With(clog.String("component", "config")),
	}, nil
}

// Viper 返回底层 Viper 实例
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// Get 获取原始配置值
func (l *Loader) Get(key string) any {
	return l.v.Get(key)
}

// Load 从所有来源加载配置
func (l *Loader) Load() error {
	// 1. 默认值，同时让 AutomaticEnv 能覆盖每个键
	for key, value := range defaults {
		l.v.SetDefault(key, value)
	}

	// 2. 环境变量（最高优先级）
	if l.opts.envPrefix != "" {
		l.v.SetEnvPrefix(l.opts.envPrefix)
	}
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	// 3. .env 文件，不覆盖已存在的环境变量
	l.loadDotEnv()

	// 4. 基础配置
	if l.opts.file != "" {
		l.v.SetConfigFile(l.opts.file)
		if err := l.v.ReadInConfig(); err != nil {
			return xerrors.Wrapf(err, "failed to read config file %s", l.opts.file)
		}
		l.logger.Debug("loaded config file", clog.String("file", l.opts.file))
		return nil
	}

	l.v.SetConfigName(l.opts.name)
	l.v.SetConfigType(l.opts.fileType)
	for _, path := range l.opts.paths {
		l.v.AddConfigPath(path)
	}
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return xerrors.Wrapf(err, "failed to read config file %s", l.opts.name)
		}
		l.logger.Debug("no config file found, using defaults", clog.Any("paths", l.opts.paths))
	} else {
		l.logger.Debug("loaded config file", clog.String("file", l.v.ConfigFileUsed()))
	}

	// 5. 环境特定配置
	return l.loadEnvironmentConfig()
}

// Config 反序列化并校验完整配置
func (l *Loader) Config() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, xerrors.Wrap(err, "failed to unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadDotEnv 从搜索路径加载 .env 文件，文件不存在时忽略
func (l *Loader) loadDotEnv() {
	dirs := l.opts.paths
	if l.opts.file != "" {
		dirs = []string{filepath.Dir(l.opts.file)}
	}
	for _, dir := range dirs {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			l.logger.Warn("failed to load .env file", clog.String("file", envPath), clog.Error(err))
			continue
		}
		l.logger.Debug("loaded .env file", clog.String("file", envPath))
	}
}

// loadEnvironmentConfig 合并 <name>.<env> 配置，env 取自 <PREFIX>_ENV
func (l *Loader) loadEnvironmentConfig() error {
	env := os.Getenv(fmt.Sprintf("%s_ENV", l.opts.envPrefix))
	if env == "" {
		return nil
	}

	envConfigName := fmt.Sprintf("%s.%s", l.opts.name, env)
	l.v.SetConfigName(envConfigName)
	defer l.v.SetConfigName(l.opts.name)

	if err := l.v.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return xerrors.Wrapf(err, "failed to merge environment config %s", envConfigName)
		}
		l.logger.Debug("no environment config found", clog.String("env", env))
		return nil
	}
	l.logger.Debug("merged environment config", clog.String("env", env))
	return nil
}

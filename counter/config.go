package counter

import (
	"os"
	"path/filepath"
	"time"

	"github.com/ceyewan/unique/xerrors"
)

// ========================================
// 配置结构 (Configuration)
// ========================================

// Config 计数器配置
//
// YAML 示例：
//
//	counter:
//	  driver: redis
//	  redis:
//	    addr: localhost:6379
//	    key: myapp:tests:count
type Config struct {
	// Driver 后端类型: "memory" | "file" | "redis" | "etcd" | "nats" | "sql"，默认 "memory"
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Telemetry 为工厂创建的 Redis/GORM 客户端启用 OpenTelemetry 插桩
	Telemetry bool `mapstructure:"telemetry" yaml:"telemetry"`

	File  FileConfig  `mapstructure:"file" yaml:"file"`
	Redis RedisConfig `mapstructure:"redis" yaml:"redis"`
	Etcd  EtcdConfig  `mapstructure:"etcd" yaml:"etcd"`
	NATS  NATSConfig  `mapstructure:"nats" yaml:"nats"`
	SQL   SQLConfig   `mapstructure:"sql" yaml:"sql"`
}

// FileConfig 文件计数器配置
type FileConfig struct {
	// Path 计数文件路径，默认 DefaultFilePath()
	Path string `mapstructure:"path" yaml:"path"`
}

// RedisConfig Redis 计数器配置
type RedisConfig struct {
	Addr        string        `mapstructure:"addr" yaml:"addr"`                 // 默认 "localhost:6379"
	Password    string        `mapstructure:"password" yaml:"password"`         // 可选
	DB          int           `mapstructure:"db" yaml:"db"`                     // 默认 0
	Key         string        `mapstructure:"key" yaml:"key"`                   // 默认 "unique:count"
	DialTimeout time.Duration `mapstructure:"dial_timeout" yaml:"dial_timeout"` // 默认 5s
}

// EtcdConfig Etcd 计数器配置
type EtcdConfig struct {
	Endpoints   []string      `mapstructure:"endpoints" yaml:"endpoints"`       // 默认 ["localhost:2379"]
	Key         string        `mapstructure:"key" yaml:"key"`                   // 默认 "/unique/count"
	DialTimeout time.Duration `mapstructure:"dial_timeout" yaml:"dial_timeout"` // 默认 5s
	MaxRetries  int           `mapstructure:"max_retries" yaml:"max_retries"`   // CAS 重试次数，默认 16
}

// NATSConfig NATS JetStream KV 计数器配置
type NATSConfig struct {
	URL        string `mapstructure:"url" yaml:"url"`                 // 默认 nats.DefaultURL
	Bucket     string `mapstructure:"bucket" yaml:"bucket"`           // 默认 "unique"
	Key        string `mapstructure:"key" yaml:"key"`                 // 默认 "count"
	MaxRetries int    `mapstructure:"max_retries" yaml:"max_retries"` // CAS 重试次数，默认 16
}

// SQLConfig GORM 计数器配置
type SQLConfig struct {
	// Dialect 数据库类型: "sqlite" | "mysql"，默认 "sqlite"
	Dialect string `mapstructure:"dialect" yaml:"dialect"`

	// DSN 连接串；sqlite 默认为缓存目录下的 count.db
	DSN string `mapstructure:"dsn" yaml:"dsn"`

	// Name 计数行名称，同一张表可容纳多条独立序列，默认 "count"
	Name string `mapstructure:"name" yaml:"name"`
}

const (
	defaultRedisKey   = "unique:count"
	defaultEtcdKey    = "/unique/count"
	defaultNATSBucket = "unique"
	defaultNATSKey    = "count"
	defaultSQLName    = "count"
	defaultMaxRetries = 16
	defaultTimeout    = 5 * time.Second
)

// DefaultFilePath 返回默认计数文件路径：<用户缓存目录>/unique/count
//
// 无法确定用户缓存目录时退回系统临时目录。
func DefaultFilePath() string {
	return filepath.Join(cacheDir(), "unique", "count")
}

func defaultSQLiteDSN() string {
	return filepath.Join(cacheDir(), "unique", "count.db")
}

func cacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil || dir == "" {
		return os.TempDir()
	}
	return dir
}

// ========================================
// 默认值与校验 (Defaults & Validation)
// ========================================

func (c *Config) setDefaults() {
	if c.Driver == "" {
		c.Driver = DriverMemory
	}
	switch c.Driver {
	case DriverFile:
		c.File.setDefaults()
	case DriverRedis:
		c.Redis.setDefaults()
	case DriverEtcd:
		c.Etcd.setDefaults()
	case DriverNATS:
		c.NATS.setDefaults()
	case DriverSQL:
		c.SQL.setDefaults()
	}
}

// Validate 设置默认值并校验配置
func (c *Config) Validate() error {
	c.setDefaults()
	switch c.Driver {
	case DriverMemory:
		return nil
	case DriverFile:
		return c.File.validate()
	case DriverRedis:
		return c.Redis.validate()
	case DriverEtcd:
		return c.Etcd.validate()
	case DriverNATS:
		return c.NATS.validate()
	case DriverSQL:
		return c.SQL.validate()
	default:
		return xerrors.WithCode(xerrors.ErrInvalidInput, "unsupported_driver")
	}
}

func (c *FileConfig) setDefaults() {
	if c.Path == "" {
		c.Path = DefaultFilePath()
	}
}

func (c *FileConfig) validate() error {
	if c.Path == "" {
		return xerrors.WithCode(xerrors.ErrInvalidInput, "path_required")
	}
	return nil
}

func (c *RedisConfig) setDefaults() {
	if c.Addr == "" {
		c.Addr = "localhost:6379"
	}
	if c.Key == "" {
		c.Key = defaultRedisKey
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = defaultTimeout
	}
}

func (c *RedisConfig) validate() error {
	if c.Key == "" {
		return xerrors.WithCode(xerrors.ErrInvalidInput, "key_required")
	}
	if c.DB < 0 {
		return xerrors.WithCode(xerrors.ErrInvalidInput, "db_cannot_be_negative")
	}
	return nil
}

func (c *EtcdConfig) setDefaults() {
	if len(c.Endpoints) == 0 {
		c.Endpoints = []string{"localhost:2379"}
	}
	if c.Key == "" {
		c.Key = defaultEtcdKey
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = defaultTimeout
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = defaultMaxRetries
	}
}

func (c *EtcdConfig) validate() error {
	if c.Key == "" {
		return xerrors.WithCode(xerrors.ErrInvalidInput, "key_required")
	}
	if c.MaxRetries <= 0 {
		return xerrors.WithCode(xerrors.ErrInvalidInput, "max_retries_must_be_positive")
	}
	return nil
}

func (c *NATSConfig) setDefaults() {
	if c.URL == "" {
		c.URL = "nats://127.0.0.1:4222"
	}
	if c.Bucket == "" {
		c.Bucket = defaultNATSBucket
	}
	if c.Key == "" {
		c.Key = defaultNATSKey
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = defaultMaxRetries
	}
}

func (c *NATSConfig) validate() error {
	if c.Bucket == "" || c.Key == "" {
		return xerrors.WithCode(xerrors.ErrInvalidInput, "bucket_and_key_required")
	}
	if c.MaxRetries <= 0 {
		return xerrors.WithCode(xerrors.ErrInvalidInput, "max_retries_must_be_positive")
	}
	return nil
}

func (c *SQLConfig) setDefaults() {
	if c.Dialect == "" {
		c.Dialect = "sqlite"
	}
	if c.DSN == "" && c.Dialect == "sqlite" {
		c.DSN = defaultSQLiteDSN()
	}
	if c.Name == "" {
		c.Name = defaultSQLName
	}
}

func (c *SQLConfig) validate() error {
	if c.Dialect != "sqlite" && c.Dialect != "mysql" {
		return xerrors.WithCode(xerrors.ErrInvalidInput, "unsupported_dialect")
	}
	if c.DSN == "" {
		return xerrors.WithCode(xerrors.ErrInvalidInput, "dsn_required")
	}
	if c.Name == "" {
		return xerrors.WithCode(xerrors.ErrInvalidInput, "name_required")
	}
	return nil
}

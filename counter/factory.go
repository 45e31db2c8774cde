package counter

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	clientv3 "go.etcd.io/etcd/client/v3"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ceyewan/unique/clog"
	"github.com/ceyewan/unique/xerrors"
)

// ========================================
// 工厂函数 (Factory)
// ========================================

// New 根据配置创建计数器
//
// 对需要网络连接的后端，New 会建立连接并做一次连通性检查；
// 创建出的连接归计数器所有，在 Close 时释放。
//
// 使用示例:
//
//	c, err := counter.New(ctx, &counter.Config{Driver: counter.DriverRedis},
//	    counter.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
func New(ctx context.Context, cfg *Config, opts ...Option) (Counter, error) {
	if cfg == nil {
		return nil, xerrors.WithCode(ErrConfigNil, "counter_config_nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, xerrors.Wrapf(err, "invalid counter config")
	}

	var (
		c   Counter
		err error
	)
	switch cfg.Driver {
	case DriverMemory:
		c = NewMemory(opts...)
	case DriverFile:
		c, err = asCounter(NewFile(&cfg.File, opts...))
	case DriverRedis:
		c, err = asCounter(newOwnedRedis(ctx, &cfg.Redis, cfg.Telemetry, opts))
	case DriverEtcd:
		c, err = asCounter(newOwnedEtcd(ctx, &cfg.Etcd, opts))
	case DriverNATS:
		c, err = asCounter(newOwnedNATS(ctx, &cfg.NATS, opts))
	case DriverSQL:
		c, err = asCounter(newOwnedSQL(&cfg.SQL, cfg.Telemetry, opts))
	default:
		err = xerrors.WithCode(xerrors.ErrInvalidInput, "unsupported_driver")
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// asCounter 避免把带类型的 nil 指针装进接口
func asCounter[C Counter](c C, err error) (Counter, error) {
	if err != nil {
		return nil, err
	}
	return c, nil
}

// MustNew 创建计数器，失败时 panic
func MustNew(ctx context.Context, cfg *Config, opts ...Option) Counter {
	return xerrors.Must(New(ctx, cfg, opts...))
}

func newOwnedRedis(ctx context.Context, cfg *RedisConfig, telemetry bool, opts []Option) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	if telemetry {
		if err := xerrors.Combine(
			redisotel.InstrumentTracing(client),
			redisotel.InstrumentMetrics(client),
		); err != nil {
			_ = client.Close()
			return nil, xerrors.Wrap(err, "instrument redis client")
		}
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, xerrors.Wrapf(err, "redis ping %s", cfg.Addr)
	}

	c, err := NewRedis(client, cfg.Key, opts...)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	c.owned = true
	c.logger.Info("redis counter connected", clog.String("addr", cfg.Addr))
	return c, nil
}

func newOwnedEtcd(ctx context.Context, cfg *EtcdConfig, opts []Option) (*Etcd, error) {
	client, err := clientv3.New(clientv3.Config{
		Endpoints:   cfg.Endpoints,
		DialTimeout: cfg.DialTimeout,
		Context:     ctx,
	})
	if err != nil {
		return nil, xerrors.Wrap(err, "create etcd client")
	}

	statusCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	if _, err := client.Status(statusCtx, cfg.Endpoints[0]); err != nil {
		_ = client.Close()
		return nil, xerrors.Wrapf(err, "etcd status %s", cfg.Endpoints[0])
	}

	c, err := NewEtcd(client, cfg.Key, cfg.MaxRetries, opts...)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	c.owned = true
	c.logger.Info("etcd counter connected", clog.Any("endpoints", cfg.Endpoints))
	return c, nil
}

func newOwnedNATS(ctx context.Context, cfg *NATSConfig, opts []Option) (*NATS, error) {
	conn, err := nats.Connect(cfg.URL, nats.Name("unique-counter"), nats.Timeout(defaultTimeout))
	if err != nil {
		return nil, xerrors.Wrapf(err, "nats connect %s", cfg.URL)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, xerrors.Wrap(err, "create jetstream context")
	}

	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      cfg.Bucket,
		Description: "unique counter",
	})
	if err != nil {
		conn.Close()
		return nil, xerrors.Wrapf(err, "create kv bucket %s", cfg.Bucket)
	}

	c, err := NewNATS(kv, cfg.Key, cfg.MaxRetries, opts...)
	if err != nil {
		conn.Close()
		return nil, err
	}
	c.conn = conn
	c.logger.Info("nats counter connected", clog.String("url", cfg.URL))
	return c, nil
}

func newOwnedSQL(cfg *SQLConfig, telemetry bool, opts []Option) (*SQL, error) {
	var dialector gorm.Dialector
	switch cfg.Dialect {
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	default:
		if err := ensureParentDir(cfg.DSN); err != nil {
			return nil, err
		}
		dialector = sqlite.Open(cfg.DSN)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newGormLogger(applyOptions(DriverSQL, opts).logger),
	})
	if err != nil {
		return nil, xerrors.Wrapf(err, "open %s database", cfg.Dialect)
	}

	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	if telemetry {
		if err := db.Use(otelgorm.NewPlugin()); err != nil {
			closeDB()
			return nil, xerrors.Wrap(err, "instrument gorm")
		}
	}

	c, err := NewSQL(db, cfg.Name, opts...)
	if err != nil {
		closeDB()
		return nil, err
	}
	c.owned = true
	return c, nil
}

// ensureParentDir 为 sqlite 文件路径创建父目录，内存库和 URI 形式的 DSN 跳过
func ensureParentDir(dsn string) error {
	if dsn == ":memory:" || strings.HasPrefix(dsn, "file:") {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
		return xerrors.Wrap(err, "create sqlite directory")
	}
	return nil
}

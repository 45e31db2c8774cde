package counter

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceyewan/unique/xerrors"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantCode string
		check    func(t *testing.T, cfg *Config)
	}{
		{
			name: "empty driver defaults to memory",
			cfg:  Config{},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DriverMemory, cfg.Driver)
			},
		},
		{
			name: "file path defaults to cache dir",
			cfg:  Config{Driver: DriverFile},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultFilePath(), cfg.File.Path)
				assert.True(t, strings.HasSuffix(cfg.File.Path, filepath.Join("unique", "count")))
			},
		},
		{
			name: "redis defaults",
			cfg:  Config{Driver: DriverRedis},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
				assert.Equal(t, defaultRedisKey, cfg.Redis.Key)
				assert.Equal(t, defaultTimeout, cfg.Redis.DialTimeout)
			},
		},
		{
			name:     "redis negative db",
			cfg:      Config{Driver: DriverRedis, Redis: RedisConfig{DB: -1}},
			wantCode: "db_cannot_be_negative",
		},
		{
			name: "etcd defaults",
			cfg:  Config{Driver: DriverEtcd},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"localhost:2379"}, cfg.Etcd.Endpoints)
				assert.Equal(t, defaultEtcdKey, cfg.Etcd.Key)
				assert.Equal(t, defaultMaxRetries, cfg.Etcd.MaxRetries)
			},
		},
		{
			name: "nats defaults",
			cfg:  Config{Driver: DriverNATS},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, defaultNATSBucket, cfg.NATS.Bucket)
				assert.Equal(t, defaultNATSKey, cfg.NATS.Key)
			},
		},
		{
			name: "sql defaults to sqlite in cache dir",
			cfg:  Config{Driver: DriverSQL},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "sqlite", cfg.SQL.Dialect)
				assert.Equal(t, defaultSQLiteDSN(), cfg.SQL.DSN)
				assert.Equal(t, defaultSQLName, cfg.SQL.Name)
			},
		},
		{
			name:     "mysql requires dsn",
			cfg:      Config{Driver: DriverSQL, SQL: SQLConfig{Dialect: "mysql"}},
			wantCode: "dsn_required",
		},
		{
			name:     "unsupported dialect",
			cfg:      Config{Driver: DriverSQL, SQL: SQLConfig{Dialect: "oracle", DSN: "x"}},
			wantCode: "unsupported_dialect",
		},
		{
			name:     "unsupported driver",
			cfg:      Config{Driver: "zookeeper"},
			wantCode: "unsupported_driver",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			err := cfg.Validate()
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
				assert.Equal(t, tt.wantCode, xerrors.GetCode(err))
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, &cfg)
			}
		})
	}
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("nil config", func(t *testing.T) {
		c, err := New(ctx, nil)
		assert.ErrorIs(t, err, ErrConfigNil)
		assert.Nil(t, c)
	})

	t.Run("unsupported driver", func(t *testing.T) {
		c, err := New(ctx, &Config{Driver: "zookeeper"})
		assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
		assert.Nil(t, c)
	})

	t.Run("memory", func(t *testing.T) {
		c, err := New(ctx, &Config{Driver: DriverMemory})
		require.NoError(t, err)
		assert.IsType(t, &Memory{}, c)
		assertSequence(t, c, 3)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "count")
		c, err := New(ctx, &Config{Driver: DriverFile, File: FileConfig{Path: path}})
		require.NoError(t, err)
		defer c.Close()
		assert.IsType(t, &File{}, c)
		assertSequence(t, c, 3)
	})

	t.Run("sqlite", func(t *testing.T) {
		dsn := filepath.Join(t.TempDir(), "sub", "count.db")
		c, err := New(ctx, &Config{
			Driver:    DriverSQL,
			Telemetry: true,
			SQL:       SQLConfig{Dialect: "sqlite", DSN: dsn},
		})
		require.NoError(t, err)
		assert.IsType(t, &SQL{}, c)
		assertSequence(t, c, 3)
		assert.NoError(t, c.Close())
	})
}

func TestMustNew(t *testing.T) {
	assert.Panics(t, func() {
		MustNew(context.Background(), &Config{Driver: "zookeeper"})
	})
	assert.NotPanics(t, func() {
		MustNew(context.Background(), &Config{})
	})
}

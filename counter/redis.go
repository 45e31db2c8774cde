package counter

import (
	"context"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/ceyewan/unique/clog"
	"github.com/ceyewan/unique/xerrors"
)

// ========================================
// Redis 实现 (Redis Implementation)
// ========================================

// Redis 基于 INCR 的计数器
//
// 键中保存的是已发放的个数，INCR 的结果减 1 即为本次返回值，
// 因此不存在的键第一次返回 0。INCR 是原子操作，多个进程共享同一个键时
// 不会产生重复值。
type Redis struct {
	client *redis.Client
	key    string
	owned  bool
	logger clog.Logger
}

// NewRedis 使用外部 Redis 客户端创建计数器，Close 不会关闭该客户端
//
// 使用示例:
//
//	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	c, _ := counter.NewRedis(rdb, "myapp:count", counter.WithLogger(logger))
func NewRedis(client *redis.Client, key string, opts ...Option) (*Redis, error) {
	if client == nil {
		return nil, xerrors.WithCode(ErrClientNil, "redis_client_nil")
	}
	if key == "" {
		return nil, xerrors.WithCode(xerrors.ErrInvalidInput, "key_required")
	}
	o := applyOptions(DriverRedis, opts)
	return &Redis{
		client: client,
		key:    key,
		logger: o.logger.With(clog.String("key", key)),
	}, nil
}

// Next 原子递增并返回递增前的值
func (r *Redis) Next(ctx context.Context) (int64, error) {
	result, err := r.client.Incr(ctx, r.key).Result()
	if err != nil {
		if isNotIntegerErr(err) {
			r.logger.ErrorContext(ctx, "count key holds a non-integer value", clog.Error(err))
			return 0, xerrors.Wrapf(ErrInvalidCount, "redis key %s", r.key)
		}
		r.logger.ErrorContext(ctx, "failed to increment count", clog.Error(err))
		return 0, xerrors.Wrap(err, "redis incr failed")
	}

	value := result - 1
	if value < 0 {
		return 0, xerrors.Wrapf(ErrInvalidCount, "redis key %s: negative count %d", r.key, value)
	}

	r.logger.DebugContext(ctx, "next count", clog.Int64("value", value))
	return value, nil
}

// Close 仅关闭由工厂创建的客户端
func (r *Redis) Close() error {
	if !r.owned {
		return nil
	}
	return r.client.Close()
}

// redisNotIntegerPrefix INCR 作用于非整数值或即将溢出时服务端的回复：
// "ERR value is not an integer or out of range"
const redisNotIntegerPrefix = "ERR value is not an integer"

// isNotIntegerErr 只识别服务端回复的错误，网络错误不会被当作计数损坏
func isNotIntegerErr(err error) bool {
	var rerr redis.Error
	if !errors.As(err, &rerr) {
		return false
	}
	return strings.HasPrefix(rerr.Error(), redisNotIntegerPrefix)
}

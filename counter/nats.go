package counter

import (
	"context"
	"errors"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/ceyewan/unique/clog"
	"github.com/ceyewan/unique/xerrors"
)

// ========================================
// NATS JetStream KV 实现 (NATS Implementation)
// ========================================

// NATS 基于 JetStream KeyValue 修订号的计数器
//
// 键不存在时用 Create 写入 "1"；存在时用 Update 携带读取到的修订号写入
// 当前值加 1。修订号不匹配说明有并发写入，重新读取后重试。
type NATS struct {
	kv         jetstream.KeyValue
	key        string
	maxRetries int
	conn       *nats.Conn // 仅工厂创建时非空
	logger     clog.Logger
}

// NewNATS 使用外部 KeyValue 桶创建计数器，Close 不会关闭底层连接
func NewNATS(kv jetstream.KeyValue, key string, maxRetries int, opts ...Option) (*NATS, error) {
	if kv == nil {
		return nil, xerrors.WithCode(ErrClientNil, "nats_kv_nil")
	}
	if key == "" {
		return nil, xerrors.WithCode(xerrors.ErrInvalidInput, "key_required")
	}
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	o := applyOptions(DriverNATS, opts)
	return &NATS{
		kv:         kv,
		key:        key,
		maxRetries: maxRetries,
		logger:     o.logger.With(clog.String("bucket", kv.Bucket()), clog.String("key", key)),
	}, nil
}

// Next 读取当前值并按修订号写回当前值加 1
func (n *NATS) Next(ctx context.Context) (int64, error) {
	for attempt := 0; attempt < n.maxRetries; attempt++ {
		value, ok, err := n.tryNext(ctx)
		if err != nil {
			return 0, err
		}
		if ok {
			n.logger.DebugContext(ctx, "next count",
				clog.Int64("value", value),
				clog.Int("attempt", attempt),
			)
			return value, nil
		}
	}

	n.logger.WarnContext(ctx, "too many concurrent updates", clog.Int("max_retries", n.maxRetries))
	return 0, xerrors.Wrapf(ErrConflict, "nats key %s", n.key)
}

func (n *NATS) tryNext(ctx context.Context) (int64, bool, error) {
	entry, err := n.kv.Get(ctx, n.key)
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		_, err = n.kv.Create(ctx, n.key, []byte(formatCount(1)))
		if errors.Is(err, jetstream.ErrKeyExists) {
			return 0, false, nil
		}
		if err != nil {
			n.logger.ErrorContext(ctx, "failed to create count", clog.Error(err))
			return 0, false, xerrors.Wrap(err, "nats kv create failed")
		}
		return 0, true, nil
	}
	if err != nil {
		n.logger.ErrorContext(ctx, "failed to get count", clog.Error(err))
		return 0, false, xerrors.Wrap(err, "nats kv get failed")
	}

	current, err := parseCount(string(entry.Value()))
	if err != nil {
		n.logger.ErrorContext(ctx, "count key is corrupted", clog.Error(err))
		return 0, false, err
	}

	_, err = n.kv.Update(ctx, n.key, []byte(formatCount(current+1)), entry.Revision())
	if isWrongSequenceErr(err) {
		return 0, false, nil
	}
	if err != nil {
		n.logger.ErrorContext(ctx, "failed to update count", clog.Error(err))
		return 0, false, xerrors.Wrap(err, "nats kv update failed")
	}
	return current, true, nil
}

// Close 仅关闭由工厂创建的连接
func (n *NATS) Close() error {
	if n.conn == nil {
		return nil
	}
	if err := n.conn.Drain(); err != nil {
		n.conn.Close()
		return xerrors.Wrap(err, "nats drain failed")
	}
	return nil
}

func isWrongSequenceErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, jetstream.ErrKeyExists) {
		return true
	}
	var apiErr *jetstream.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode == jetstream.JSErrCodeStreamWrongLastSequence
}

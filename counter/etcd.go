package counter

import (
	"context"

	clientv3 "go.etcd.io/etcd/client/v3"

	"github.com/ceyewan/unique/clog"
	"github.com/ceyewan/unique/xerrors"
)

// ========================================
// Etcd 实现 (Etcd Implementation)
// ========================================

// Etcd 基于事务比较修订号（CAS）的计数器
//
// 键不存在时以 CreateRevision == 0 为条件创建；存在时以 ModRevision
// 未变化为条件写入当前值加 1。条件失败说明有并发写入，重新读取后重试。
type Etcd struct {
	client     *clientv3.Client
	key        string
	maxRetries int
	owned      bool
	logger     clog.Logger
}

// NewEtcd 使用外部 Etcd 客户端创建计数器，Close 不会关闭该客户端
func NewEtcd(client *clientv3.Client, key string, maxRetries int, opts ...Option) (*Etcd, error) {
	if client == nil {
		return nil, xerrors.WithCode(ErrClientNil, "etcd_client_nil")
	}
	if key == "" {
		return nil, xerrors.WithCode(xerrors.ErrInvalidInput, "key_required")
	}
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	o := applyOptions(DriverEtcd, opts)
	return &Etcd{
		client:     client,
		key:        key,
		maxRetries: maxRetries,
		logger:     o.logger.With(clog.String("key", key)),
	}, nil
}

// Next 读取当前值并以 CAS 方式写回当前值加 1
func (e *Etcd) Next(ctx context.Context) (int64, error) {
	for attempt := 0; attempt < e.maxRetries; attempt++ {
		value, ok, err := e.tryNext(ctx)
		if err != nil {
			return 0, err
		}
		if ok {
			e.logger.DebugContext(ctx, "next count",
				clog.Int64("value", value),
				clog.Int("attempt", attempt),
			)
			return value, nil
		}
	}

	e.logger.WarnContext(ctx, "too many concurrent updates", clog.Int("max_retries", e.maxRetries))
	return 0, xerrors.Wrapf(ErrConflict, "etcd key %s", e.key)
}

func (e *Etcd) tryNext(ctx context.Context) (int64, bool, error) {
	resp, err := e.client.Get(ctx, e.key)
	if err != nil {
		e.logger.ErrorContext(ctx, "failed to get count", clog.Error(err))
		return 0, false, xerrors.Wrap(err, "etcd get failed")
	}

	var (
		current int64
		cmp     clientv3.Cmp
	)
	if len(resp.Kvs) == 0 {
		cmp = clientv3.Compare(clientv3.CreateRevision(e.key), "=", 0)
	} else {
		kv := resp.Kvs[0]
		current, err = parseCount(string(kv.Value))
		if err != nil {
			e.logger.ErrorContext(ctx, "count key is corrupted", clog.Error(err))
			return 0, false, err
		}
		cmp = clientv3.Compare(clientv3.ModRevision(e.key), "=", kv.ModRevision)
	}

	txn, err := e.client.Txn(ctx).
		If(cmp).
		Then(clientv3.OpPut(e.key, formatCount(current+1))).
		Commit()
	if err != nil {
		e.logger.ErrorContext(ctx, "failed to commit count", clog.Error(err))
		return 0, false, xerrors.Wrap(err, "etcd txn failed")
	}
	return current, txn.Succeeded, nil
}

// Close 仅关闭由工厂创建的客户端
func (e *Etcd) Close() error {
	if !e.owned {
		return nil
	}
	return e.client.Close()
}

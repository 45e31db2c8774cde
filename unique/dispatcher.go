// Package unique 生成互不重复的测试数据。
//
// Dispatcher 绑定一个计数源和一个生成器注册表：每次按名称取值时，
// 先查找生成器，再由生成器从计数源取得下一个整数并塑形为目标类型。
// 同一个 Dispatcher 上的所有生成器共享同一计数流，因此混用不同类型的
// 生成器也不会产生相同的底层整数。
//
// 基本使用：
//
//	d, _ := unique.New(counter.NewMemory())
//	email, _ := unique.Email(ctx, d, unique.EmailOptions{Prefix: "alice"})
//	// alice-00000000@example.com
//
//	v, _ := d.Get(ctx, "integer", unique.IntegerOptions{Base: 100, Mod: 10})
package unique

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/ceyewan/unique/clog"
	"github.com/ceyewan/unique/metrics"
	"github.com/ceyewan/unique/xerrors"
)

// Counter Dispatcher 依赖的最小计数源接口，counter 包的所有实现都满足它
type Counter interface {
	Next(ctx context.Context) (int64, error)
}

// Dispatcher 按名称分派生成器
//
// 生命周期内绑定的计数源和 Resolver 不变，不记录已发放的值。
// 并发安全性取决于计数源。
type Dispatcher struct {
	counter  Counter
	resolver Resolver
	logger   clog.Logger
	tracer   oteltrace.Tracer

	generated    metrics.Counter
	failed       metrics.Counter
	nextDuration metrics.Histogram
}

// New 创建 Dispatcher
func New(c Counter, opts ...Option) (*Dispatcher, error) {
	if c == nil {
		return nil, xerrors.WithCode(xerrors.ErrInvalidInput, "counter_nil")
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.resolver == nil {
		o.resolver = DefaultRegistry()
	}
	if o.logger == nil {
		o.logger = clog.Discard()
	}
	if o.meter == nil {
		o.meter = metrics.Discard()
	}
	if o.tracerProvider == nil {
		o.tracerProvider = otel.GetTracerProvider()
	}

	d := &Dispatcher{
		counter:  c,
		resolver: o.resolver,
		logger:   o.logger.With(clog.String("component", "unique")),
		tracer:   o.tracerProvider.Tracer(tracerName),
	}

	var err error
	if d.generated, err = o.meter.Counter(MetricGenerated, "Number of generated unique values"); err != nil {
		return nil, xerrors.Wrap(err, "create generated counter")
	}
	if d.failed, err = o.meter.Counter(MetricErrors, "Number of failed generations"); err != nil {
		return nil, xerrors.Wrap(err, "create errors counter")
	}
	if d.nextDuration, err = o.meter.Histogram(MetricNextDuration, "Latency of one counter production", metrics.WithUnit("s")); err != nil {
		return nil, xerrors.Wrap(err, "create next duration histogram")
	}

	return d, nil
}

// MustNew 创建 Dispatcher，失败时 panic
func MustNew(c Counter, opts ...Option) *Dispatcher {
	return xerrors.Must(New(c, opts...))
}

// Get 按名称查找生成器并调用，opts 原样透传
//
// 生成器可以再次调用 Get 组合其他生成器，嵌套调用共享同一计数源。
func (d *Dispatcher) Get(ctx context.Context, name string, opts any) (any, error) {
	ctx, span := d.tracer.Start(ctx, "unique.Get "+name,
		oteltrace.WithAttributes(attribute.String("unique.generator", name)))
	defer span.End()

	label := metrics.L("generator", name)

	g, err := d.resolver.Resolve(name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generator not resolved")
		d.failed.Inc(ctx, label)
		d.logger.WarnContext(ctx, "generator not resolved", clog.String("generator", name), clog.Error(err))
		return nil, err
	}

	v, err := g.Generate(ctx, d, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generate failed")
		d.failed.Inc(ctx, label)
		d.logger.ErrorContext(ctx, "failed to generate value", clog.String("generator", name), clog.Error(err))
		return nil, xerrors.Wrapf(err, "generate %q", name)
	}

	d.generated.Inc(ctx, label)
	d.logger.DebugContext(ctx, "generated value", clog.String("generator", name), valueField(name, v))
	return v, nil
}

// valueField 日志中的取值字段，密码只记录长度
func valueField(name string, v any) clog.Field {
	if s, ok := v.(string); ok && name == NamePassword {
		return clog.Int("length", len(s))
	}
	return clog.Any("value", v)
}

// Next 推进计数源一次并返回原始整数，是大多数生成器的种子
func (d *Dispatcher) Next(ctx context.Context) (int64, error) {
	start := time.Now()
	n, err := d.counter.Next(ctx)
	d.nextDuration.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		return 0, xerrors.Wrap(err, "next count")
	}
	return n, nil
}

// Resolver 返回绑定的 Resolver
func (d *Dispatcher) Resolver() Resolver {
	return d.resolver
}

package unique

import (
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/ceyewan/unique/clog"
	"github.com/ceyewan/unique/metrics"
)

// Option Dispatcher 初始化选项
type Option func(*options)

type options struct {
	resolver Resolver
	logger   clog.Logger
	meter    metrics.Meter

	tracerProvider oteltrace.TracerProvider
}

// WithResolver 设置生成器查找来源，默认 DefaultRegistry()
func WithResolver(r Resolver) Option {
	return func(o *options) {
		o.resolver = r
	}
}

// WithLogger 设置 Logger
func WithLogger(logger clog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMeter 设置 Meter
func WithMeter(meter metrics.Meter) Option {
	return func(o *options) {
		o.meter = meter
	}
}

// WithTracerProvider 设置 TracerProvider，默认使用全局 otel.GetTracerProvider()
func WithTracerProvider(tp oteltrace.TracerProvider) Option {
	return func(o *options) {
		o.tracerProvider = tp
	}
}

// tracerName Dispatcher 创建 Span 使用的 instrumentation 名称
const tracerName = "github.com/ceyewan/unique/unique"

// Metrics 指标常量定义
const (
	// MetricGenerated 成功生成的值总数 (Counter)，标签 generator
	MetricGenerated = "unique_generated_total"

	// MetricErrors 生成失败总数 (Counter)，标签 generator
	MetricErrors = "unique_errors_total"

	// MetricNextDuration 一次计数推进的耗时 (Histogram, 秒)
	MetricNextDuration = "unique_next_duration"
)

// Package metrics 为 unique 提供指标收集能力。
// 基于 OpenTelemetry 构建，通过 Prometheus exporter 暴露。
//
// 快速开始：
//
//	meter, err := metrics.New(&metrics.Config{Enabled: true, ServiceName: "my-tests"})
//	if err != nil {
//	    return err
//	}
//	defer meter.Shutdown(ctx)
//
//	generated, _ := meter.Counter("unique_generated", "生成的唯一值数量")
//	generated.Inc(ctx, metrics.L("generator", "email"))
package metrics

import (
	"context"
	"net/http"
)

// Counter 只增不减的计数器
type Counter interface {
	// Inc 增加 1
	Inc(ctx context.Context, labels ...Label)

	// Add 增加给定值，负数会被忽略
	Add(ctx context.Context, val float64, labels ...Label)
}

// Histogram 记录数值分布，如计数器一次读写的耗时
type Histogram interface {
	Record(ctx context.Context, val float64, labels ...Label)
}

// Meter 指标创建工厂
//
// 通过同一 Meter 创建的指标并发安全。
type Meter interface {
	// Counter 创建计数器，name 应符合 Prometheus 命名规范
	Counter(name string, desc string, opts ...MetricOption) (Counter, error)

	// Histogram 创建直方图
	Histogram(name string, desc string, opts ...MetricOption) (Histogram, error)

	// Handler 返回 Prometheus 格式的采集 handler
	Handler() http.Handler

	// Shutdown 刷新并关闭
	Shutdown(ctx context.Context) error
}

// MetricOption 指标选项
type MetricOption func(*MetricOptions)

// MetricOptions 指标选项结构体
type MetricOptions struct {
	// Unit 单位，建议使用 UCUM 代码，如 "s"、"By"
	Unit string
}

// WithUnit 设置指标单位
func WithUnit(unit string) MetricOption {
	return func(o *MetricOptions) {
		o.Unit = unit
	}
}

// Label 指标标签
//
// 标签值应保持低基数，例如生成器名称、计数器驱动名。
type Label struct {
	Key   string
	Value string
}

// L 创建一个 Label
func L(key, value string) Label {
	return Label{Key: key, Value: value}
}

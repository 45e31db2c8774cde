// Package trace 初始化 OpenTelemetry 链路追踪。
//
// unique 的 Dispatcher 为每次 Get 创建一个 Span，计数源的 Redis 与 SQL
// 插桩也会挂在同一条链路上。Init 负责安装全局 TracerProvider：
//
//	shutdown, err := trace.Init(ctx, &cfg.Trace)
//	if err != nil {
//	    return err
//	}
//	defer shutdown(context.Background())
package trace

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"

	"github.com/ceyewan/unique/xerrors"
)

// ShutdownFunc 刷新并关闭 TracerProvider
type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// Init 按配置安装全局 TracerProvider
//
// Enabled 为 false 时什么都不做；Endpoint 为空时只生成 TraceID 不导出，
// 否则通过 OTLP gRPC 导出到 Endpoint（如 Tempo/Jaeger）。
// 调用者应在退出前调用返回的 ShutdownFunc。
func Init(ctx context.Context, cfg *Config) (ShutdownFunc, error) {
	if cfg == nil {
		return nil, xerrors.WithCode(xerrors.ErrInvalidInput, "trace_config_nil")
	}
	if !cfg.Enabled {
		return noopShutdown, nil
	}
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String(cfg.ServiceName)),
	)
	if err != nil {
		return nil, xerrors.Wrap(err, "create resource")
	}

	tpOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.Sampler))),
	}

	if cfg.Endpoint != "" {
		exporter, err := newExporter(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if cfg.Batcher == BatcherSimple {
			tpOpts = append(tpOpts, sdktrace.WithSyncer(exporter))
		} else {
			tpOpts = append(tpOpts, sdktrace.WithBatcher(exporter))
		}
	}

	tp := sdktrace.NewTracerProvider(tpOpts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp.Shutdown, nil
}

func newExporter(ctx context.Context, cfg *Config) (*otlptrace.Exporter, error) {
	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
		otlptracegrpc.WithTimeout(5 * time.Second),
	}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, xerrors.Wrap(err, "create otlp exporter")
	}
	return exporter, nil
}

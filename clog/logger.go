package clog

import (
	"context"
	"log/slog"
	"runtime"
	"strings"
	"time"
)

// NamespaceKey 日志中命名空间的字段名
const NamespaceKey = "namespace"

// Logger 结构化日志接口
//
//	logger.Debug("next value", clog.Int64("value", v))
//	child := logger.With(clog.String("driver", "file"))
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	DebugContext(ctx context.Context, msg string, fields ...Field)
	InfoContext(ctx context.Context, msg string, fields ...Field)
	WarnContext(ctx context.Context, msg string, fields ...Field)
	ErrorContext(ctx context.Context, msg string, fields ...Field)

	// With 创建带有预设字段的子 Logger
	With(fields ...Field) Logger

	// WithNamespace 创建追加命名空间的子 Logger
	WithNamespace(parts ...string) Logger

	// SetLevel 运行时调整级别，对同一 handler 派生的所有子 Logger 生效
	SetLevel(level Level)
}

type loggerImpl struct {
	handler   slog.Handler
	levelVar  *slog.LevelVar
	namespace []string
	baseAttrs []slog.Attr
}

func newLogger(config *Config, opts *options) (Logger, error) {
	handler, levelVar, err := newHandler(config, opts)
	if err != nil {
		return nil, err
	}
	return &loggerImpl{
		handler:   handler,
		levelVar:  levelVar,
		namespace: opts.namespaceParts,
	}, nil
}

func (l *loggerImpl) Debug(msg string, fields ...Field) {
	l.log(context.Background(), DebugLevel, msg, fields)
}

func (l *loggerImpl) Info(msg string, fields ...Field) {
	l.log(context.Background(), InfoLevel, msg, fields)
}

func (l *loggerImpl) Warn(msg string, fields ...Field) {
	l.log(context.Background(), WarnLevel, msg, fields)
}

func (l *loggerImpl) Error(msg string, fields ...Field) {
	l.log(context.Background(), ErrorLevel, msg, fields)
}

func (l *loggerImpl) DebugContext(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, DebugLevel, msg, fields)
}

func (l *loggerImpl) InfoContext(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, InfoLevel, msg, fields)
}

func (l *loggerImpl) WarnContext(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, WarnLevel, msg, fields)
}

func (l *loggerImpl) ErrorContext(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, ErrorLevel, msg, fields)
}

func (l *loggerImpl) With(fields ...Field) Logger {
	attrs := make([]slog.Attr, 0, len(l.baseAttrs)+len(fields))
	attrs = append(attrs, l.baseAttrs...)
	attrs = append(attrs, fields...)
	return &loggerImpl{
		handler:   l.handler,
		levelVar:  l.levelVar,
		namespace: l.namespace,
		baseAttrs: attrs,
	}
}

func (l *loggerImpl) WithNamespace(parts ...string) Logger {
	ns := make([]string, 0, len(l.namespace)+len(parts))
	ns = append(ns, l.namespace...)
	ns = append(ns, parts...)
	return &loggerImpl{
		handler:   l.handler,
		levelVar:  l.levelVar,
		namespace: ns,
		baseAttrs: l.baseAttrs,
	}
}

func (l *loggerImpl) SetLevel(level Level) {
	l.levelVar.Set(slog.Level(level))
}

func (l *loggerImpl) log(ctx context.Context, level Level, msg string, fields []Field) {
	if ctx == nil {
		ctx = context.Background()
	}
	slogLevel := slog.Level(level)
	if !l.handler.Enabled(ctx, slogLevel) {
		return
	}

	// skip: runtime.Callers, log, Debug/Info/...
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])
	record := slog.NewRecord(time.Now(), slogLevel, msg, pcs[0])

	if len(l.namespace) > 0 {
		record.AddAttrs(slog.String(NamespaceKey, strings.Join(l.namespace, ".")))
	}
	record.AddAttrs(l.baseAttrs...)
	record.AddAttrs(fields...)

	_ = l.handler.Handle(ctx, record)
}

package clog

import "io"

// Option 函数式选项，用于配置 Logger 实例
type Option func(*options)

type options struct {
	namespaceParts []string
	writer         io.Writer // 测试用，覆盖 Config.Output
}

// WithNamespace 设置日志命名空间，支持多级
//
//	clog.WithNamespace("unique", "counter") // namespace=unique.counter
func WithNamespace(parts ...string) Option {
	return func(o *options) {
		o.namespaceParts = append(o.namespaceParts, parts...)
	}
}

// withWriter 测试专用选项，将日志写入指定 writer
func withWriter(w io.Writer) Option {
	return func(o *options) {
		o.writer = w
	}
}

func applyOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

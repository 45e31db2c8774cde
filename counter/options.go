package counter

import "github.com/ceyewan/unique/clog"

// Option 计数器初始化选项
type Option func(*options)

type options struct {
	logger clog.Logger
}

// WithLogger 设置 Logger
func WithLogger(logger clog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// applyOptions 应用选项并派生带 component/driver 字段的 Logger
func applyOptions(driver string, opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = clog.Discard()
	}
	o.logger = o.logger.With(clog.String("component", "counter"), clog.String("driver", driver))
	return o
}

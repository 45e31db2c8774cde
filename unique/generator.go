package unique

import (
	"context"

	"github.com/ceyewan/unique/xerrors"
)

// Generator 把计数值塑形为某种类型的唯一值
//
// d 是发起调用的 Dispatcher，生成器通过 d.Next 取得种子，
// 或通过 d.Get 组合其他生成器；opts 由调用方原样透传。
type Generator interface {
	Generate(ctx context.Context, d *Dispatcher, opts any) (any, error)
}

// GeneratorFunc 普通函数适配为 Generator
type GeneratorFunc func(ctx context.Context, d *Dispatcher, opts any) (any, error)

// Generate 实现 Generator
func (f GeneratorFunc) Generate(ctx context.Context, d *Dispatcher, opts any) (any, error) {
	return f(ctx, d, opts)
}

// Typed 把带类型选项的函数适配为 Generator
//
// opts 为 nil 时使用 O 的零值；接受 O 或 *O；其他类型返回 ErrInvalidOptions。
func Typed[O, V any](fn func(ctx context.Context, d *Dispatcher, opts O) (V, error)) Generator {
	return GeneratorFunc(func(ctx context.Context, d *Dispatcher, opts any) (any, error) {
		o, err := castOptions[O](opts)
		if err != nil {
			return nil, err
		}
		return fn(ctx, d, o)
	})
}

// Plain 把无选项的函数适配为 Generator，opts 被忽略
func Plain[V any](fn func(ctx context.Context, d *Dispatcher) (V, error)) Generator {
	return GeneratorFunc(func(ctx context.Context, d *Dispatcher, _ any) (any, error) {
		return fn(ctx, d)
	})
}

func castOptions[O any](opts any) (O, error) {
	var zero O
	switch v := opts.(type) {
	case nil:
		return zero, nil
	case O:
		return v, nil
	case *O:
		if v == nil {
			return zero, nil
		}
		return *v, nil
	default:
		return zero, xerrors.Wrapf(ErrInvalidOptions, "want %T, got %T", zero, opts)
	}
}

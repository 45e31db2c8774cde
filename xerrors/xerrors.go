// Package xerrors 提供 unique 各组件共享的错误处理工具。
//
// 约定：
//   - 哨兵错误用 New 定义，调用方用 Is 判断
//   - 向上返回时用 Wrap/Wrapf 补充上下文，保留错误链
//   - 需要机器可读分类时用 WithCode 附加错误码
package xerrors

import (
	"errors"
	"fmt"
)

// 通用哨兵错误，组件级错误应包装它们以便统一判断
var (
	// ErrNotFound 查找的数据不存在（如生成器未注册）
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput 输入参数或配置无效
	ErrInvalidInput = errors.New("invalid input")
)

// Wrap 用上下文信息包装错误，err 为 nil 时返回 nil。
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf 用格式化的上下文信息包装错误。
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// WithCode 为错误附加错误码。
func WithCode(err error, code string) error {
	if err == nil {
		return nil
	}
	return &CodedError{Code: code, Cause: err}
}

// CodedError 带错误码的错误
type CodedError struct {
	Code  string
	Cause error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %v", e.Code, e.Cause)
	}
	return fmt.Sprintf("[%s]", e.Code)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// GetCode 从错误链中提取最外层的错误码，没有则返回空串。
func GetCode(err error) string {
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ""
}

// Must 如果 err 不为 nil 则 panic，仅用于初始化和测试辅助。
func Must[T any](v T, err error) T {
	if err != nil {
		panic(fmt.Sprintf("must: %v", err))
	}
	return v
}

// Combine 合并多个错误，忽略 nil。
//
// 全部为 nil 时返回 nil；只有一个时原样返回。
func Combine(errs ...error) error {
	var nonNil []error
	for _, err := range errs {
		if err != nil {
			nonNil = append(nonNil, err)
		}
	}
	switch len(nonNil) {
	case 0:
		return nil
	case 1:
		return nonNil[0]
	default:
		return errors.Join(nonNil...)
	}
}

// 标准库函数再导出
var (
	New = errors.New
	Is  = errors.Is
	As  = errors.As
)

package config

import "github.com/ceyewan/unique/xerrors"

// ErrValidationFailed 配置校验失败
var ErrValidationFailed = xerrors.Wrap(xerrors.ErrInvalidInput, "configuration validation failed")

// IsInvalidInput 检查错误是否为配置格式无效或校验失败
func IsInvalidInput(err error) bool {
	return xerrors.Is(err, xerrors.ErrInvalidInput)
}

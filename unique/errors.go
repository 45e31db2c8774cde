package unique

import "github.com/ceyewan/unique/xerrors"

var (
	// ErrNamespaceNotFound 注册表中没有 Namespace 对应的分组
	ErrNamespaceNotFound = xerrors.Wrap(xerrors.ErrNotFound, "unique: namespace not found")

	// ErrGeneratorNotFound 分组中没有该名称的生成器
	ErrGeneratorNotFound = xerrors.Wrap(xerrors.ErrNotFound, "unique: generator not found")

	// ErrInvalidOptions 选项类型不匹配或取值越界
	ErrInvalidOptions = xerrors.Wrap(xerrors.ErrInvalidInput, "unique: invalid options")
)

package counter

import "github.com/ceyewan/unique/xerrors"

var (
	// ErrInvalidCount 存储中的计数值不是非负十进制整数，计数存储已损坏
	ErrInvalidCount = xerrors.New("counter: invalid count")

	// ErrConflict 乐观并发写入在重试上限内仍然冲突
	ErrConflict = xerrors.New("counter: too many concurrent updates")

	// ErrClientNil 注入的客户端为空
	ErrClientNil = xerrors.New("counter: client is nil")

	// ErrConfigNil 配置为空
	ErrConfigNil = xerrors.New("counter: config is nil")
)

package counter

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/ceyewan/unique/clog"
	"github.com/ceyewan/unique/xerrors"
)

// File 文件计数器
//
// 文件内容是下一个待发放值的十进制文本。每次 Next 完整执行一次
// 读取-解析-加一-覆盖写，文件句柄只在这一次调用内持有。
// 不加锁：多个进程同时对同一路径调用 Next 可能得到重复值。
type File struct {
	path   string
	logger clog.Logger
}

// NewFile 创建文件计数器，文件和父目录在第一次 Next 时按需创建
func NewFile(cfg *FileConfig, opts ...Option) (*File, error) {
	if cfg == nil {
		return nil, xerrors.WithCode(ErrConfigNil, "file_config_nil")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	o := applyOptions(DriverFile, opts)
	return &File{
		path:   cfg.Path,
		logger: o.logger.With(clog.String("path", cfg.Path)),
	}, nil
}

// Path 返回计数文件路径
func (f *File) Path() string {
	return f.path
}

// Next 读取当前值，写回当前值加 1，返回当前值
//
// 文件内容无法解析时返回 ErrInvalidCount，文件保持不变。
func (f *File) Next(ctx context.Context) (value int64, err error) {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		f.logger.ErrorContext(ctx, "failed to create count directory", clog.Error(err))
		return 0, xerrors.Wrap(err, "create count directory")
	}

	fh, err := os.OpenFile(f.path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		f.logger.ErrorContext(ctx, "failed to open count file", clog.Error(err))
		return 0, xerrors.Wrap(err, "open count file")
	}
	defer func() {
		if closeErr := fh.Close(); closeErr != nil && err == nil {
			value, err = 0, xerrors.Wrap(closeErr, "close count file")
		}
	}()

	raw, err := io.ReadAll(fh)
	if err != nil {
		return 0, xerrors.Wrap(err, "read count file")
	}

	current, err := parseCount(string(raw))
	if err != nil {
		f.logger.ErrorContext(ctx, "count file is corrupted", clog.Error(err))
		return 0, err
	}

	if err := fh.Truncate(0); err != nil {
		return 0, xerrors.Wrap(err, "truncate count file")
	}
	if _, err := fh.WriteAt([]byte(formatCount(current+1)), 0); err != nil {
		return 0, xerrors.Wrap(err, "write count file")
	}

	f.logger.DebugContext(ctx, "next count", clog.Int64("value", current))
	return current, nil
}

// Close 无资源需要释放，句柄在每次 Next 内部关闭
func (f *File) Close() error {
	return nil
}

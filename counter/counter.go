// Package counter 提供单调递增的计数源（Counter Source）。
//
// 每个 Counter 产生从 0 开始、每次加 1 的非负整数序列。内存实现随进程
// 结束而消失；持久化实现（file/redis/etcd/nats/sql）每次生产都会读写
// 后端存储，序列可以跨进程重启延续。
//
// 基本使用：
//
//	c := counter.NewMemory()
//	v, _ := c.Next(ctx) // 0
//	v, _ = c.Next(ctx)  // 1
//
// 通过配置选择后端：
//
//	c, err := counter.New(ctx, &counter.Config{
//	    Driver: counter.DriverFile,
//	    File:   counter.FileConfig{Path: ".cache/unique/count"},
//	})
//	defer c.Close()
package counter

import (
	"context"
	"strconv"
	"strings"

	"github.com/ceyewan/unique/xerrors"
)

// Counter 计数源接口
type Counter interface {
	// Next 返回当前值并将计数推进 1，全新计数器的第一次调用返回 0
	Next(ctx context.Context) (int64, error)

	// Close 释放计数器自己创建的连接，外部注入的客户端不会被关闭
	Close() error
}

// 支持的驱动
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
	DriverEtcd   = "etcd"
	DriverNATS   = "nats"
	DriverSQL    = "sql"
)

// parseCount 解析持久化的计数值
//
// 去除首尾空白后为空视为 0；非十进制整数或负数返回 ErrInvalidCount。
func parseCount(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, xerrors.Wrapf(ErrInvalidCount, "parse %q", s)
	}
	if v < 0 {
		return 0, xerrors.Wrapf(ErrInvalidCount, "negative count %d", v)
	}
	return v, nil
}

func formatCount(v int64) string {
	return strconv.FormatInt(v, 10)
}

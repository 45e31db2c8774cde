package unique

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/xid"

	"github.com/ceyewan/unique/xerrors"
)

// 内置生成器名称
const (
	NameInteger  = "integer"
	NameDigits   = "digits"
	NameBytes    = "bytes"
	NameFloat    = "float"
	NameText     = "text"
	NameEmail    = "email"
	NamePassword = "password"
	NameUUID     = "uuid"
	NameXID      = "xid"
)

func builtins() map[string]Generator {
	return map[string]Generator{
		NameInteger:  Typed(Integer),
		NameDigits:   Plain(Digits),
		NameBytes:    Plain(Bytes),
		NameFloat:    Plain(Float),
		NameText:     Typed(Text),
		NameEmail:    Typed(Email),
		NamePassword: Typed(Password),
		NameUUID:     Typed(UUID),
		NameXID:      Plain(XID),
	}
}

// ========================================
// 数值类 (Numeric)
// ========================================

// IntegerOptions integer 生成器选项
type IntegerOptions struct {
	// Base 结果的下界偏移
	Base int64

	// Mod 大于 0 时结果落在 [Base, Base+Mod)；0 表示不取模
	Mod int64
}

// Integer 返回 Base + n，Mod > 0 时返回 Base + n%Mod
func Integer(ctx context.Context, d *Dispatcher, opts IntegerOptions) (int64, error) {
	if opts.Base < 0 || opts.Mod < 0 {
		return 0, xerrors.Wrapf(ErrInvalidOptions, "base=%d mod=%d", opts.Base, opts.Mod)
	}
	if opts.Mod > 0 && opts.Base > math.MaxInt64-(opts.Mod-1) {
		return 0, xerrors.Wrapf(ErrInvalidOptions, "base=%d mod=%d overflows int64", opts.Base, opts.Mod)
	}
	n, err := d.Next(ctx)
	if err != nil {
		return 0, err
	}
	if opts.Mod > 0 {
		n %= opts.Mod
	} else if opts.Base > math.MaxInt64-n {
		return 0, xerrors.Wrapf(ErrInvalidOptions, "base=%d count=%d overflows int64", opts.Base, n)
	}
	return opts.Base + n, nil
}

// Digits 返回计数值的十进制字符串
func Digits(ctx context.Context, d *Dispatcher) (string, error) {
	n, err := d.Next(ctx)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n, 10), nil
}

// Float 返回计数值的浮点形式
func Float(ctx context.Context, d *Dispatcher) (float64, error) {
	n, err := d.Next(ctx)
	if err != nil {
		return 0, err
	}
	return float64(n), nil
}

// bytesMarker 0xFF 在任何位置都不是合法的 UTF-8 字节
const bytesMarker = 0xFF

// Bytes 返回 0xFF 加 8 字节大端计数值
//
// 结果永远不是合法的 UTF-8，字节序比较与数值大小一致。
func Bytes(ctx context.Context, d *Dispatcher) ([]byte, error) {
	n, err := d.Next(ctx)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 9)
	buf[0] = bytesMarker
	binary.BigEndian.PutUint64(buf[1:], uint64(n))
	return buf, nil
}

// ========================================
// 文本类 (Text)
// ========================================

const (
	defaultTextPrefix = "text"
	defaultSeparator  = "-"
	defaultDomain     = "example.com"
	textBodyWidth     = 8
)

// TextOptions text 生成器选项
type TextOptions struct {
	Prefix    string // 默认 "text"
	Suffix    string
	Separator string // 默认 "-"
	Limit     int    // 大于 0 时截断为前 Limit 个字符（rune）
}

// Text 返回 prefix-body-suffix 形式的文本
//
// body 为补零到 8 位的计数值，因此同前缀的结果按字典序递增。
// 空的部分连同其分隔符一起省略。
func Text(ctx context.Context, d *Dispatcher, opts TextOptions) (string, error) {
	if opts.Limit < 0 {
		return "", xerrors.Wrapf(ErrInvalidOptions, "limit=%d", opts.Limit)
	}
	if opts.Prefix == "" {
		opts.Prefix = defaultTextPrefix
	}
	if opts.Separator == "" {
		opts.Separator = defaultSeparator
	}

	n, err := d.Next(ctx)
	if err != nil {
		return "", err
	}

	parts := []string{opts.Prefix, fmt.Sprintf("%0*d", textBodyWidth, n)}
	if opts.Suffix != "" {
		parts = append(parts, opts.Suffix)
	}
	text := strings.Join(parts, opts.Separator)

	if opts.Limit > 0 {
		text = truncateRunes(text, opts.Limit)
	}
	return text, nil
}

// truncateRunes 保留前 limit 个字符，不会切断多字节字符
func truncateRunes(s string, limit int) string {
	for i := range s {
		if limit == 0 {
			return s[:i]
		}
		limit--
	}
	return s
}

// EmailOptions email 生成器选项
type EmailOptions struct {
	Prefix string
	Suffix string
	Domain string // 默认 "example.com"
}

// Email 返回 <text>@<domain>，本地部分由 text 生成器产生
func Email(ctx context.Context, d *Dispatcher, opts EmailOptions) (string, error) {
	if opts.Domain == "" {
		opts.Domain = defaultDomain
	}
	local, err := d.Get(ctx, NameText, TextOptions{Prefix: opts.Prefix, Suffix: opts.Suffix})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s@%s", local, opts.Domain), nil
}

// 密码字符集
const (
	LowercaseLetters = "abcdefghijklmnopqrstuvwxyz"
	UppercaseLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	DigitChars       = "0123456789"
	PunctuationChars = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

const defaultPasswordClassCount = 4

// PasswordOptions password 生成器选项，每个字段是该字符类的字符数
//
// 全部为 0 时每类各取 4 个字符。
type PasswordOptions struct {
	Lowercase   int
	Uppercase   int
	Digits      int
	Punctuation int
}

// Password 按字符类拼接密码，每个字符由 integer 生成器在该类字母表内取值
//
// 总长度等于各类字符数之和，要求数量大于 0 的类必然出现。
func Password(ctx context.Context, d *Dispatcher, opts PasswordOptions) (string, error) {
	if opts.Lowercase < 0 || opts.Uppercase < 0 || opts.Digits < 0 || opts.Punctuation < 0 {
		return "", xerrors.Wrapf(ErrInvalidOptions, "%+v", opts)
	}
	if opts == (PasswordOptions{}) {
		opts = PasswordOptions{
			Lowercase:   defaultPasswordClassCount,
			Uppercase:   defaultPasswordClassCount,
			Digits:      defaultPasswordClassCount,
			Punctuation: defaultPasswordClassCount,
		}
	}

	classes := []struct {
		alphabet string
		count    int
	}{
		{LowercaseLetters, opts.Lowercase},
		{UppercaseLetters, opts.Uppercase},
		{DigitChars, opts.Digits},
		{PunctuationChars, opts.Punctuation},
	}

	var sb strings.Builder
	for _, class := range classes {
		for i := 0; i < class.count; i++ {
			v, err := d.Get(ctx, NameInteger, IntegerOptions{Mod: int64(len(class.alphabet))})
			if err != nil {
				return "", err
			}
			idx, ok := v.(int64)
			if !ok {
				return "", xerrors.Wrapf(ErrInvalidOptions, "integer generator returned %T", v)
			}
			sb.WriteByte(class.alphabet[idx])
		}
	}
	return sb.String(), nil
}

// ========================================
// 标识符类 (Identifiers)
// ========================================

// UUIDOptions uuid 生成器选项
type UUIDOptions struct {
	// Value 非空时直接使用该值而不推进计数源
	Value *int64
}

// UUIDValue 构造指定值的 UUIDOptions
func UUIDValue(v int64) UUIDOptions {
	return UUIDOptions{Value: &v}
}

// UUID 返回除最低 8 字节外全为 0 的 UUID，最低 8 字节为大端计数值
//
// UUIDValue(0) 得到 00000000-0000-0000-0000-000000000000。
func UUID(ctx context.Context, d *Dispatcher, opts UUIDOptions) (uuid.UUID, error) {
	var n int64
	if opts.Value != nil {
		if *opts.Value < 0 {
			return uuid.Nil, xerrors.Wrapf(ErrInvalidOptions, "value=%d", *opts.Value)
		}
		n = *opts.Value
	} else {
		var err error
		if n, err = d.Next(ctx); err != nil {
			return uuid.Nil, err
		}
	}

	var id uuid.UUID
	binary.BigEndian.PutUint64(id[8:], uint64(n))
	return id, nil
}

// XID 返回机器与进程部分为 0、最后 8 字节为大端计数值的 xid
//
// 与计数值同序，可直接排序比较。
func XID(ctx context.Context, d *Dispatcher) (xid.ID, error) {
	n, err := d.Next(ctx)
	if err != nil {
		return xid.NilID(), err
	}
	var id xid.ID
	binary.BigEndian.PutUint64(id[4:], uint64(n))
	return id, nil
}

package clog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// newHandler 根据配置构造 slog.Handler
//
// 构造顺序：writer -> handler options -> json/text handler。
func newHandler(config *Config, opts *options) (slog.Handler, *slog.LevelVar, error) {
	w, err := resolveWriter(config, opts)
	if err != nil {
		return nil, nil, err
	}

	level, _ := ParseLevel(config.Level)
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.Level(level))

	handlerOpts := &slog.HandlerOptions{
		AddSource:   config.AddSource,
		Level:       levelVar,
		ReplaceAttr: replaceAttr,
	}

	if strings.ToLower(config.Format) == "json" {
		return slog.NewJSONHandler(w, handlerOpts), levelVar, nil
	}
	return slog.NewTextHandler(w, handlerOpts), levelVar, nil
}

func resolveWriter(config *Config, opts *options) (io.Writer, error) {
	if opts.writer != nil {
		return opts.writer, nil
	}
	switch strings.ToLower(config.Output) {
	case "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	default:
		f, err := os.OpenFile(config.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log output %s: %w", config.Output, err)
		}
		return f, nil
	}
}

// replaceAttr 统一 level/time/source 字段的输出格式
func replaceAttr(_ []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.LevelKey:
		if level, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(strings.ToUpper(Level(level).String()))
		}
	case slog.TimeKey:
		if a.Value.Kind() == slog.KindTime {
			a.Value = slog.StringValue(a.Value.Time().Format(timeFormat))
		}
	case slog.SourceKey:
		if source, ok := a.Value.Any().(*slog.Source); ok {
			return slog.String("caller", fmt.Sprintf("%s:%d", shortPath(source.File), source.Line))
		}
	}
	return a
}

// shortPath 保留最后两级路径，如 counter/file.go
func shortPath(file string) string {
	idx := strings.LastIndexByte(file, '/')
	if idx <= 0 {
		return file
	}
	if prev := strings.LastIndexByte(file[:idx], '/'); prev >= 0 {
		return file[prev+1:]
	}
	return file
}

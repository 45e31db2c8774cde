package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ceyewan/unique/clog"
	"github.com/ceyewan/unique/config"
	"github.com/ceyewan/unique/counter"
	"github.com/ceyewan/unique/metrics"
	"github.com/ceyewan/unique/trace"
	"github.com/ceyewan/unique/unique"
	"github.com/ceyewan/unique/xerrors"
)

// app 一次命令执行的共享状态
type app struct {
	v          *viper.Viper
	configFile string
	count      int
}

// newRootCmd 构建完整的命令树，每次调用得到互不共享状态的实例
func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "unique",
		Short: "Print collision-free test values backed by a persistent counter.",
		Long: `unique prints values that never repeat across invocations: integers, digits, ` +
			`bytes, floats, text, emails, passwords, UUIDs and xids. Values come from a ` +
			`counter stored in a file by default, or in Redis, etcd, NATS or a SQL database.`,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default: unique.yaml in . or ./config)")
	flags.String("driver", counter.DriverFile, "counter driver: memory|file|redis|etcd|nats|sql")
	flags.String("path", "", "count file path for the file driver (default: <user cache dir>/unique/count)")
	flags.String("log-level", "warn", "log level: debug|info|warn|error")
	flags.IntVarP(&a.count, "count", "n", 1, "number of values to print")

	_ = a.v.BindPFlag("counter.driver", flags.Lookup("driver"))
	_ = a.v.BindPFlag("counter.file.path", flags.Lookup("path"))
	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))

	root.AddCommand(
		a.integerCmd(),
		a.plainCmd(unique.NameDigits, "Print decimal digit strings"),
		a.plainCmd(unique.NameFloat, "Print floats"),
		a.plainCmd(unique.NameBytes, "Print byte strings as hex, never valid UTF-8"),
		a.textCmd(),
		a.emailCmd(),
		a.passwordCmd(),
		a.uuidCmd(),
		a.plainCmd(unique.NameXID, "Print sortable xids"),
		a.listCmd(),
	)
	return root
}

// ========================================
// 执行 (Execution)
// ========================================

// loadConfig 加载配置，命令行默认使用文件计数器
func (a *app) loadConfig() (*config.Config, error) {
	opts := []config.Option{config.WithViper(a.v)}
	if a.configFile != "" {
		opts = append(opts, config.WithConfigFile(a.configFile))
	}
	loader, err := config.NewLoader(opts...)
	if err != nil {
		return nil, err
	}
	if err := loader.Load(); err != nil {
		return nil, err
	}
	// 只替换默认值层，配置文件、环境变量和显式 flag 仍然优先
	a.v.SetDefault("counter.driver", counter.DriverFile)
	a.v.SetDefault("log.level", "warn")
	return loader.Config()
}

// generate 按名称生成 count 个值并逐行输出
func (a *app) generate(cmd *cobra.Command, name string, opts any) (err error) {
	if a.count < 1 {
		return xerrors.WithCode(xerrors.ErrInvalidInput, "count_must_be_positive")
	}

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	logger, err := clog.New(&cfg.Log)
	if err != nil {
		return xerrors.Wrap(err, "create logger")
	}

	ctx := cmd.Context()
	meter, err := metrics.New(&cfg.Metrics, metrics.WithLogger(logger))
	if err != nil {
		return xerrors.Wrap(err, "create meter")
	}
	defer func() {
		err = xerrors.Combine(err, meter.Shutdown(context.WithoutCancel(ctx)))
	}()

	shutdown, err := trace.Init(ctx, &cfg.Trace)
	if err != nil {
		return xerrors.Wrap(err, "init tracing")
	}
	defer func() {
		err = xerrors.Combine(err, shutdown(context.WithoutCancel(ctx)))
	}()

	c, err := counter.New(ctx, &cfg.Counter, counter.WithLogger(logger))
	if err != nil {
		return err
	}
	defer func() {
		err = xerrors.Combine(err, c.Close())
	}()

	d, err := unique.New(c, unique.WithLogger(logger), unique.WithMeter(meter))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i := 0; i < a.count; i++ {
		v, err := d.Get(ctx, name, opts)
		if err != nil {
			return err
		}
		if err := writeValue(out, v); err != nil {
			return err
		}
	}
	return nil
}

// writeValue 以文本形式输出一个值，字节串输出为十六进制
func writeValue(w io.Writer, v any) error {
	var s string
	switch x := v.(type) {
	case []byte:
		s = hex.EncodeToString(x)
	case float64:
		s = strconv.FormatFloat(x, 'f', -1, 64)
	default:
		s = fmt.Sprint(x)
	}
	_, err := fmt.Fprintln(w, s)
	return err
}

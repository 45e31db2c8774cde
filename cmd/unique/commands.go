package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ceyewan/unique/unique"
)

// plainCmd 无选项的生成器命令
func (a *app) plainCmd(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.generate(cmd, name, nil)
		},
	}
}

func (a *app) integerCmd() *cobra.Command {
	var opts unique.IntegerOptions
	cmd := &cobra.Command{
		Use:   unique.NameInteger,
		Short: "Print integers, optionally within [base, base+mod)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.generate(cmd, unique.NameInteger, opts)
		},
	}
	cmd.Flags().Int64Var(&opts.Base, "base", 0, "lower bound added to every value")
	cmd.Flags().Int64Var(&opts.Mod, "mod", 0, "reduce modulo this value when greater than 0")
	return cmd
}

func (a *app) textCmd() *cobra.Command {
	var opts unique.TextOptions
	cmd := &cobra.Command{
		Use:   unique.NameText,
		Short: "Print text shaped as prefix-digits-suffix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.generate(cmd, unique.NameText, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", `leading part (default "text")`)
	cmd.Flags().StringVar(&opts.Suffix, "suffix", "", "trailing part")
	cmd.Flags().StringVar(&opts.Separator, "separator", "", `separator between parts (default "-")`)
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "truncate to this many characters when greater than 0")
	return cmd
}

func (a *app) emailCmd() *cobra.Command {
	var opts unique.EmailOptions
	cmd := &cobra.Command{
		Use:   unique.NameEmail,
		Short: "Print email addresses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.generate(cmd, unique.NameEmail, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", "local part prefix")
	cmd.Flags().StringVar(&opts.Suffix, "suffix", "", "local part suffix, placed before @")
	cmd.Flags().StringVar(&opts.Domain, "domain", "", `domain (default "example.com")`)
	return cmd
}

func (a *app) passwordCmd() *cobra.Command {
	var opts unique.PasswordOptions
	cmd := &cobra.Command{
		Use:   unique.NamePassword,
		Short: "Print passwords built from the requested character classes",
		Long:  "Print passwords built from the requested character classes. Without any class flag, 4 characters of each class are used.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.generate(cmd, unique.NamePassword, opts)
		},
	}
	cmd.Flags().IntVar(&opts.Lowercase, "lowercase", 0, "number of lowercase letters")
	cmd.Flags().IntVar(&opts.Uppercase, "uppercase", 0, "number of uppercase letters")
	cmd.Flags().IntVar(&opts.Digits, "digits", 0, "number of digits")
	cmd.Flags().IntVar(&opts.Punctuation, "punctuation", 0, "number of punctuation characters")
	return cmd
}

func (a *app) uuidCmd() *cobra.Command {
	var value int64
	cmd := &cobra.Command{
		Use:   unique.NameUUID,
		Short: "Print UUIDs with the counter in the lowest bytes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var opts unique.UUIDOptions
			if cmd.Flags().Changed("value") {
				opts = unique.UUIDValue(value)
			}
			return a.generate(cmd, unique.NameUUID, opts)
		},
	}
	cmd.Flags().Int64Var(&value, "value", 0, "encode this value instead of advancing the counter")
	return cmd
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List generator names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range unique.DefaultRegistry().Names() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// Package root provides the root command for the bbparse CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/bbparse/internal/cmd/completion"
	"github.com/open-cli-collective/bbparse/internal/cmd/configcmd"
	initcmd "github.com/open-cli-collective/bbparse/internal/cmd/init"
	"github.com/open-cli-collective/bbparse/internal/cmd/parse"
	"github.com/open-cli-collective/bbparse/internal/cmd/text"
	"github.com/open-cli-collective/bbparse/internal/cmd/tokens"
	"github.com/open-cli-collective/bbparse/internal/version"
)

// NewCmdRoot creates the root command for bbparse.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bbparse",
		Short: "A parser for forum BBCode markup",
		Long: `bbparse turns forum BBCode markup into a tree of nodes.

Malformed markup never fails: unknown tags, stray closers and unterminated
brackets are kept as text, and unclosed tags are closed at end of input.

Get started by running: echo '[b]hello[/b]' | bbparse parse`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/bbparse/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "", "output format: table, json, plain (default from config, else table)")
	cmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error, disabled")
	cmd.PersistentFlags().Bool("log-json", false, "write logs as JSON lines")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	cmd.SetVersionTemplate("bbparse version {{.Version}} (commit: " + version.Commit + ", built: " + version.Date + ")\n")

	cmd.AddCommand(parse.NewCmdParse())
	cmd.AddCommand(tokens.NewCmdTokens())
	cmd.AddCommand(text.NewCmdText())
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}

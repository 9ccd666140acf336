// Package tokens provides the tokens command.
package tokens

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/bbparse/internal/cmd/cmdutil"
	"github.com/open-cli-collective/bbparse/internal/view"
	"github.com/open-cli-collective/bbparse/pkg/bbcode"
)

// maxValueWidth bounds the VALUE column in table output.
const maxValueWidth = 60

type tokensOptions struct {
	global cmdutil.GlobalOptions

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewCmdTokens creates the tokens command.
func NewCmdTokens() *cobra.Command {
	opts := &tokensOptions{}

	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Show the token stream of markup",
		Long: `Tokenize forum markup and print one row per token.

Unrecognized or unterminated brackets show up as text tokens, exactly as the
tree builder sees them.`,
		Example: `  # Inspect how a post is tokenized
  bbparse tokens post.txt

  # From stdin, tab separated
  echo '[color=red]x[/color]' | bbparse tokens -o plain`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.global = cmdutil.GlobalFlags(cmd)
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()
			opts.stderr = cmd.ErrOrStderr()
			return runTokens(args, opts)
		},
	}

	return cmd
}

func runTokens(args []string, opts *tokensOptions) error {
	env, err := cmdutil.Setup(opts.global, opts.stdout, opts.stderr)
	if err != nil {
		return err
	}

	inputs, err := cmdutil.ReadInputs(args, opts.stdin)
	if err != nil {
		return err
	}

	truncate := env.Renderer.Format() == view.FormatTable

	var rows [][]string
	for tok, err := range bbcode.NewTokenizer(inputs[0].Content).All() {
		if err != nil {
			return fmt.Errorf("failed to tokenize %s: %w", inputs[0].Name, err)
		}
		rows = append(rows, tokenRow(tok, truncate))
	}
	env.Logger.Debug().Str("input", inputs[0].Name).Int("tokens", len(rows)).Msg("tokenized")

	env.Renderer.RenderTable([]string{"POS", "TYPE", "TAG", "VALUE"}, rows)
	return nil
}

func tokenRow(tok bbcode.Token, truncate bool) []string {
	var tag, value string
	switch tok.Type {
	case bbcode.TokenText:
		value = tok.Text
	case bbcode.TokenOpeningTag:
		tag = tok.Tag.String()
		if tok.HasAttribute {
			value = tok.Attribute
		}
	case bbcode.TokenClosingTag:
		tag = tok.Tag.String()
	}

	if value != "" {
		if truncate {
			value = view.Truncate(value, maxValueWidth)
		}
		value = strconv.Quote(value)
	}
	return []string{strconv.Itoa(tok.Position), tok.Type.String(), tag, value}
}

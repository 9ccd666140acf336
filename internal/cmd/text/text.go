// Package text provides the text command.
package text

import (
	"context"
	"io"
	"os"

	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/open-cli-collective/bbparse/internal/cmd/cmdutil"
	"github.com/open-cli-collective/bbparse/internal/view"
	"github.com/open-cli-collective/bbparse/pkg/bbcode"
)

// DefaultWidth is used when neither flag, config nor terminal give a width.
const DefaultWidth = 80

type textOptions struct {
	global cmdutil.GlobalOptions
	width  int
	noWrap bool

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// terminalWidth reports the width of stdout when it is a terminal.
	terminalWidth func() (int, bool)
}

type textResult struct {
	File string `json:"file"`
	Text string `json:"text"`
}

// NewCmdText creates the text command.
func NewCmdText() *cobra.Command {
	opts := &textOptions{terminalWidth: stdoutWidth}

	cmd := &cobra.Command{
		Use:   "text [file...]",
		Short: "Extract the readable text of markup",
		Long: `Parse forum markup and print only its readable text, word wrapped.

Code bodies are kept verbatim and spoiler titles precede their content.
Images and attachments contribute nothing.`,
		Example: `  # Readable text of a post
  bbparse text post.txt

  # Keep original line lengths
  bbparse text --no-wrap post.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.global = cmdutil.GlobalFlags(cmd)
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()
			opts.stderr = cmd.ErrOrStderr()
			return runText(args, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.width, "width", "w", 0, "Wrap width (default from config, else terminal width, else 80)")
	cmd.Flags().BoolVar(&opts.noWrap, "no-wrap", false, "Do not wrap lines")

	return cmd
}

func runText(args []string, opts *textOptions) error {
	env, err := cmdutil.Setup(opts.global, opts.stdout, opts.stderr)
	if err != nil {
		return err
	}

	inputs, err := cmdutil.ReadInputs(args, opts.stdin)
	if err != nil {
		return err
	}

	docs, err := cmdutil.ParseAll(context.Background(), inputs, env.Config.MaxDepth, env.Logger)
	if err != nil {
		return err
	}

	width := 0
	if !opts.noWrap {
		width = resolveWidth(opts.width, env.Config.WrapWidth, opts.terminalWidth)
		env.Logger.Debug().Int("width", width).Msg("wrapping text")
	}

	results := make([]textResult, len(docs))
	for i, doc := range docs {
		s := bbcode.PlainText(doc.Nodes)
		if width > 0 {
			s = wordwrap.String(s, width)
		}
		results[i] = textResult{File: inputs[i].Name, Text: s}
	}

	r := env.Renderer
	if r.Format() == view.FormatJSON {
		return r.RenderJSON(results)
	}
	for i, res := range results {
		if i > 0 {
			r.RenderText("")
		}
		r.RenderText(res.Text)
	}
	return nil
}

// resolveWidth picks the wrap width: flag, then config, then terminal, then DefaultWidth.
func resolveWidth(flag, configured int, terminalWidth func() (int, bool)) int {
	if flag > 0 {
		return flag
	}
	if configured > 0 {
		return configured
	}
	if terminalWidth != nil {
		if w, ok := terminalWidth(); ok && w > 0 {
			return w
		}
	}
	return DefaultWidth
}

func stdoutWidth() (int, bool) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0, false
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0, false
	}
	return w, true
}

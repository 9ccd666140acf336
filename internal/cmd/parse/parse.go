// Package parse provides the parse command.
package parse

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/bbparse/internal/cmd/cmdutil"
	"github.com/open-cli-collective/bbparse/internal/view"
	"github.com/open-cli-collective/bbparse/pkg/bbcode"
)

type parseOptions struct {
	global   cmdutil.GlobalOptions
	maxDepth int
	warnings bool

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// fileResult is the JSON shape used when several files are parsed at once.
type fileResult struct {
	File     string        `json:"file"`
	Nodes    []bbcode.Node `json:"nodes"`
	Warnings []string      `json:"warnings,omitempty"`
}

// NewCmdParse creates the parse command.
func NewCmdParse() *cobra.Command {
	opts := &parseOptions{}

	cmd := &cobra.Command{
		Use:   "parse [file...]",
		Short: "Parse markup into a node tree",
		Long: `Parse forum markup and print the resulting node tree.

Reads each file given, or stdin when no file (or "-") is given. Several
files are parsed concurrently and printed in argument order.`,
		Example: `  # Print the tree of a post
  bbparse parse post.txt

  # Parse from stdin as JSON
  echo '[b]hi[/b]' | bbparse parse -o json

  # Show structural warnings (stray closers, implicit closes)
  bbparse parse --warnings a.txt b.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.global = cmdutil.GlobalFlags(cmd)
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()
			opts.stderr = cmd.ErrOrStderr()
			return runParse(args, opts)
		},
	}

	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", 0, "Maximum container nesting (default from config, else 64)")
	cmd.Flags().BoolVar(&opts.warnings, "warnings", false, "Print structural warnings after each tree")

	return cmd
}

func runParse(args []string, opts *parseOptions) error {
	env, err := cmdutil.Setup(opts.global, opts.stdout, opts.stderr)
	if err != nil {
		return err
	}

	inputs, err := cmdutil.ReadInputs(args, opts.stdin)
	if err != nil {
		return err
	}

	maxDepth := opts.maxDepth
	if maxDepth == 0 {
		maxDepth = env.Config.MaxDepth
	}

	docs, err := cmdutil.ParseAll(context.Background(), inputs, maxDepth, env.Logger)
	if err != nil {
		return err
	}

	r := env.Renderer
	if r.Format() == view.FormatJSON && len(docs) > 1 {
		results := make([]fileResult, len(docs))
		for i, doc := range docs {
			results[i] = fileResult{File: inputs[i].Name, Nodes: doc.Nodes, Warnings: doc.Warnings}
		}
		return r.RenderJSON(results)
	}

	for i, doc := range docs {
		if len(docs) > 1 {
			if i > 0 {
				r.RenderText("")
			}
			r.RenderText(fmt.Sprintf("==> %s <==", inputs[i].Name))
		}
		if err := r.RenderTree(doc.Nodes); err != nil {
			return err
		}
		if opts.warnings && r.Format() != view.FormatJSON {
			for _, w := range doc.Warnings {
				r.Warning(w)
			}
		}
	}

	return nil
}

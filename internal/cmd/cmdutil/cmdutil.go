// Package cmdutil holds the setup shared by bbparse commands.
package cmdutil

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/open-cli-collective/bbparse/internal/config"
	"github.com/open-cli-collective/bbparse/internal/logging"
	"github.com/open-cli-collective/bbparse/internal/view"
	"github.com/open-cli-collective/bbparse/pkg/bbcode"
)

// GlobalOptions mirrors the root command's persistent flags.
type GlobalOptions struct {
	ConfigPath string
	Output     string
	LogLevel   string
	LogJSON    bool
	NoColor    bool
}

// GlobalFlags reads the persistent flags from cmd.
func GlobalFlags(cmd *cobra.Command) GlobalOptions {
	var g GlobalOptions
	g.ConfigPath, _ = cmd.Flags().GetString("config")
	g.Output, _ = cmd.Flags().GetString("output")
	g.LogLevel, _ = cmd.Flags().GetString("log-level")
	g.LogJSON, _ = cmd.Flags().GetBool("log-json")
	g.NoColor, _ = cmd.Flags().GetBool("no-color")
	return g
}

// Env is everything a command needs after setup.
type Env struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Renderer *view.Renderer
}

// Setup loads configuration, applies flag overrides and builds the logger and renderer.
// Flags win over the environment, which wins over the config file.
func Setup(g GlobalOptions, stdout, stderr io.Writer) (*Env, error) {
	path := g.ConfigPath
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := config.LoadWithEnv(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if g.Output != "" {
		cfg.OutputFormat = g.Output
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}

	if err := view.ValidateFormat(cfg.OutputFormat); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(stderr, cfg.LogLevel, g.LogJSON, g.NoColor)
	if err != nil {
		return nil, err
	}

	renderer := view.NewRenderer(view.Format(cfg.OutputFormat), g.NoColor)
	renderer.SetWriter(stdout)

	return &Env{Config: cfg, Logger: logger, Renderer: renderer}, nil
}

// Input is one markup document to process.
type Input struct {
	Name    string
	Content string
}

// ReadInputs loads every named file, or stdin when no names are given or a name is "-".
func ReadInputs(names []string, stdin io.Reader) ([]Input, error) {
	if len(names) == 0 {
		names = []string{"-"}
	}

	inputs := make([]Input, 0, len(names))
	for _, name := range names {
		var (
			data []byte
			err  error
		)
		if name == "-" {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(name)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", displayName(name), err)
		}
		inputs = append(inputs, Input{Name: displayName(name), Content: string(data)})
	}
	return inputs, nil
}

func displayName(name string) string {
	if name == "-" {
		return "<stdin>"
	}
	return name
}

// ParseAll parses every input concurrently and returns the documents in input order.
func ParseAll(ctx context.Context, inputs []Input, maxDepth int, logger zerolog.Logger) ([]*bbcode.Document, error) {
	docs := make([]*bbcode.Document, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := bbcode.ParseDocument(in.Content,
				bbcode.WithMaxDepth(maxDepth),
				bbcode.WithLogger(logger.With().Str("input", in.Name).Logger()),
			)
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", in.Name, err)
			}
			logger.Debug().Str("input", in.Name).Int("nodes", len(doc.Nodes)).Int("warnings", len(doc.Warnings)).Msg("parsed")
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// Package init provides the init command for bbparse.
package init

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/bbparse/internal/config"
	"github.com/open-cli-collective/bbparse/internal/view"
)

// answers holds the raw form values before they are converted into a config.
type answers struct {
	OutputFormat string
	MaxDepth     string
	WrapWidth    string
	LogLevel     string
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize bbparse configuration",
		Long: `Initialize bbparse defaults interactively.

This command asks for the default output format, nesting limit, wrap width
and log level, and saves them to ~/.config/bbparse/config.yml. Flags and
BBPARSE_* environment variables still override the saved values.`,
		Example: `  # Interactive setup
  bbparse init

  # Overwrite an existing config without asking
  bbparse init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				path = config.DefaultConfigPath()
			}
			return runInit(path, force, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config without confirmation")

	return cmd
}

func runInit(configPath string, force bool, out io.Writer) error {
	existing := &config.Config{}
	if _, err := os.Stat(configPath); err == nil {
		if !force {
			var overwrite bool
			err := huh.NewConfirm().
				Title("Configuration already exists").
				Description(fmt.Sprintf("Overwrite %s?", configPath)).
				Value(&overwrite).
				Run()
			if err != nil {
				return err
			}
			if !overwrite {
				fmt.Fprintln(out, "Initialization cancelled.")
				return nil
			}
		}
		if loaded, err := config.Load(configPath); err == nil {
			existing = loaded
		}
	}

	a := prefill(existing)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Output format").
				Description("Default for parse, tokens and text").
				Options(huh.NewOptions(view.ValidFormats()...)...).
				Value(&a.OutputFormat),

			huh.NewInput().
				Title("Maximum nesting depth").
				Description("Deeper tags are kept as text (0 uses the built-in limit)").
				Placeholder("64").
				Value(&a.MaxDepth).
				Validate(validateNonNegative("max depth")),

			huh.NewInput().
				Title("Wrap width").
				Description("Column width for the text command (0 follows the terminal)").
				Placeholder("80").
				Value(&a.WrapWidth).
				Validate(validateNonNegative("wrap width")),

			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions("trace", "debug", "info", "warn", "error", "disabled")...).
				Value(&a.LogLevel),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	cfg, err := a.toConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nConfiguration saved to %s\n", configPath)
	fmt.Fprintln(out, "\nYou're all set! Try running:")
	fmt.Fprintln(out, "  echo '[b]hello[/b]' | bbparse parse")
	fmt.Fprintln(out, "  bbparse text post.txt")

	return nil
}

// prefill seeds the form from an existing config, falling back to defaults.
func prefill(cfg *config.Config) *answers {
	a := &answers{
		OutputFormat: cfg.OutputFormat,
		LogLevel:     cfg.LogLevel,
	}
	if a.OutputFormat == "" {
		a.OutputFormat = config.DefaultOutputFormat
	}
	if a.LogLevel == "" {
		a.LogLevel = config.DefaultLogLevel
	}
	if cfg.MaxDepth > 0 {
		a.MaxDepth = strconv.Itoa(cfg.MaxDepth)
	}
	if cfg.WrapWidth > 0 {
		a.WrapWidth = strconv.Itoa(cfg.WrapWidth)
	}
	return a
}

func (a *answers) toConfig() (*config.Config, error) {
	depth, err := parseOptionalInt(a.MaxDepth)
	if err != nil {
		return nil, fmt.Errorf("max depth: %w", err)
	}
	width, err := parseOptionalInt(a.WrapWidth)
	if err != nil {
		return nil, fmt.Errorf("wrap width: %w", err)
	}
	return &config.Config{
		OutputFormat: a.OutputFormat,
		MaxDepth:     depth,
		WrapWidth:    width,
		LogLevel:     a.LogLevel,
	}, nil
}

func validateNonNegative(field string) func(string) error {
	return func(s string) error {
		n, err := parseOptionalInt(s)
		if err != nil {
			return fmt.Errorf("%s must be a whole number", field)
		}
		if n < 0 {
			return fmt.Errorf("%s must not be negative", field)
		}
		return nil
	}
}

// parseOptionalInt treats blank input as zero.
func parseOptionalInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

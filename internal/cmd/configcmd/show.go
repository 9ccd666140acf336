package configcmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/bbparse/internal/config"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the effective bbparse configuration and where each value comes from.`,
		Example: `  # Show current config
  bbparse config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runShow(configPath(cmd), noColor, cmd.OutOrStdout())
		},
	}

	return cmd
}

func runShow(configPath string, noColor bool, out io.Writer) error {
	if noColor {
		color.NoColor = true
	}

	fileCfg, fileErr := config.Load(configPath)
	if fileErr != nil {
		fileCfg = &config.Config{}
	}

	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	printField := func(label, value, fileValue, envVar string) {
		_, _ = bold.Fprintf(out, "%-14s", label+":")
		if value == "" {
			_, _ = dim.Fprintln(out, "-")
			return
		}
		fmt.Fprint(out, value)

		source := "default"
		switch {
		case os.Getenv(envVar) != "" && fileValue != value:
			source = envVar
		case fileValue != "":
			source = "config"
		}
		_, _ = dim.Fprintf(out, "  (source: %s)\n", source)
	}

	printField("Output", cfg.OutputFormat, fileCfg.OutputFormat, "BBPARSE_OUTPUT")
	printField("Max depth", itoa(cfg.MaxDepth), itoa(fileCfg.MaxDepth), "BBPARSE_MAX_DEPTH")
	printField("Wrap width", itoa(cfg.WrapWidth), itoa(fileCfg.WrapWidth), "BBPARSE_WRAP_WIDTH")
	printField("Log level", cfg.LogLevel, fileCfg.LogLevel, "BBPARSE_LOG_LEVEL")

	fmt.Fprintln(out)
	_, _ = dim.Fprintf(out, "Config file: %s\n", configPath)
	if fileErr != nil {
		_, _ = dim.Fprintln(out, "(file not found)")
	}

	return nil
}

// itoa renders unset numeric settings as empty.
func itoa(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

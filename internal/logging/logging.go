// Package logging builds the zerolog logger shared by bbparse commands.
package logging

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// New returns a logger writing to w at the given level. Human-readable console
// output is used unless json is set.
func New(w io.Writer, level string, json bool, noColor bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.WarnLevel
	}

	out := w
	if !json {
		out = zerolog.ConsoleWriter{Out: w, NoColor: noColor, PartsExclude: []string{zerolog.TimestampFieldName}}
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

// Package logging configures the zerolog loggers used by the renderer and CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// New returns a logger writing to w at the named level.
// Pretty output uses zerolog's console writer; otherwise lines are JSON.
func New(level string, pretty bool, w io.Writer) (zerolog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}

	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// ParseLevel maps a level name to a zerolog level; the empty string means info
func ParseLevel(level string) (zerolog.Level, error) {
	if strings.TrimSpace(level) == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.NoLevel, errors.Wrapf(err, "log level %q", level)
	}
	return lvl, nil
}

// PrintfLogger adapts a zerolog.Logger to printf-style callers.
// Messages are logged at info level with trailing newlines removed.
type PrintfLogger struct {
	logger zerolog.Logger
}

// Printf returns a printf-style adapter for logger
func Printf(logger zerolog.Logger) *PrintfLogger {
	return &PrintfLogger{logger: logger}
}

// Printf implements core.Logger
func (p *PrintfLogger) Printf(format string, args ...interface{}) {
	p.logger.Info().Msg(strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
}

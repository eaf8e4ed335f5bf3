// Package logging sets up the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Configure installs the global logger. An unknown level falls back to info
// and is reported once the logger is up.
func Configure(level string, pretty bool) {
	ConfigureWriter(os.Stderr, level, pretty)
}

func ConfigureWriter(w io.Writer, level string, pretty bool) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339

	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	if err != nil && level != "" {
		log.Warn().Str("level", level).Msg("unknown log level, using info")
	}
}

// Component returns the global logger tagged with a component name.
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"sndbilling/internal/config"
)

// New builds the application logger. Console output for local development,
// JSON everywhere else. The global zerolog logger is redirected too so
// libraries that use it stay consistent.
func New(cfg config.LogConfig) zerolog.Logger {
	var w io.Writer = os.Stdout
	if strings.ToLower(cfg.Format) == "console" {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}

	zl := zerolog.New(w).Level(level).With().Timestamp().Logger()
	log.Logger = zl
	return zl
}

// WithComponent returns a child logger tagged with a component field.
func WithComponent(zl zerolog.Logger, component string) zerolog.Logger {
	return zl.With().Str("component", component).Logger()
}

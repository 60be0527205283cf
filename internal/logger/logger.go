// Package logger configures the zerolog logger shared across the server.
package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New builds a JSON logger writing to stdout with a role field for filtering
// and per-entry timestamps. Unknown levels fall back to info.
func New(role, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(os.Stdout).
		Level(lvl).
		With().
		Str("role", role).
		Timestamp().
		Logger()
}

// Package logging configures the process-wide structured logger and names
// the components that tag every record.
package logging

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup installs a tinted slog handler on the default logger. The level is
// taken from LOG_LEVEL (debug, info, warn, error; default info) and color is
// suppressed when NO_COLOR is set.
func Setup() {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    os.Getenv("NO_COLOR") != "",
	})
	slog.SetDefault(slog.New(handler))
}

// Component returns a logger tagged with the given component name.
func Component(name string) *slog.Logger {
	return slog.Default().With("component", name)
}

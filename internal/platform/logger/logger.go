package logger

import (
	"log/slog"
	"os"
)

// New returns the process-wide structured logger. Handlers receive it via
// constructor injection; nothing reads the slog default.
func New() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

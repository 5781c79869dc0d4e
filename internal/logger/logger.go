// Package logger sets up structured logging.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// New returns a logger for the CLI. With debug set it writes text records at
// debug level to w (stderr if nil); otherwise it discards everything, since
// user-facing output is printed by the commands themselves.
func New(w io.Writer, debug bool) *slog.Logger {
	if !debug {
		return slog.New(slog.DiscardHandler)
	}
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// Package logx builds the structured logger shared by the server and tools.
package logx

import (
	"io"
	"log/slog"
	"os"
)

// New returns a JSON logger tagged with service. Debug level is enabled in dev.
func New(service string, dev bool) *slog.Logger {
	return NewWithWriter(os.Stdout, service, dev)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, service string, dev bool) *slog.Logger {
	level := slog.LevelInfo
	if dev {
		level = slog.LevelDebug
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("service", service)
}

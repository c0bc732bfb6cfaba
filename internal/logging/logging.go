// Package logging configures the application log file.
//
// The TUI owns the terminal while running, so log lines go to a
// rotating file under the XDG data dir instead of stderr.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Setup points the package logger at a rotating file. Call once at
// startup; before Setup all log output is discarded.
func Setup(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 2,
		MaxAge:     14, // days
	}
	logger = slog.New(slog.NewTextHandler(w, nil))
	return nil
}

// L returns the application logger.
func L() *slog.Logger {
	return logger
}

// logger.go - Structured logging setup for the admission daemon.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// NewLogger creates the daemon's zerolog logger. Console output always goes to
// stdout; when logFile is set, entries are duplicated to it as JSON. The caller
// owns closing the returned file.
func NewLogger(level string, logFile string) (zerolog.Logger, *os.File, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	console := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "2006-01-02 15:04:05"}
	var w io.Writer = console
	var file *os.File
	if logFile != "" {
		file, err = os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = zerolog.MultiLevelWriter(console, file)
	}

	logger := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	return logger, file, nil
}

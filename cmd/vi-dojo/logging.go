package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

const (
	logDir      = "logs"
	logFileName = "vi-dojo.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging returns the application logger and the file behind it
// Without debug the logger discards and the file is nil; the terminal belongs to tcell so stdout and stderr are never used
func setupLogging(debug bool, level log.Level) (*log.Logger, *os.File) {
	discard := log.New(io.Discard)
	log.SetDefault(discard)
	if !debug {
		return discard, nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return discard, nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("vi-dojo-%s.log", time.Now().Format("20060102-150405")))
		_ = os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return discard, nil
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
		Level:           level,
		Prefix:          "vi-dojo",
	})
	log.SetDefault(logger)
	logger.Info("logging started", "pid", os.Getpid(), "level", level)
	return logger, f
}

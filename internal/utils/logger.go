package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

type RunLogger struct {
	file   *os.File
	logger *log.Logger
	debug  bool
}

// NewRunLogger writes levelled diagnostics to out and, when logsDir is set,
// to a timestamped file inside it as well.
func NewRunLogger(out io.Writer, logsDir string, debug bool) (*RunLogger, error) {
	if logsDir == "" {
		return &RunLogger{
			logger: log.New(out, "", log.Ldate|log.Ltime|log.Lmicroseconds),
			debug:  debug,
		}, nil
	}

	// Create logs directory if it doesn't exist
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logPath := filepath.Join(logsDir, fmt.Sprintf("update_%s.log", timestamp))

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	multiWrite := io.MultiWriter(out, file)

	return &RunLogger{
		file:   file,
		logger: log.New(multiWrite, "", log.Ldate|log.Ltime|log.Lmicroseconds),
		debug:  debug,
	}, nil
}

func (rl *RunLogger) LogInfo(format string, v ...interface{}) {
	rl.log("INFO", format, v...)
}

func (rl *RunLogger) LogWarn(format string, v ...interface{}) {
	rl.log("WARN", format, v...)
}

func (rl *RunLogger) LogError(format string, v ...interface{}) {
	rl.log("ERROR", format, v...)
}

func (rl *RunLogger) LogDebug(format string, v ...interface{}) {
	if rl == nil || !rl.debug {
		return
	}
	rl.log("DEBUG", format, v...)
}

// log is a no-op on a nil logger so callers can leave it unset.
func (rl *RunLogger) log(level string, format string, v ...interface{}) {
	if rl == nil {
		return
	}
	message := fmt.Sprintf(format, v...)
	rl.logger.Printf("[%s] %s", level, message)
}

func (rl *RunLogger) Close() error {
	if rl == nil || rl.file == nil {
		return nil
	}
	return rl.file.Close()
}

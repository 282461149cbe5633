package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger provides centralized debug logging for the entire application
type Logger struct {
	logger *slog.Logger
	level  *slog.LevelVar
	file   *os.File
}

var globalLogger *Logger

// init creates the global logger with stderr output by default so that
// command output on stdout stays clean
func init() {
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)
	globalLogger = &Logger{
		logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})),
		level:  level,
		file:   os.Stderr,
	}
}

// SetFileOutput configures the logger to write to the specified file
func SetFileOutput(filename string) error {
	logger, err := NewLogger(filename)
	if err != nil {
		return err
	}
	if globalLogger != nil {
		logger.level.Set(globalLogger.level.Level())
	}

	Close()
	globalLogger = logger
	return nil
}

// SetOutput redirects logging to an arbitrary writer. Used by tests and by
// the inspector, which must keep the terminal free of log lines.
func SetOutput(w io.Writer) {
	level := new(slog.LevelVar)
	if globalLogger != nil {
		level.Set(globalLogger.level.Level())
	}
	Close()
	globalLogger = &Logger{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})),
		level:  level,
	}
}

// NewLogger creates a new debug logger that writes to the specified file
func NewLogger(filename string) (*Logger, error) {
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}

	level := new(slog.LevelVar)
	level.Set(slog.LevelDebug)
	handler := slog.NewTextHandler(file, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   slog.TimeKey,
					Value: slog.StringValue(a.Value.Time().Format("2006/01/02 15:04:05.000000")),
				}
			}
			return a
		},
	})

	return &Logger{
		logger: slog.New(handler),
		level:  level,
		file:   file,
	}, nil
}

// SetLevel changes the minimum level by name (debug, info, warn, error)
func SetLevel(name string) error {
	var lvl slog.Level
	switch strings.ToLower(name) {
	case "debug":
		lvl = slog.LevelDebug
	case "info", "":
		lvl = slog.LevelInfo
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return fmt.Errorf("unknown log level %q", name)
	}
	if globalLogger != nil {
		globalLogger.level.Set(lvl)
	}
	return nil
}

// Standard logging methods
func Debug(msg string, args ...any) {
	if globalLogger != nil {
		globalLogger.logger.Debug(msg, args...)
	}
}

func Info(msg string, args ...any) {
	if globalLogger != nil {
		globalLogger.logger.Info(msg, args...)
	}
}

func Warn(msg string, args ...any) {
	if globalLogger != nil {
		globalLogger.logger.Warn(msg, args...)
	}
}

func Error(msg string, args ...any) {
	if globalLogger != nil {
		globalLogger.logger.Error(msg, args...)
	}
}

// Close closes the log file if one is open
func Close() {
	if globalLogger != nil && globalLogger.file != nil &&
		globalLogger.file != os.Stdout && globalLogger.file != os.Stderr {
		globalLogger.file.Close()
	}
}

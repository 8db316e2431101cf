package logging

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// Level represents the severity of a log message.
type Level int

const (
	// LevelDebug enables verbose diagnostic output
	LevelDebug Level = iota
	// LevelInfo is the default level
	LevelInfo
	// LevelWarn logs recoverable problems
	LevelWarn
	// LevelError logs failures
	LevelError
)

var (
	mu    sync.RWMutex
	level = levelFromEnv()
)

// levelFromEnv derives the initial level from DEBUG / LOG_LEVEL.
func levelFromEnv() Level {
	switch strings.ToLower(os.Getenv("DEBUG")) {
	case "1", "true", "yes", "on":
		return LevelDebug
	}
	return ParseLevel(os.Getenv("LOG_LEVEL"))
}

// ParseLevel converts a level name to a Level. Unknown names map to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// GetLevel returns the current log level.
func GetLevel() Level {
	mu.RLock()
	defer mu.RUnlock()
	return level
}

// SetLevel overrides the log level. Mainly useful in tests.
func SetLevel(l Level) {
	mu.Lock()
	level = l
	mu.Unlock()
}

// IsDebugEnabled reports whether debug logging is active.
func IsDebugEnabled() bool {
	return GetLevel() <= LevelDebug
}

func logAt(l Level, prefix, format string, args ...interface{}) {
	if GetLevel() <= l {
		log.Printf(prefix+format, args...)
	}
}

// Debug logs a debug message.
func Debug(format string, args ...interface{}) {
	logAt(LevelDebug, "[DEBUG] ", format, args...)
}

// Info logs an informational message.
func Info(format string, args ...interface{}) {
	logAt(LevelInfo, "[INFO] ", format, args...)
}

// Warn logs a warning.
func Warn(format string, args ...interface{}) {
	logAt(LevelWarn, "[WARN] ", format, args...)
}

// Error logs an error.
func Error(format string, args ...interface{}) {
	logAt(LevelError, "[ERROR] ", format, args...)
}

// Fatal logs an error and exits the process.
func Fatal(format string, args ...interface{}) {
	log.Fatalf("[FATAL] "+format, args...)
}

// String returns the name of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("unknown(%d)", l)
	}
}

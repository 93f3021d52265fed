package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogLevel represents the severity level of log messages.
type LogLevel int

// Log level constants defining message severity.
const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

var levelNames = [...]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
	FATAL: "FATAL",
}

// String returns the upper-case level name.
func (l LogLevel) String() string {
	if l < DEBUG || l > FATAL {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLogLevel converts a string log level to its LogLevel constant.
func ParseLogLevel(level string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return DEBUG
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	case "FATAL":
		return FATAL
	default:
		return INFO
	}
}

// Logger writes level-prefixed lines and drops anything below its level.
type Logger struct {
	out   [FATAL + 1]*log.Logger
	level LogLevel
	mu    sync.RWMutex
	exit  func(int)
}

var (
	instance *Logger
	once     sync.Once
)

// InitWithConfig initializes the global logger with stdout plus a rotating file.
func InitWithConfig(logPath string, level LogLevel, maxSize, maxBackups, maxAge int, compress bool) {
	once.Do(func() {
		instance = NewLoggerWithConfig(logPath, level, maxSize, maxBackups, maxAge, compress)
	})
}

// NewLoggerWithConfig creates a logger writing to stdout and to a lumberjack-rotated file.
func NewLoggerWithConfig(logPath string, level LogLevel, maxSize, maxBackups, maxAge int, compress bool) *Logger {
	dir := filepath.Dir(logPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("cannot create directory log: %v", err)
	}

	logFile := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
		Compress:   compress,
	}

	return NewLoggerWithWriter(io.MultiWriter(os.Stdout, logFile), level)
}

// NewLoggerWithWriter creates a logger over an arbitrary writer.
func NewLoggerWithWriter(w io.Writer, level LogLevel) *Logger {
	l := &Logger{level: level, exit: os.Exit}
	flags := log.LstdFlags | log.Lshortfile
	for lv := DEBUG; lv <= FATAL; lv++ {
		l.out[lv] = log.New(w, "["+lv.String()+"] ", flags)
	}
	return l
}

// SetGlobal replaces the global logger. Intended for tests and embedding.
func SetGlobal(l *Logger) {
	once.Do(func() {})
	instance = l
}

// SetLevel changes the minimum log level for filtering messages.
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// GetLevel returns the current minimum log level.
func (l *Logger) GetLevel() LogLevel {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

func (l *Logger) enabled(level LogLevel) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return level >= l.level
}

// output writes msg at level; depth is the number of frames between the caller and output.
func (l *Logger) output(level LogLevel, depth int, msg string) {
	if !l.enabled(level) {
		return
	}
	l.out[level].Output(depth+1, msg)
	if level == FATAL {
		l.exit(1)
	}
}

func (l *Logger) Debugf(format string, v ...interface{}) { l.output(DEBUG, 2, fmt.Sprintf(format, v...)) }
func (l *Logger) Infof(format string, v ...interface{})  { l.output(INFO, 2, fmt.Sprintf(format, v...)) }
func (l *Logger) Warnf(format string, v ...interface{})  { l.output(WARN, 2, fmt.Sprintf(format, v...)) }
func (l *Logger) Errorf(format string, v ...interface{}) { l.output(ERROR, 2, fmt.Sprintf(format, v...)) }

// Fatalf logs a formatted fatal-level message and exits the program.
func (l *Logger) Fatalf(format string, v ...interface{}) { l.output(FATAL, 2, fmt.Sprintf(format, v...)) }

// Global convenience functions

func global(level LogLevel, msg string) {
	if instance != nil {
		instance.output(level, 3, msg)
	}
}

// Debugf logs a formatted debug-level message using the global logger instance.
func Debugf(format string, v ...interface{}) { global(DEBUG, fmt.Sprintf(format, v...)) }

// Infof logs a formatted info-level message using the global logger instance.
func Infof(format string, v ...interface{}) { global(INFO, fmt.Sprintf(format, v...)) }

// Info logs an info-level message using the global logger instance.
func Info(v ...interface{}) { global(INFO, fmt.Sprint(v...)) }

// Warnf logs a formatted warning-level message using the global logger instance.
func Warnf(format string, v ...interface{}) { global(WARN, fmt.Sprintf(format, v...)) }

// Errorf logs a formatted error-level message using the global logger instance.
func Errorf(format string, v ...interface{}) { global(ERROR, fmt.Sprintf(format, v...)) }

// Fatalf logs a formatted fatal-level message and exits the program using the global logger instance.
func Fatalf(format string, v ...interface{}) { global(FATAL, fmt.Sprintf(format, v...)) }

// SetLevel changes the minimum log level for the global logger instance.
func SetLevel(level LogLevel) {
	if instance != nil {
		instance.SetLevel(level)
	}
}

// GetLevel returns the current minimum log level of the global logger instance.
func GetLevel() LogLevel {
	if instance != nil {
		return instance.GetLevel()
	}
	return INFO
}

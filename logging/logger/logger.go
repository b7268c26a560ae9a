// Package logger wraps logrus with context-aware, key/value logging.
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ncobase/taskd/config"
	"github.com/ncobase/taskd/ctxutil"
	"github.com/sirupsen/logrus"
)

// Key constants
const (
	VersionKey = "version"
	ErrorKey   = "error"
)

// Logger is a logrus logger whose methods take a context and a message
// followed by alternating key/value pairs:
//
//	log.Info(ctx, "task created", "id", task.ID)
type Logger struct {
	*logrus.Logger
	version string
	logFile *os.File
}

var (
	standardLogger *Logger
	once           sync.Once
)

// StdLogger returns the singleton logger instance
func StdLogger() *Logger {
	once.Do(func() {
		standardLogger = newLogger()
	})
	return standardLogger
}

func newLogger() *Logger {
	l := &Logger{Logger: logrus.New()}
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetOutput(os.Stdout)
	l.SetLevel(logrus.InfoLevel)
	return l
}

// New configures the standard logger and returns a cleanup function that
// closes any opened log file.
func New(c *config.Logger) (func(), error) {
	return StdLogger().Init(c)
}

// SetVersion sets the version for logging
func (l *Logger) SetVersion(v string) {
	l.version = v
}

// Init initializes the logger with the given configuration
func (l *Logger) Init(c *config.Logger) (func(), error) {
	if c == nil {
		return func() {}, nil
	}

	if err := l.ApplyLevel(c.Level); err != nil {
		return nil, err
	}

	switch c.Format {
	case "text":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		l.SetFormatter(&logrus.JSONFormatter{})
	}

	switch c.Output {
	case "stderr":
		l.SetOutput(os.Stderr)
	case "file":
		if c.OutputFile == "" {
			return nil, fmt.Errorf("logger: output_file is required when output is file")
		}
		if err := l.openFile(c.OutputFile); err != nil {
			return nil, err
		}
	default:
		l.SetOutput(os.Stdout)
	}

	return func() {
		if l.logFile != nil {
			_ = l.logFile.Close()
			l.logFile = nil
		}
	}, nil
}

// ApplyLevel parses and sets the level; an empty level keeps the current one.
func (l *Logger) ApplyLevel(level string) error {
	if strings.TrimSpace(level) == "" {
		return nil
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	l.SetLevel(lvl)
	return nil
}

func (l *Logger) openFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	l.logFile = f
	l.SetOutput(f)
	return nil
}

// entryFromContext creates a new log entry with fields from context
func (l *Logger) entryFromContext(ctx context.Context) *logrus.Entry {
	fields := logrus.Fields{}

	if traceID := ctxutil.GetTraceID(ctx); traceID != "" {
		fields[ctxutil.TraceIDKey] = traceID
	}

	if l.version != "" {
		fields[VersionKey] = l.version
	}

	return l.WithFields(fields)
}

// fieldsFromPairs turns alternating key/value arguments into logrus fields.
// A trailing key without a value is recorded under "!BADKEY".
func fieldsFromPairs(keyvals []any) logrus.Fields {
	fields := make(logrus.Fields, len(keyvals)/2)
	for i := 0; i < len(keyvals); i += 2 {
		if i+1 >= len(keyvals) {
			fields["!BADKEY"] = keyvals[i]
			break
		}
		key := fmt.Sprint(keyvals[i])
		if err, ok := keyvals[i+1].(error); ok {
			fields[key] = err.Error()
			continue
		}
		fields[key] = keyvals[i+1]
	}
	return fields
}

func (l *Logger) log(ctx context.Context, level logrus.Level, msg string, keyvals ...any) {
	if !l.IsLevelEnabled(level) {
		return
	}
	entry := l.entryFromContext(ctx)
	if len(keyvals) > 0 {
		entry = entry.WithFields(fieldsFromPairs(keyvals))
	}
	entry.Log(level, msg)
}

func (l *Logger) Debug(ctx context.Context, msg string, keyvals ...any) {
	l.log(ctx, logrus.DebugLevel, msg, keyvals...)
}
func (l *Logger) Info(ctx context.Context, msg string, keyvals ...any) {
	l.log(ctx, logrus.InfoLevel, msg, keyvals...)
}
func (l *Logger) Warn(ctx context.Context, msg string, keyvals ...any) {
	l.log(ctx, logrus.WarnLevel, msg, keyvals...)
}
func (l *Logger) Error(ctx context.Context, msg string, keyvals ...any) {
	l.log(ctx, logrus.ErrorLevel, msg, keyvals...)
}

// SetOutput sets the output destination for the logger
func (l *Logger) SetOutput(out io.Writer) {
	l.Logger.SetOutput(out)
}

// Discard returns a logger that drops everything, for tests and tooling.
func Discard() *Logger {
	l := newLogger()
	l.SetOutput(io.Discard)
	return l
}

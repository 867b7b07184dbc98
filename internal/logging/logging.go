// Package logging adapts logrus to the service Logger interface.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects level, format and destination.
type Config struct {
	Level  string
	Format string // text or json
	// File, when set, receives the log through a size-rotated writer.
	File       string
	MaxSizeMB  int
	MaxBackups int
	Output     io.Writer
}

// Logger forwards key/value pairs to logrus as fields.
type Logger struct {
	entry *logrus.Logger
	close func() error
}

// New builds a logger from cfg. Unknown levels fall back to info.
func New(cfg Config) (*Logger, error) {
	l := logrus.New()
	level, err := logrus.ParseLevel(strings.TrimSpace(cfg.Level))
	if cfg.Level == "" {
		level, err = logrus.InfoLevel, nil
	}
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	l.SetLevel(level)
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: cfg.File != ""})
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	closeFn := func() error { return nil }
	switch {
	case cfg.File != "":
		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    orDefault(cfg.MaxSizeMB, 10),
			MaxBackups: orDefault(cfg.MaxBackups, 3),
			Compress:   true,
		}
		l.SetOutput(rotator)
		closeFn = rotator.Close
	case cfg.Output != nil:
		l.SetOutput(cfg.Output)
	default:
		l.SetOutput(os.Stderr)
	}
	return &Logger{entry: l, close: closeFn}, nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func (l *Logger) Debug(msg string, kv ...any) { l.entry.WithFields(fields(kv)).Debug(msg) }
func (l *Logger) Info(msg string, kv ...any)  { l.entry.WithFields(fields(kv)).Info(msg) }
func (l *Logger) Warn(msg string, kv ...any)  { l.entry.WithFields(fields(kv)).Warn(msg) }
func (l *Logger) Error(msg string, kv ...any) { l.entry.WithFields(fields(kv)).Error(msg) }

// Close flushes and closes the rotating file, if any.
func (l *Logger) Close() error { return l.close() }

func fields(kv []any) logrus.Fields {
	out := make(logrus.Fields, len(kv)/2+1)
	for i := 0; i < len(kv); i += 2 {
		key := fmt.Sprint(kv[i])
		if i+1 >= len(kv) {
			out[key] = "(MISSING)"
			break
		}
		val := kv[i+1]
		if err, ok := val.(error); ok {
			val = err.Error()
		}
		out[key] = val
	}
	return out
}

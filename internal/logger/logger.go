// Package logger builds the slog loggers used by the CLI and the server.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds the logger settings.
type Config struct {
	// Level is the minimum level to log: debug, info, warn or error.
	Level string
	// Path is the log file. Empty or "-" writes to Writer.
	Path string
	// Writer receives records when Path is unset; nil means os.Stderr.
	Writer io.Writer
	// Source adds the file:line of the call site.
	Source bool
}

// ParseLevel converts a level name. An empty name means warn, which keeps
// normal CLI runs quiet.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error", "err":
		return slog.LevelError, nil
	}
	return slog.LevelWarn, fmt.Errorf("invalid log level: %q", name)
}

// New returns a text logger for cfg. The returned closer releases the log
// file, if one was opened.
func New(cfg Config) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	var out io.Writer = os.Stderr
	if cfg.Writer != nil {
		out = cfg.Writer
	}
	var closer io.Closer = nopCloser{}
	if p := strings.TrimSpace(cfg.Path); p != "" && p != "-" {
		f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f
	}
	return NewWriter(out, level, cfg.Source), closer, nil
}

// NewWriter returns a text logger writing to w.
func NewWriter(w io.Writer, level slog.Leveler, source bool) *slog.Logger {
	opts := slog.HandlerOptions{
		Level:     level,
		AddSource: source,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.SourceKey {
				if src, ok := a.Value.Any().(*slog.Source); ok {
					src.File = filepath.Base(src.File)
				}
			}
			if a.Key == slog.TimeKey && len(groups) == 0 {
				a.Value = slog.StringValue(a.Value.Time().Format(time.TimeOnly))
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, &opts))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

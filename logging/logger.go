// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// HandlerType represents the type of logging handler.
type HandlerType string

const (
	// JSONHandler outputs structured JSON logs.
	JSONHandler HandlerType = "json"
	// TextHandler outputs key=value text logs.
	TextHandler HandlerType = "text"
	// ConsoleHandler outputs human-readable colored logs.
	ConsoleHandler HandlerType = "console"
)

// Level represents log level.
type Level = slog.Level

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// ParseLevel converts a level name to a Level. Names are case-insensitive.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLevel, name)
	}
}

// Logger owns a configured [slog.Logger].
//
// Thread-safety: all methods are safe for concurrent use. The level is held
// in a [slog.LevelVar] so SetLevel affects every logger derived with With.
type Logger struct {
	handlerType HandlerType
	output      io.Writer
	level       slog.LevelVar
	component   string
	version     string
	addSource   bool
	replaceAttr func(groups []string, a slog.Attr) slog.Attr

	slogger *slog.Logger
}

// Option is a functional option for configuring the logger.
type Option func(*Logger)

func defaultLogger() *Logger {
	l := &Logger{
		handlerType: JSONHandler,
		output:      os.Stderr,
	}
	l.level.Set(LevelInfo)

	return l
}

// New creates a new Logger with the given options.
// The global slog default is left untouched.
func New(opts ...Option) (*Logger, error) {
	l := defaultLogger()

	for _, opt := range opts {
		opt(l)
	}

	if err := l.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	l.slogger = slog.New(l.handler())

	var attrs []any
	if l.component != "" {
		attrs = append(attrs, "component", l.component)
	}
	if l.version != "" {
		attrs = append(attrs, "version", l.version)
	}
	if len(attrs) > 0 {
		l.slogger = l.slogger.With(attrs...)
	}

	return l, nil
}

// MustNew creates a new Logger or panics on error.
func MustNew(opts ...Option) *Logger {
	l, err := New(opts...)
	if err != nil {
		panic("logging initialization failed: " + err.Error())
	}

	return l
}

func (l *Logger) validate() error {
	if l.output == nil {
		return ErrNilOutput
	}

	switch l.handlerType {
	case JSONHandler, TextHandler, ConsoleHandler:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidHandler, l.handlerType)
	}
}

func (l *Logger) handler() slog.Handler {
	opts := &slog.HandlerOptions{
		Level:       &l.level,
		AddSource:   l.addSource,
		ReplaceAttr: l.replaceAttr,
	}

	switch l.handlerType {
	case TextHandler:
		return slog.NewTextHandler(l.output, opts)
	case ConsoleHandler:
		return newConsoleHandler(l.output, opts)
	default:
		return slog.NewJSONHandler(l.output, opts)
	}
}

// Logger returns the underlying [slog.Logger].
func (l *Logger) Logger() *slog.Logger {
	return l.slogger
}

// With returns a [slog.Logger] with additional attributes.
func (l *Logger) With(args ...any) *slog.Logger {
	return l.slogger.With(args...)
}

// Level returns the current minimum level.
func (l *Logger) Level() Level {
	return l.level.Level()
}

// SetLevel changes the minimum level.
func (l *Logger) SetLevel(level Level) {
	l.level.Set(level)
}

// Debug logs a debug message with structured attributes.
func (l *Logger) Debug(msg string, args ...any) {
	l.slogger.Debug(msg, args...)
}

// Info logs an informational message with structured attributes.
func (l *Logger) Info(msg string, args ...any) {
	l.slogger.Info(msg, args...)
}

// Warn logs a warning message with structured attributes.
func (l *Logger) Warn(msg string, args ...any) {
	l.slogger.Warn(msg, args...)
}

// Error logs an error message with structured attributes.
func (l *Logger) Error(msg string, args ...any) {
	l.slogger.Error(msg, args...)
}

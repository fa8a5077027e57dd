// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger provides a thin wrapper around zerolog.Logger used
// throughout the rendezvous dashboard.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, etc.) are available directly on *Logger.
// There is no package-level logger: the application builds one *Logger over
// the log store's writer and passes it explicitly to every component.
package logger

import (
	"io"

	"github.com/rs/zerolog"
)

// Logger is a thin wrapper around zerolog.Logger.
// Embedding zerolog.Logger exposes the full zerolog API while allowing the
// application to add helper methods without modifying the upstream type.
type Logger struct {
	zerolog.Logger
}

// NewSessionLogger constructs a *Logger writing human-readable lines to w,
// which is normally the log store's tee writer.
//
// The logger is configured with:
//   - minimum level Info, set on the logger itself rather than globally;
//   - a "role" field set to role;
//   - zerolog's console format without colors and without timestamps, so
//     every event becomes exactly one plain line ending in a newline.
func NewSessionLogger(w io.Writer, role string) *Logger {
	out := zerolog.ConsoleWriter{
		Out:          w,
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}

	logger := zerolog.New(out).
		Level(zerolog.InfoLevel).
		With().
		Str("role", role).
		Logger()

	return &Logger{logger}
}

// Nop returns a *Logger that discards all log output.
// It is used when the log store could not be initialized, and in tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a new *Logger that inherits all fields of the
// receiver. The child logger can be enriched with additional context fields
// without affecting the parent logger.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// WithComponent returns a child logger tagged with a "component" field.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{l.With().Str("component", name).Logger()}
}

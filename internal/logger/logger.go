// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog for the merlin client.
//
// The terminal UI owns stdout, so the client logs to a file next to the
// executable. Subsystems get a child logger tagged with their component
// name; bridge requests carry a request-scoped logger in their context.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ClientLogFile is the file name used by [NewClientLogger].
const ClientLogFile = "merlin-client.log"

// Logger embeds zerolog.Logger so the whole zerolog API is available.
type Logger struct {
	zerolog.Logger
}

// NewLogger returns a JSON logger on stdout tagged with role. Every entry
// has a timestamp and the calling function under "func".
func NewLogger(role string) *Logger {
	return newLogger(os.Stdout, role)
}

// NewClientLogger logs to [ClientLogFile] next to the executable so that log
// lines never interleave with the terminal UI.
func NewClientLogger(role string) *Logger {
	execPath, _ := os.Executable()
	return NewFileLogger(role, filepath.Join(filepath.Dir(execPath), ClientLogFile))
}

// NewFileLogger appends to logPath, falling back to stdout when the file
// cannot be opened.
func NewFileLogger(role, logPath string) *Logger {
	var out io.Writer = os.Stdout
	if f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); err == nil {
		out = f
	}
	return newLogger(out, role)
}

func newLogger(out io.Writer, role string) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerFieldName = "func"
	zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
		return runtime.FuncForPC(pc).Name()
	}

	return &Logger{zerolog.New(out).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()}
}

// Nop discards everything. Used in tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a copy that can be enriched without touching l.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// WithComponent returns a child logger tagged with the subsystem name, e.g.
// "wallet" or "bridge".
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{l.With().Str("component", name).Logger()}
}

// FromRequest returns the logger attached to the request context. Without
// one zerolog hands out its default logger.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger attached to ctx or zerolog's default.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}

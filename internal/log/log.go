// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package log re-exports the luxfi/log.Logger contract used throughout the
// storage engine so that every component depends on one interface instead
// of importing github.com/luxfi/log directly.
package log

import (
	"context"
	"io"
	"log/slog"

	"github.com/luxfi/log"
	"go.uber.org/zap"
)

// Logger is the logging contract every component accepts.
type Logger = log.Logger

// NewNoOp returns a Logger that discards all output.
func NewNoOp() Logger {
	return log.NewNoOpLogger()
}

// slogLogger implements log.Logger on top of the standard library's slog,
// for callers that want real output without depending on luxfi/log's own
// constructors.
type slogLogger struct {
	base *slog.Logger
}

// NewSlog returns a Logger backed by a slog.Logger writing to w at the
// given minimum level.
func NewSlog(w io.Writer, level slog.Level) Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &slogLogger{base: slog.New(handler)}
}

func (l *slogLogger) With(ctx ...interface{}) log.Logger {
	return &slogLogger{base: l.base.With(ctx...)}
}

func (l *slogLogger) New(ctx ...interface{}) log.Logger { return l.With(ctx...) }

func (l *slogLogger) Log(level slog.Level, msg string, ctx ...interface{}) {
	l.base.Log(context.Background(), level, msg, ctx...)
}

func (l *slogLogger) Trace(msg string, ctx ...interface{}) { l.Log(slog.LevelDebug-4, msg, ctx...) }
func (l *slogLogger) Debug(msg string, ctx ...interface{}) { l.Log(slog.LevelDebug, msg, ctx...) }
func (l *slogLogger) Info(msg string, ctx ...interface{})  { l.Log(slog.LevelInfo, msg, ctx...) }
func (l *slogLogger) Warn(msg string, ctx ...interface{})  { l.Log(slog.LevelWarn, msg, ctx...) }
func (l *slogLogger) Error(msg string, ctx ...interface{}) { l.Log(slog.LevelError, msg, ctx...) }
func (l *slogLogger) Crit(msg string, ctx ...interface{})  { l.Log(slog.LevelError+4, msg, ctx...) }

func (l *slogLogger) WriteLog(level slog.Level, msg string, attrs ...any) {
	l.Log(level, msg, attrs...)
}

func (l *slogLogger) Enabled(ctx context.Context, level slog.Level) bool {
	return l.base.Enabled(ctx, level)
}

func (l *slogLogger) Handler() slog.Handler { return l.base.Handler() }

// Fatal logs at fatal level. Does not terminate the process; callers that
// need to exit do so explicitly after calling it.
func (l *slogLogger) Fatal(msg string, fields ...zap.Field) { l.Error(msg) }

// Verbo logs at verbose level.
func (l *slogLogger) Verbo(msg string, fields ...zap.Field) { l.Trace(msg) }

func (l *slogLogger) WithFields(fields ...zap.Field) log.Logger   { return l }
func (l *slogLogger) WithOptions(opts ...zap.Option) log.Logger   { return l }

func (l *slogLogger) SetLevel(slog.Level)      {}
func (l *slogLogger) GetLevel() slog.Level     { return slog.LevelInfo }
func (l *slogLogger) EnabledLevel(lvl slog.Level) bool { return l.Enabled(context.Background(), lvl) }
func (l *slogLogger) StopOnPanic()                     {}
func (l *slogLogger) RecoverAndPanic(f func())         { f() }
func (l *slogLogger) RecoverAndExit(f, exit func())    { f() }
func (l *slogLogger) Stop()                            {}

func (l *slogLogger) Write(p []byte) (int, error) {
	l.Info(string(p))
	return len(p), nil
}

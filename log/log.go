// Copyright 2026 The go-dex Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package log is a minimal leveled-logging facade used so that the decoder
// can report diagnostics (a class_def_item that fails to resolve) without
// forcing a logging framework on callers. A caller that wants silence can pass nil; a caller that wants
// structured output can supply any Logger implementation.
package log

import (
	"fmt"
	"log"
	"os"
)

// Level orders log severities from most to least verbose.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger is the minimal interface the decoder depends on. Log receives a
// level and alternating key/value pairs followed by a final message, the
// same calling convention go-kit/kratos-style loggers use.
type Logger interface {
	Log(level Level, keyvals ...interface{}) error
}

// stdLogger adapts the standard library's *log.Logger to Logger.
type stdLogger struct {
	std *log.Logger
}

// NewStdLogger returns a Logger that writes to w using the standard
// library logger, one line per call.
func NewStdLogger(w *os.File) Logger {
	return &stdLogger{std: log.New(w, "", log.LstdFlags)}
}

func (s *stdLogger) Log(level Level, keyvals ...interface{}) error {
	s.std.Println(append([]interface{}{level.String()}, keyvals...)...)
	return nil
}

// filter wraps a Logger and drops any call below the configured level.
type filter struct {
	next     Logger
	minLevel Level
}

// NewFilter returns a Logger that forwards to next only calls at minLevel
// or above.
func NewFilter(next Logger, minLevel Level) Logger {
	return &filter{next: next, minLevel: minLevel}
}

func (f *filter) Log(level Level, keyvals ...interface{}) error {
	if level < f.minLevel {
		return nil
	}
	return f.next.Log(level, keyvals...)
}

// Helper is a thin convenience wrapper offering printf-style methods over a
// Logger. A nil *Helper is safe to call methods on; each is a no-op.
type Helper struct {
	logger Logger
}

// NewHelper wraps logger. If logger is nil the returned Helper discards
// every call.
func NewHelper(logger Logger) *Helper {
	return &Helper{logger: logger}
}

func (h *Helper) log(level Level, format string, args ...interface{}) {
	if h == nil || h.logger == nil {
		return
	}
	_ = h.logger.Log(level, "msg", fmt.Sprintf(format, args...))
}

func (h *Helper) Debugf(format string, args ...interface{}) { h.log(LevelDebug, format, args...) }
func (h *Helper) Infof(format string, args ...interface{})  { h.log(LevelInfo, format, args...) }
func (h *Helper) Warnf(format string, args ...interface{})  { h.log(LevelWarn, format, args...) }
func (h *Helper) Errorf(format string, args ...interface{}) { h.log(LevelError, format, args...) }

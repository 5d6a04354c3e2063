// Copyright (c) 2025 The USVText Authors.
// SPDX-License-Identifier: Apache-2.0

package testutils

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

// NewLogger creates a new zap.Logger that writes JSON lines into an
// in-memory Buffer, which is also returned. Timestamps are omitted so that
// log lines stay deterministic and easy to assert on.
func NewLogger() (*zap.Logger, *Buffer) {
	encoder := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		MessageKey:     "msg",
		LevelKey:       "level",
		NameKey:        "logger",
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	})
	buf := &Buffer{}
	logger := zap.New(
		zapcore.NewCore(encoder, zapcore.AddSync(buf), zapcore.DebugLevel))
	return logger, buf
}

// Buffer wraps zaptest.Buffer with a lock so that it can be written and
// read from different goroutines.
type Buffer struct {
	sync.RWMutex
	zaptest.Buffer
}

// Write implements io.Writer.
func (b *Buffer) Write(p []byte) (int, error) {
	b.Lock()
	defer b.Unlock()
	return b.Buffer.Write(p)
}

// String returns the contents of the buffer.
func (b *Buffer) String() string {
	b.RLock()
	defer b.RUnlock()
	return b.Buffer.String()
}

// Stripped returns the contents of the buffer without the trailing newline.
func (b *Buffer) Stripped() string {
	b.RLock()
	defer b.RUnlock()
	return b.Buffer.Stripped()
}

// Lines returns the accumulated log lines.
func (b *Buffer) Lines() []string {
	b.RLock()
	defer b.RUnlock()
	return b.Buffer.Lines()
}

// JSONLine reads the i-th line from the buffer and unmarshals it as a map.
func (b *Buffer) JSONLine(i int) map[string]string {
	lines := b.Lines()
	if i >= len(lines) {
		return map[string]string{
			"error": "no line at index",
		}
	}
	line := make(map[string]string)
	if err := json.Unmarshal([]byte(lines[i]), &line); err != nil {
		return map[string]string{
			"error": err.Error(),
		}
	}
	return line
}

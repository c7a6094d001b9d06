package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	t.Setenv(DebugEnv, "")

	tests := []struct {
		input string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{" warn ", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestParseLevel_DebugEnvOverrides(t *testing.T) {
	t.Setenv(DebugEnv, "1")
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("error"))
}

func TestZapLogger_Levels(t *testing.T) {
	t.Setenv(DebugEnv, "")

	var buf bytes.Buffer
	l := NewZapLogger(&buf, InfoLevel, "dashboard")

	l.Debug("hidden %d", 1)
	l.Info("info message %d", 42)
	l.Warn("warning message")
	l.Error("error message")

	out := buf.String()
	assert.NotContains(t, out, "hidden 1")
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "info message 42")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "warning message")
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "error message")
	assert.Contains(t, out, "dashboard")
}

func TestZapLogger_DebugEnabled(t *testing.T) {
	t.Setenv(DebugEnv, "")

	var buf bytes.Buffer
	l := NewZapLogger(&buf, DebugLevel, "")
	l.Debug("cycle %s", "abc")

	assert.Contains(t, buf.String(), "cycle abc")
}

func TestNewFileLogger(t *testing.T) {
	t.Setenv(DebugEnv, "")

	path := filepath.Join(t.TempDir(), "logs", "aquaflow.log")
	l, closeFn, err := NewFileLogger(path, InfoLevel)
	require.NoError(t, err)

	l.Error("fetch failed: %s", "stats")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "fetch failed: stats")
}

func TestNewFileLogger_BadPath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, _, err := NewFileLogger(filepath.Join(blocker, "sub", "a.log"), InfoLevel)
	assert.Error(t, err)
}

func TestBufferLogger(t *testing.T) {
	l := NewBufferLogger()

	l.Debug("debug %s", "msg")
	l.Info("info %s", "msg")
	l.Warn("warn %s", "msg")
	l.Error("error %s", "msg")

	msgs := l.Snapshot()
	require.Len(t, msgs, 4)

	assert.Equal(t, LogMessage{Level: "debug", Message: "debug msg"}, msgs[0])
	assert.Equal(t, LogMessage{Level: "info", Message: "info msg"}, msgs[1])
	assert.Equal(t, LogMessage{Level: "warn", Message: "warn msg"}, msgs[2])
	assert.Equal(t, LogMessage{Level: "error", Message: "error msg"}, msgs[3])
}

func TestBufferLogger_HasLevel(t *testing.T) {
	l := NewBufferLogger()

	assert.False(t, l.HasLevel("debug"))
	assert.False(t, l.HasLevel("error"))

	l.Debug("test")
	assert.True(t, l.HasLevel("debug"))
	assert.False(t, l.HasLevel("error"))

	l.Error("test")
	assert.True(t, l.HasLevel("error"))
}

func TestBufferLogger_Clear(t *testing.T) {
	l := NewBufferLogger()

	l.Debug("test1")
	l.Info("test2")
	require.Len(t, l.Snapshot(), 2)

	l.Clear()
	assert.Empty(t, l.Snapshot())
}

func TestNoopLogger(t *testing.T) {
	l := Noop()
	assert.NotPanics(t, func() {
		l.Debug("debug")
		l.Info("info")
		l.Warn("warn")
		l.Error("error")
	})
}

func TestDefault(t *testing.T) {
	original := defaultLogger
	defer func() { defaultLogger = original }()

	assert.NotNil(t, Default())

	buf := NewBufferLogger()
	SetDefault(buf)

	assert.Equal(t, buf, Default())
}

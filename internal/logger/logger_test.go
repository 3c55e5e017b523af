package logger

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := New(zap.New(core), "store")

	l.Debug("debug %s", "one")
	l.Info("info %d", 2)
	l.Warn("warn")
	l.Error("error %v", true)

	entries := logs.All()
	require.Len(t, entries, 4)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "debug one", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, "info 2", entries[1].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
	assert.Equal(t, "error true", entries[3].Message)

	for _, e := range entries {
		assert.Equal(t, "store", e.LoggerName)
	}
}

func TestNamed(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	root := New(zap.New(core), "")

	Named(root, "store").Warn("query failed")
	Named(Named(root, "dashboard"), "refresh").Debug("tick")
	Named(root, "").Info("unnamed")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "store", entries[0].LoggerName)
	assert.Equal(t, "dashboard.refresh", entries[1].LoggerName)
	assert.Equal(t, "", entries[2].LoggerName)

	buf := NewBufferLogger()
	assert.Same(t, buf, Named(buf, "store"))
}

func TestZapLogger_RespectsCoreLevel(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := New(zap.New(core), "")

	l.Debug("hidden")
	l.Info("shown")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "shown", logs.All()[0].Message)
}

func TestNewFileLogger(t *testing.T) {
	tests := []struct {
		name      string
		debug     bool
		wantDebug bool
	}{
		{name: "debug enabled", debug: true, wantDebug: true},
		{name: "debug disabled", debug: false, wantDebug: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "logchecker.log")

			l, closeFn, err := NewFileLogger(path, tt.debug)
			require.NoError(t, err)

			l.Debug("debug line %d", 1)
			l.Info("info line")
			closeFn()

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			content := string(data)

			assert.Contains(t, content, "info line")
			assert.Contains(t, content, "INFO")
			if tt.wantDebug {
				assert.Contains(t, content, "debug line 1")
			} else {
				assert.NotContains(t, content, "debug line 1")
			}
		})
	}
}

func TestNoop(t *testing.T) {
	l := Noop()

	assert.NotPanics(t, func() {
		l.Debug("debug %s", "msg")
		l.Info("info %s", "msg")
		l.Warn("warn %s", "msg")
		l.Error("error %s", "msg")
	})
}

func TestBufferLogger(t *testing.T) {
	l := NewBufferLogger()

	l.Debug("debug %d", 1)
	l.Info("info %d", 2)
	l.Warn("warn %d", 3)
	l.Error("error %d", 4)

	require.Len(t, l.Messages, 4)
	assert.Equal(t, LogMessage{Level: "debug", Message: "debug 1"}, l.Messages[0])
	assert.Equal(t, LogMessage{Level: "error", Message: "error 4"}, l.Messages[3])

	assert.True(t, l.HasLevel("warn"))
	assert.False(t, l.HasLevel("fatal"))

	snap := l.Snapshot()
	l.Clear()
	assert.Empty(t, l.Messages)
	assert.Len(t, snap, 4, "snapshot should be independent of Clear")
}

func TestBufferLogger_Concurrent(t *testing.T) {
	l := NewBufferLogger()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l.Info("message %d", i)
		}(i)
	}
	wg.Wait()

	assert.Len(t, l.Snapshot(), 20)
}

func TestDefaultAndSetDefault(t *testing.T) {
	original := Default()
	defer SetDefault(original)

	assert.NotNil(t, Default())

	buf := NewBufferLogger()
	SetDefault(buf)
	Default().Info("via default")

	assert.True(t, buf.HasLevel("info"))
}

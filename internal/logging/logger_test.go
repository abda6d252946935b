package logging

import (
	"os"
	"path/filepath"
	"testing"

	"gradebook/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// observe routes all categories to an in-memory observer for the test.
func observe(t *testing.T, cfg config.LoggingConfig) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	Use(zap.New(core), cfg)
	t.Cleanup(func() { Use(zap.NewNop(), config.LoggingConfig{}) })
	return logs
}

func TestGet_TagsCategory(t *testing.T) {
	logs := observe(t, config.LoggingConfig{DebugMode: true})

	Console("dispatch %q", "1")

	entries := logs.FilterMessage(`dispatch "1"`).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "console", entries[0].ContextMap()["category"])
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
}

func TestGet_DisabledCategory(t *testing.T) {
	logs := observe(t, config.LoggingConfig{
		DebugMode:  true,
		Categories: map[string]bool{"store": false},
	})

	StoreDebug("hidden")
	SessionDebug("shown")

	assert.Zero(t, logs.FilterMessage("hidden").Len())
	assert.Equal(t, 1, logs.FilterMessage("shown").Len())
}

func TestGet_DebugModeOff(t *testing.T) {
	logs := observe(t, config.LoggingConfig{DebugMode: false})

	Boot("nothing")
	Get(CategoryTUI).Error("still nothing")

	assert.Zero(t, logs.Len())
}

func TestLogger_With(t *testing.T) {
	logs := observe(t, config.LoggingConfig{DebugMode: true})

	Get(CategoryStore).With("backend", "sqlite").Warn("slow")

	entries := logs.FilterMessage("slow").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "sqlite", entries[0].ContextMap()["backend"])
}

func TestZeroLoggerIsNoop(t *testing.T) {
	var l Logger
	l.Info("ignored")
	assert.Same(t, &l, l.With("k", "v"))
}

func TestTimer(t *testing.T) {
	logs := observe(t, config.LoggingConfig{DebugMode: true})

	elapsed := StartTimer(CategoryStore, "open").Stop()

	assert.GreaterOrEqual(t, int64(elapsed), int64(0))
	assert.Equal(t, 1, logs.FilterField(zap.String("category", "store")).Len())
}

func TestInitialize_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gradebook.log")
	t.Cleanup(func() { Use(zap.NewNop(), config.LoggingConfig{}) })

	err := Initialize(config.LoggingConfig{
		DebugMode: true,
		Level:     "debug",
		Format:    "json",
		File:      path,
	}, "session-123")
	require.NoError(t, err)

	Boot("booted")
	require.NoError(t, Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "booted")
	assert.Contains(t, string(data), "session-123")
	assert.Contains(t, string(data), `"category":"boot"`)
}

func TestInitialize_InvalidLevel(t *testing.T) {
	err := Initialize(config.LoggingConfig{DebugMode: true, Level: "loud"}, "s")
	assert.Error(t, err)
}

func TestInitialize_DebugModeOffIsSilent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gradebook.log")

	require.NoError(t, Initialize(config.LoggingConfig{File: path, Level: "debug"}, "s"))
	Boot("quiet")

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

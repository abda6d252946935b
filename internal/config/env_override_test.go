package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvOverrides(t *testing.T) {
	t.Run("GRADEBOOK_BACKEND sets backend", func(t *testing.T) {
		t.Setenv("GRADEBOOK_BACKEND", "sqlite")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "sqlite", cfg.Store.Backend)
	})

	t.Run("empty values leave config alone", func(t *testing.T) {
		t.Setenv("GRADEBOOK_BACKEND", "")
		t.Setenv("GRADEBOOK_LOG_LEVEL", "")
		t.Setenv("GRADEBOOK_LOG_FILE", "")
		t.Setenv("GRADEBOOK_DEBUG", "")
		t.Setenv("GRADEBOOK_THEME", "")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("logging overrides", func(t *testing.T) {
		t.Setenv("GRADEBOOK_LOG_LEVEL", "debug")
		t.Setenv("GRADEBOOK_LOG_FILE", "/tmp/gb.log")
		t.Setenv("GRADEBOOK_DEBUG", "true")

		cfg := &Config{}
		cfg.applyEnvOverrides()

		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "/tmp/gb.log", cfg.Logging.File)
		assert.True(t, cfg.Logging.DebugMode)
	})

	t.Run("GRADEBOOK_THEME sets theme", func(t *testing.T) {
		t.Setenv("GRADEBOOK_THEME", "dark")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "dark", cfg.UI.Theme)
	})

	t.Run("unparseable GRADEBOOK_DEBUG is ignored", func(t *testing.T) {
		t.Setenv("GRADEBOOK_DEBUG", "sometimes")

		cfg := &Config{Logging: LoggingConfig{DebugMode: true}}
		cfg.applyEnvOverrides()

		assert.True(t, cfg.Logging.DebugMode)
	})
}

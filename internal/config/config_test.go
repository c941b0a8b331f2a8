package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Success: Defaults without any file", func(t *testing.T) {
		cfg, err := Load(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, DriverSQLite, cfg.StoreDriver)
		assert.Equal(t, "localhost:8080", cfg.Addr())
		assert.Equal(t, 3*time.Second, cfg.WriteTimeout)
		assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
		assert.Equal(t, "mock", cfg.CoachProvider)
		assert.False(t, cfg.CacheEnabled)
	})

	t.Run("Success: Environment overrides defaults", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "Memory")
		t.Setenv("WRITE_TIMEOUT", "500ms")
		t.Setenv("CACHE_ENABLED", "true")
		t.Setenv("REDIS_DB", "2")

		cfg, err := Load(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, DriverMemory, cfg.StoreDriver)
		assert.Equal(t, 500*time.Millisecond, cfg.WriteTimeout)
		assert.True(t, cfg.CacheEnabled)
		assert.Equal(t, 2, cfg.RedisDB)
	})

	t.Run("Success: app.env file is read", func(t *testing.T) {
		dir := t.TempDir()
		content := "PORT=9090\nALLOWED_ORIGINS=http://a.test, http://b.test\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o600))

		cfg, err := Load(dir)
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.Port)
		assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Origins())
	})

	t.Run("Fail: Unknown store driver", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "floppy")

		_, err := Load(t.TempDir())
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("Fail: Gemini without key", func(t *testing.T) {
		t.Setenv("COACH_PROVIDER", "gemini")
		t.Setenv("GEMINI_API_KEY", "")

		_, err := Load(t.TempDir())
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

// ABOUTME: Tests for configuration loading and preference store selection
// ABOUTME: Uses t.Setenv and temp directories so nothing touches the real XDG paths
package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/dealgrid/columns"
	"github.com/harperreed/dealgrid/prefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	t.Setenv(EnvDataDir, dir)
	t.Setenv(EnvPrefsBackend, "SQLite")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, BackendSQLite, cfg.PrefsBackend)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadReadsDotEnv(t *testing.T) {
	work := t.TempDir()
	t.Chdir(work)
	// godotenv never overrides a variable that is already set, even to ""
	t.Setenv(EnvPrefsBackend, "")
	require.NoError(t, os.Unsetenv(EnvPrefsBackend))
	require.NoError(t, os.WriteFile(filepath.Join(work, ".env"), []byte("DEALGRID_PREFS_BACKEND=memory\n"), 0600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.PrefsBackend)
}

func TestValidate(t *testing.T) {
	cfg := &Config{PrefsBackend: "redis", LogLevel: "info"}
	assert.Error(t, cfg.Validate())

	cfg = &Config{PrefsBackend: BackendBadger, LogLevel: "chatty"}
	assert.Error(t, cfg.Validate())

	cfg = &Config{PrefsBackend: BackendMemory, LogLevel: "warn"}
	assert.NoError(t, cfg.Validate())
}

func TestSetupLogger(t *testing.T) {
	assert.NoError(t, SetupLogger("debug"))
	assert.Error(t, SetupLogger("shouting"))
	require.NoError(t, SetupLogger(DefaultLogLevel))
}

func TestOpenPreferencesBackends(t *testing.T) {
	ctx := context.Background()
	reg := columns.Default()

	for _, backend := range []string{BackendBadger, BackendSQLite, BackendMemory} {
		t.Run(backend, func(t *testing.T) {
			cfg := &Config{DataDir: t.TempDir(), PrefsBackend: backend, LogLevel: "info"}

			m, err := OpenPreferences(ctx, cfg, reg)
			require.NoError(t, err)
			defer m.Close()

			p := prefs.Defaults(reg)
			p.ShowFilters = true
			require.NoError(t, m.Save(ctx, p))
			assert.True(t, m.Load(ctx).ShowFilters)
		})
	}

	_, err := OpenPreferences(ctx, &Config{DataDir: t.TempDir(), PrefsBackend: "etcd"}, reg)
	assert.Error(t, err)
}

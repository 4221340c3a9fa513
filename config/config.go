// ABOUTME: Runtime configuration from .env, environment and XDG defaults
// ABOUTME: Also installs the process logger and opens the configured preference store
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/harperreed/dealgrid/columns"
	"github.com/harperreed/dealgrid/prefs"
	"github.com/joho/godotenv"
)

// AppName names the XDG data directory.
const AppName = "dealgrid"

// Environment variables read by Load.
const (
	EnvDataDir       = "DEALGRID_DATA_DIR"
	EnvPrefsBackend  = "DEALGRID_PREFS_BACKEND"
	EnvLogLevel      = "DEALGRID_LOG_LEVEL"
	DefaultLogLevel  = "info"
	DefaultBackend   = BackendBadger
	sqliteFileName   = "dealgrid.db"
	badgerDirName    = "prefs"
)

// Preference backends.
const (
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

type Config struct {
	DataDir      string
	PrefsBackend string
	LogLevel     string
}

// Load reads an optional .env file then the environment. A missing .env is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		DataDir:      filepath.Join(xdg.DataHome, AppName),
		PrefsBackend: DefaultBackend,
		LogLevel:     DefaultLogLevel,
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv(EnvPrefsBackend); v != "" {
		cfg.PrefsBackend = strings.ToLower(v)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	switch c.PrefsBackend {
	case BackendBadger, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown preferences backend %q (valid: badger, sqlite, memory)", c.PrefsBackend)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}

// SetupLogger installs a stderr logger at the given level as the default.
func SetupLogger(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetDefault(log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          AppName,
		Level:           lvl,
	}))
	return nil
}

// OpenPreferences opens the configured backend and wraps it in a manager.
func OpenPreferences(_ context.Context, cfg *Config, reg *columns.Registry) (*prefs.Manager, error) {
	var (
		backend prefs.Backend
		err     error
	)
	switch cfg.PrefsBackend {
	case BackendBadger:
		dir := filepath.Join(cfg.DataDir, badgerDirName)
		backend, err = prefs.OpenBadger(dir)
		log.Debug("opened badger preferences", "dir", dir)
	case BackendSQLite:
		path := filepath.Join(cfg.DataDir, sqliteFileName)
		backend, err = prefs.OpenSQLite(path)
		log.Debug("opened sqlite preferences", "path", path)
	case BackendMemory:
		backend = prefs.NewMemoryBackend()
	default:
		err = fmt.Errorf("unknown preferences backend %q", cfg.PrefsBackend)
	}
	if err != nil {
		return nil, err
	}
	return prefs.NewManager(backend, reg), nil
}

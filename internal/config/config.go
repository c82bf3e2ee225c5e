// Package config handles the configuration directory, .env loading and API settings.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	// AppName is the application directory name.
	AppName = "taskui"

	// DefaultBaseURL is the task API the client talks to unless overridden.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout bounds every API call.
	DefaultTimeout = 10 * time.Second

	// DefaultAddr is the listen address of the web page.
	DefaultAddr = "localhost:3000"

	// EnvFile is the dotenv file read from the config directory.
	EnvFile = ".env"

	// LogFile is the log filename inside the config directory.
	LogFile = "taskui.log"
)

// Environment variable names.
const (
	EnvAPIURL  = "TASKUI_API_URL"
	EnvTimeout = "TASKUI_TIMEOUT"
	EnvAddr    = "TASKUI_ADDR"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// BaseURL is the root of the task REST API.
	BaseURL string

	// Timeout bounds each API call.
	Timeout time.Duration

	// Addr is the listen address of the web page.
	Addr string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Log is the process logger. Nil means discard.
	Log *zap.Logger
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskui or $HOME/.config/taskui.
// Settings come from the environment after loading <dir>/.env and ./.env;
// variables already set in the process environment win.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	for _, path := range []string{filepath.Join(dir, EnvFile), EnvFile} {
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	cfg := &Config{
		Dir:     dir,
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
		Addr:    DefaultAddr,
	}

	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid %s: %q", EnvTimeout, v)
		}
		cfg.Timeout = d
	}
	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Addr = v
	}

	if err := cfg.SetBaseURL(cfg.BaseURL); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// SetBaseURL validates and stores the API base URL without a trailing slash.
func (c *Config) SetBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid API URL: %s", raw)
	}
	c.BaseURL = strings.TrimRight(raw, "/")
	return nil
}

// LogPath returns the path to the log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.Dir, LogFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// Logger returns the configured logger, or a no-op logger.
func (c *Config) Logger() *zap.Logger {
	if c == nil || c.Log == nil {
		return zap.NewNop()
	}
	return c.Log
}

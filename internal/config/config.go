// Package config handles the XDG configuration directory and config.yaml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "tasktracker"

	// ConfigFile is the optional settings filename.
	ConfigFile = "config.yaml"

	// CredentialsDir holds one file per cached credential (file backend).
	CredentialsDir = "credentials"

	// CacheDBFile is the SQLite credential cache (sqlite backend).
	CacheDBFile = "cache.db"

	// EnvServer overrides server_url.
	EnvServer = "TASKTRACKER_SERVER"
)

// Credential cache backends.
const (
	CacheFile   = "file"
	CacheSQLite = "sqlite"
)

const (
	defaultServerURL = "http://localhost:8080/api"
	defaultTimeout   = 10 * time.Second
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// ServerURL is the API root, e.g. http://localhost:8080/api.
	ServerURL string

	// Timeout bounds each HTTP request.
	Timeout time.Duration

	// Cache selects the credential cache backend: "file" or "sqlite".
	Cache string

	// RateLimit caps requests per second. Zero disables it.
	RateLimit float64
}

// fileConfig is the on-disk shape of config.yaml.
type fileConfig struct {
	ServerURL string  `yaml:"server_url"`
	Timeout   string  `yaml:"timeout"`
	Cache     string  `yaml:"cache"`
	RateLimit float64 `yaml:"rate_limit"`
}

// New creates a Config for configDir, or the default directory if empty.
// Settings are layered: defaults, then config.yaml if present, then the
// TASKTRACKER_SERVER environment variable.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{
		Dir:       dir,
		ServerURL: defaultServerURL,
		Timeout:   defaultTimeout,
		Cache:     CacheFile,
	}

	if err := cfg.loadFile(); err != nil {
		return nil, err
	}

	if env := os.Getenv(EnvServer); env != "" {
		cfg.ServerURL = env
	}
	cfg.ServerURL = strings.TrimRight(cfg.ServerURL, "/")

	return cfg, nil
}

func (c *Config) loadFile() error {
	data, err := os.ReadFile(c.ConfigPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}

	if fc.ServerURL != "" {
		c.ServerURL = fc.ServerURL
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid %s: timeout: %q", ConfigFile, fc.Timeout)
		}
		c.Timeout = d
	}
	switch fc.Cache {
	case "":
	case CacheFile, CacheSQLite:
		c.Cache = fc.Cache
	default:
		return fmt.Errorf("invalid %s: unknown cache backend: %q", ConfigFile, fc.Cache)
	}
	if fc.RateLimit < 0 {
		return fmt.Errorf("invalid %s: rate_limit must not be negative", ConfigFile)
	}
	c.RateLimit = fc.RateLimit
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the path to config.yaml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// CredentialsPath returns the file-backend credential directory.
func (c *Config) CredentialsPath() string {
	return filepath.Join(c.Dir, CredentialsDir)
}

// CacheDBPath returns the sqlite-backend database path.
func (c *Config) CacheDBPath() string {
	return filepath.Join(c.Dir, CacheDBFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

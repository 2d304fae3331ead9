// Package config handles XDG configuration directory, file paths and settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application directory name.
	AppName = "todosync"

	// ConfigFile is the optional settings filename.
	ConfigFile = "config.toml"

	// TokenFile is the stored session token filename.
	TokenFile = "token.json"

	// EnvAPIURL overrides the API base URL.
	EnvAPIURL = "TODOSYNC_API_URL"
)

// Defaults.
const (
	DefaultAPIURL     = "https://todobackend-bi77.onrender.com"
	DefaultLoginPath  = "/auth/login"
	DefaultSignupPath = "/auth/signup"
	DefaultTimeout    = 15 * time.Second
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `toml:"-"`

	// APIURL is the base URL of the remote task API.
	APIURL string `toml:"api_url"`

	// LoginPath and SignupPath are the authentication endpoints, relative to APIURL.
	LoginPath  string `toml:"login_path"`
	SignupPath string `toml:"signup_path"`

	// Timeout bounds every API call.
	Timeout Duration `toml:"timeout"`

	// Debug enables debug logging.
	Debug bool `toml:"-"`

	// Quiet suppresses informational output.
	Quiet bool `toml:"-"`
}

// Duration is a time.Duration decoded from a TOML string such as "10s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// New creates a Config with defaults, the config file (if any) and the environment applied.
// If configDir is empty, uses XDG_CONFIG_HOME/todosync or $HOME/.config/todosync.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{
		Dir:        dir,
		APIURL:     DefaultAPIURL,
		LoginPath:  DefaultLoginPath,
		SignupPath: DefaultSignupPath,
		Timeout:    Duration{DefaultTimeout},
	}

	if err := cfg.loadFile(); err != nil {
		return nil, err
	}
	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.APIURL = v
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	return cfg, nil
}

// loadFile decodes config.toml over the current values. A missing file is not an error.
func (c *Config) loadFile() error {
	path := c.ConfigPath()
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", ConfigFile, err)
	}
	if _, err := toml.DecodeFile(path, c); err != nil {
		return fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}
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
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the path to the settings file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// TokenPath returns the path to the stored session token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

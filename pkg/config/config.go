// Package config loads API credentials and client settings from a YAML
// config file with environment-variable overrides.
//
// Resolution order, later wins:
//
//  1. built-in defaults
//  2. config file ($SLKIT_CONFIG, else ~/.slkit/config.yaml)
//  3. SL_USERNAME / SL_API_KEY / SL_ENDPOINT / SL_TOKEN environment variables
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/slkit/slkit/pkg/session"
)

// Config holds the settings needed to open an API session.
type Config struct {
	Username string `yaml:"username"`
	APIKey   string `yaml:"api_key"`
	Endpoint string `yaml:"endpoint"`

	// Token is an IAM bearer token. When set it takes precedence over
	// username/api_key.
	Token string `yaml:"token"`

	// Timeout is the per-call HTTP timeout in seconds. Zero keeps the
	// session default.
	Timeout int `yaml:"timeout"`

	// RateLimit caps outgoing API calls per second; Burst is the token
	// bucket size. Zero leaves the session unthrottled.
	RateLimit float64 `yaml:"rate_limit"`
	Burst     int     `yaml:"burst"`
}

// Environment variable names recognized as overrides.
const (
	EnvConfigPath = "SLKIT_CONFIG"
	EnvUsername   = "SL_USERNAME"
	EnvAPIKey     = "SL_API_KEY"
	EnvEndpoint   = "SL_ENDPOINT"
	EnvToken      = "SL_TOKEN"
)

var (
	defaultOnce sync.Once
	defaultCfg  *Config
	defaultErr  error
)

// Default loads the config once from the standard locations and caches it
// for the life of the process.
func Default() (*Config, error) {
	defaultOnce.Do(func() {
		defaultCfg, defaultErr = Load("")
	})
	return defaultCfg, defaultErr
}

// Load reads the config from path, or from the standard locations when path
// is empty. A missing file is not an error; env overrides may still supply
// a complete config.
func Load(path string) (*Config, error) {
	cfg := &Config{Endpoint: session.DefaultEndpoint}

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".slkit", "config.yaml")
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if v := os.Getenv(EnvUsername); v != "" {
		cfg.Username = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv(EnvEndpoint); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		cfg.Token = v
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = session.DefaultEndpoint
	}
	return cfg, nil
}

// Validate checks that the config can authenticate, either with a bearer
// token or with username/api_key.
func (c *Config) Validate() error {
	if c.Token != "" {
		return nil
	}
	if c.Username == "" || c.APIKey == "" {
		return fmt.Errorf("missing credentials: set username and api_key in the config file or %s/%s",
			EnvUsername, EnvAPIKey)
	}
	return nil
}

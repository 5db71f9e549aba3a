package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything needed to talk to Jira and run the TUI.
type Config struct {
	BaseURL    string `yaml:"base_url"`
	Email      string `yaml:"email"`
	APIToken   string `yaml:"api_token"`
	APIVersion string `yaml:"api_version"`

	PageSize    int           `yaml:"page_size"`
	HTTPTimeout time.Duration `yaml:"http_timeout"`

	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`
}

// Default returns the baseline configuration before file and env overrides.
func Default() Config {
	return Config{
		APIVersion:  "3",
		PageSize:    20,
		HTTPTimeout: 15 * time.Second,
		LogLevel:    "info",
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "jiratime", "config.yaml")
}

// Load reads the YAML config at path (if it exists) and applies environment
// overrides on top. An empty path falls back to DefaultPath.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse %s: %w", path, err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return cfg, fmt.Errorf("read %s: %w", path, err)
		}
	}

	cfg.BaseURL = getenv("JIRA_BASE_URL", cfg.BaseURL)
	cfg.Email = getenv("JIRA_EMAIL", cfg.Email)
	cfg.APIToken = getenv("JIRA_API_TOKEN", cfg.APIToken)
	cfg.APIVersion = getenv("JIRA_API_VERSION", cfg.APIVersion)
	cfg.LogFile = getenv("JIRATIME_LOG_FILE", cfg.LogFile)
	cfg.LogLevel = getenv("JIRATIME_LOG_LEVEL", cfg.LogLevel)
	cfg.HTTPTimeout = dur("JIRATIME_HTTP_TIMEOUT", cfg.HTTPTimeout)

	if cfg.PageSize <= 0 {
		cfg.PageSize = Default().PageSize
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.BaseURL == "" {
		return errors.New("config: base_url (or JIRA_BASE_URL) is required")
	}
	if c.Email == "" {
		return errors.New("config: email (or JIRA_EMAIL) is required")
	}
	if c.APIToken == "" {
		return errors.New("config: api_token (or JIRA_API_TOKEN) is required")
	}
	return nil
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func dur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

// internal/config/config.go
//
// This package handles configuration and the verdant config directory.
// Everything the client persists (config, session, logs) lives under one
// directory, ~/.config/verdant by default.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// AppDirName is the directory created under the user config root.
	AppDirName = "verdant"

	defaultServerURL = "http://localhost:8080/api"
	defaultPageSize  = 5
	defaultSortBy    = "name"
)

// ServerEnvVar overrides the configured server URL when set.
const ServerEnvVar = "VERDANT_SERVER"

const defaultConfigYAML = `# verdant client configuration
version: 1

# Base URL of the plant shop backend. All endpoints are relative to this.
server_url: http://localhost:8080/api

admin:
  # Page size for the paginated plants tab.
  page_size: 5
  # Sort key sent to /admin/plants/paginated.
  sort_by: name

logging:
  # When true, the debug log at <config dir>/logs/verdant.log includes
  # request-level detail.
  debug: false
`

// AdminSettings captures admin console preferences.
type AdminSettings struct {
	PageSize int    `yaml:"page_size"`
	SortBy   string `yaml:"sort_by"`
}

// LoggingSettings controls the file logger.
type LoggingSettings struct {
	Debug bool `yaml:"debug"`
}

// Settings models config.yaml.
type Settings struct {
	Version   int             `yaml:"version"`
	ServerURL string          `yaml:"server_url"`
	Admin     AdminSettings   `yaml:"admin"`
	Logging   LoggingSettings `yaml:"logging"`
}

// Config holds the runtime configuration for the verdant client.
type Config struct {
	// Dir is the verdant config directory (session file, logs, config.yaml).
	Dir string

	File Settings
}

// DefaultDir resolves the per-user config directory.
func DefaultDir() (string, error) {
	root, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve user config dir: %w", err)
	}
	return filepath.Join(root, AppDirName), nil
}

// InitDir creates the config directory structure and writes the default
// config file if none exists yet.
func InitDir(dir string) error {
	for _, sub := range []string{dir, filepath.Join(dir, "logs")} {
		if err := os.MkdirAll(sub, 0o755); err != nil {
			return err
		}
	}
	return ensureConfigFile(filepath.Join(dir, "config.yaml"))
}

// Load reads config.yaml from dir, falling back to defaults for anything
// missing. The VERDANT_SERVER environment variable wins over the file.
func Load(dir string) (*Config, error) {
	cfg := &Config{Dir: dir, File: defaultSettings()}
	if err := cfg.loadFile(); err != nil {
		return nil, err
	}
	if server := strings.TrimSpace(os.Getenv(ServerEnvVar)); server != "" {
		cfg.File.ServerURL = server
	}
	return cfg, nil
}

// ConfigPath returns the on-disk location of config.yaml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, "config.yaml")
}

// LogsDir returns the directory the file logger writes to.
func (c *Config) LogsDir() string {
	return filepath.Join(c.Dir, "logs")
}

// ServerURL returns the backend base URL without a trailing slash.
func (c *Config) ServerURL() string {
	return strings.TrimRight(c.File.ServerURL, "/")
}

// PageSize returns the admin pagination size, always at least 1.
func (c *Config) PageSize() int {
	if c.File.Admin.PageSize < 1 {
		return defaultPageSize
	}
	return c.File.Admin.PageSize
}

// SortBy returns the admin pagination sort key.
func (c *Config) SortBy() string {
	if strings.TrimSpace(c.File.Admin.SortBy) == "" {
		return defaultSortBy
	}
	return c.File.Admin.SortBy
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool {
	return c.File.Logging.Debug
}

func (c *Config) loadFile() error {
	path := c.ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed Settings
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	parsed.applyDefaults()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.File = parsed
	return nil
}

func defaultSettings() Settings {
	return Settings{
		Version:   1,
		ServerURL: defaultServerURL,
		Admin:     AdminSettings{PageSize: defaultPageSize, SortBy: defaultSortBy},
	}
}

func (s *Settings) applyDefaults() {
	if s.Version == 0 {
		s.Version = 1
	}
	if strings.TrimSpace(s.ServerURL) == "" {
		s.ServerURL = defaultServerURL
	}
	if s.Admin.PageSize == 0 {
		s.Admin.PageSize = defaultPageSize
	}
	if strings.TrimSpace(s.Admin.SortBy) == "" {
		s.Admin.SortBy = defaultSortBy
	}
}

func (s *Settings) validate() error {
	if s.Admin.PageSize < 1 {
		return fmt.Errorf("admin.page_size must be positive, got %d", s.Admin.PageSize)
	}
	if !strings.HasPrefix(s.ServerURL, "http://") && !strings.HasPrefix(s.ServerURL, "https://") {
		return fmt.Errorf("server_url must be an http(s) URL, got %q", s.ServerURL)
	}
	return nil
}

func ensureConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

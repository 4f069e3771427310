package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abelbrown/aagag/internal/catalog"
	"github.com/abelbrown/aagag/internal/logging"
	"github.com/abelbrown/aagag/internal/pager"
)

// Environment overrides. They win over the config file.
const (
	EnvHome     = "AAGAG_HOME"
	EnvDataURL  = "AAGAG_DATA_URL"
	EnvDataDir  = "AAGAG_DATA_DIR"
	EnvLocale   = "AAGAG_LOCALE"
	EnvLogLevel = "AAGAG_LOG_LEVEL"
)

// Config is the persistent application configuration
type Config struct {
	// DataURL is the base the datasets are read from: http(s):// for a
	// deployed site, file:// for a local checkout.
	DataURL string `yaml:"data_url"`

	// StoragePath is the SQLite file holding favorites and the last region.
	// Empty keeps them in memory only.
	StoragePath string `yaml:"storage_path"`

	Locale        string          `yaml:"locale"`
	LogLevel      string          `yaml:"log_level"`
	DefaultRegion string          `yaml:"default_region,omitempty"`
	Regions       catalog.Catalog `yaml:"regions"`

	Browse BrowseConfig `yaml:"browse"`
	Server ServerConfig `yaml:"server"`
}

// BrowseConfig holds pagination and fetch settings
type BrowseConfig struct {
	PageSize     int           `yaml:"page_size"`
	LoadInterval time.Duration `yaml:"load_interval"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
}

// ServerConfig holds settings for `agg serve`
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	DataDir        string   `yaml:"data_dir"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Home returns the application directory (~/.aagag unless AAGAG_HOME is set).
func Home() string {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".aagag")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(Home(), "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		DataURL:     "http://localhost:8080",
		StoragePath: filepath.Join(Home(), "aagag.db"),
		Locale:      "ko",
		LogLevel:    "info",
		Regions:     catalog.Default(),
		Browse: BrowseConfig{
			PageSize:     pager.DefaultPageSize,
			LoadInterval: pager.DefaultInterval,
			FetchTimeout: 30 * time.Second,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			DataDir:        "public",
			AllowedOrigins: []string{"*"},
		},
	}
}

// Load reads config from path (ConfigPath when empty), or returns defaults.
// Environment overrides are applied either way.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// defaults
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			logging.Warn("Ignoring unreadable config", "path", path, "error", err)
			cfg = DefaultConfig()
		}
	}

	cfg.ApplyEnv()
	cfg.normalize()
	return cfg, nil
}

// Save writes config to path (ConfigPath when empty)
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyEnv fills in settings from environment variables
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvDataURL); v != "" {
		c.DataURL = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		c.Server.DataDir = v
	}
	if v := os.Getenv(EnvLocale); v != "" {
		c.Locale = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
}

// normalize replaces invalid values with defaults.
func (c *Config) normalize() {
	def := DefaultConfig()
	if len(c.Regions) == 0 {
		c.Regions = def.Regions
	}
	if c.Browse.PageSize <= 0 {
		c.Browse.PageSize = def.Browse.PageSize
	}
	if c.Browse.LoadInterval <= 0 {
		c.Browse.LoadInterval = def.Browse.LoadInterval
	}
	if c.Browse.FetchTimeout <= 0 {
		c.Browse.FetchTimeout = def.Browse.FetchTimeout
	}
	if c.DefaultRegion != "" {
		if _, ok := c.Regions.Lookup(c.DefaultRegion); !ok {
			logging.Warn("Default region not in catalog", "region", c.DefaultRegion)
			c.DefaultRegion = ""
		}
	}
	c.DataURL = strings.TrimRight(c.DataURL, "/")
}

// StartRegion returns the region to open with when nothing was saved.
func (c *Config) StartRegion() catalog.Region {
	if r, ok := c.Regions.Lookup(c.DefaultRegion); ok {
		return r
	}
	return c.Regions.First()
}

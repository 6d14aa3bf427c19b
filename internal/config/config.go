// ABOUTME: Configuration loader for the movierama client
// ABOUTME: Layers constants defaults, config.yaml, .env and MOVIERAMA_* environment variables

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/johnys190/movierama/internal/constants"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for all environment variables read by Load.
const EnvPrefix = "MOVIERAMA"

// Credential store backends
const (
	StoreFile  = "file"
	StoreRedis = "redis"
)

// Config tags name the full variable and are processed without a prefix, so
// envconfig never falls back to a bare API_URL or CONFIG_DIR.
type Config struct {
	// Backend
	APIURL         string        `envconfig:"MOVIERAMA_API_URL" yaml:"api_url"`
	AuthURL        string        `envconfig:"MOVIERAMA_AUTH_URL" yaml:"auth_url"`
	RequestTimeout time.Duration `envconfig:"MOVIERAMA_REQUEST_TIMEOUT" yaml:"request_timeout"`

	// UI
	PageSize      int           `envconfig:"MOVIERAMA_PAGE_SIZE" yaml:"page_size"`
	CacheTTL      time.Duration `envconfig:"MOVIERAMA_CACHE_TTL" yaml:"cache_ttl"`
	Notifications Notifications `envconfig:"MOVIERAMA_NOTIFY" yaml:"notifications"`

	// Credential store
	CredentialStore string `envconfig:"MOVIERAMA_CREDENTIAL_STORE" yaml:"credential_store"`
	RedisAddr       string `envconfig:"MOVIERAMA_REDIS_ADDR" yaml:"redis_addr"`
	RedisPassword   string `envconfig:"MOVIERAMA_REDIS_PASSWORD" yaml:"redis_password"`
	RedisDB         int    `envconfig:"MOVIERAMA_REDIS_DB" yaml:"redis_db"`

	// Local state
	ConfigDir string `envconfig:"MOVIERAMA_CONFIG_DIR" yaml:"-"`
	LogLevel  string `envconfig:"MOVIERAMA_LOG_LEVEL" yaml:"log_level"`
	LogFormat string `envconfig:"MOVIERAMA_LOG_FORMAT" yaml:"log_format"`
}

// Notifications holds the process-wide toast settings. Fields inherit the
// MOVIERAMA_NOTIFY_ prefix from the parent tag.
type Notifications struct {
	Placement string        `yaml:"placement"`
	Offset    int           `yaml:"offset"`
	Duration  time.Duration `yaml:"duration"`
}

// logEnv holds the logging variables that are also read unprefixed.
type logEnv struct {
	Level  string `envconfig:"LOG_LEVEL"`
	Format string `envconfig:"LOG_FORMAT"`
}

// Overrides carries command-line flag values; empty fields are ignored.
type Overrides struct {
	ConfigFile string
	APIURL     string
	AuthURL    string
}

// Default returns the configuration built from the constants registry.
func Default() *Config {
	return &Config{
		APIURL:         constants.APIBaseURL,
		AuthURL:        constants.APIAuthURL,
		RequestTimeout: 30 * time.Second,
		PageSize:       constants.MoviesListSize,
		CacheTTL:       30 * time.Second,
		Notifications: Notifications{
			Placement: "topRight",
			Offset:    1,
			Duration:  3 * time.Second,
		},
		CredentialStore: StoreFile,
		RedisAddr:       "127.0.0.1:6379",
		ConfigDir:       DefaultConfigDir(),
		LogLevel:        "info",
		LogFormat:       "console",
	}
}

// Load builds the configuration in precedence order: defaults, config file,
// .env, environment, then flag overrides.
func Load(o Overrides) (*Config, error) {
	cfg := Default()

	// CONFIG_DIR decides where config.yaml lives, so resolve it first
	if dir := os.Getenv(EnvPrefix + "_CONFIG_DIR"); dir != "" {
		cfg.ConfigDir = dir
	}

	path := o.ConfigFile
	explicit := path != ""
	if !explicit && cfg.ConfigDir != "" {
		path = filepath.Join(cfg.ConfigDir, "config.yaml")
	}
	if path != "" {
		if err := loadFile(path, cfg, explicit); err != nil {
			return nil, err
		}
	}

	// .env never overrides variables already present in the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	// Unprefixed LOG_LEVEL and LOG_FORMAT first so MOVIERAMA_LOG_* wins
	logs := logEnv{Level: cfg.LogLevel, Format: cfg.LogFormat}
	if err := envconfig.Process("", &logs); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}
	cfg.LogLevel, cfg.LogFormat = logs.Level, logs.Format

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}

	if o.APIURL != "" {
		cfg.APIURL = o.APIURL
	}
	if o.AuthURL != "" {
		cfg.AuthURL = o.AuthURL
	}

	cfg.APIURL = strings.TrimRight(ensureScheme(cfg.APIURL), "/")
	cfg.AuthURL = strings.TrimRight(ensureScheme(cfg.AuthURL), "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	for _, u := range []struct {
		name  string
		value string
	}{
		{"api url", c.APIURL},
		{"auth url", c.AuthURL},
	} {
		parsed, err := url.Parse(u.value)
		if err != nil || parsed.Host == "" {
			return fmt.Errorf("%s %q is not a valid URL", u.name, u.value)
		}
	}

	if c.PageSize < 1 || c.PageSize > 100 {
		return fmt.Errorf("page size must be between 1 and 100, got %d", c.PageSize)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.Notifications.Duration <= 0 {
		return fmt.Errorf("notification duration must be positive, got %s", c.Notifications.Duration)
	}

	switch c.Notifications.Placement {
	case "topRight", "topLeft", "bottomRight", "bottomLeft":
	default:
		return fmt.Errorf("invalid notification placement: %q", c.Notifications.Placement)
	}

	switch c.CredentialStore {
	case StoreFile:
		if c.ConfigDir == "" {
			return fmt.Errorf("config directory is required for the file credential store")
		}
	case StoreRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("redis address is required for the redis credential store")
		}
	default:
		return fmt.Errorf("invalid credential store: %q (must be file or redis)", c.CredentialStore)
	}

	return nil
}

// LogPath returns the TUI debug log location inside the config directory.
func (c *Config) LogPath() string {
	if c.ConfigDir == "" {
		return ""
	}
	return filepath.Join(c.ConfigDir, "debug.log")
}

// DefaultConfigDir returns the default config directory following XDG spec
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "movierama")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "movierama")
}

// loadFile overlays YAML settings onto cfg. A missing file is only an error
// when it was named explicitly.
func loadFile(path string, cfg *Config, explicit bool) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// ensureScheme adds https:// prefix if the URL has no scheme
func ensureScheme(u string) string {
	if u == "" {
		return u
	}
	if !strings.Contains(u, "://") {
		return "https://" + u
	}
	return u
}

// Package config loads and saves maple.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/maple-budget/maple/internal/model"
)

// FileName is the config file created by `maple init`.
const FileName = "maple.yaml"

// Config represents the top-level maple.yaml configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Coach    CoachConfig    `yaml:"coach"`
	Logging  LoggingConfig  `yaml:"logging"`
	Data     DataConfig     `yaml:"data"`

	dir string // directory of the loaded file; relative paths resolve against it
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr                string `yaml:"addr"`
	ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
	// UserHeader carries the authenticated user's email, set by the fronting proxy.
	UserHeader string `yaml:"user_header"`
}

// DatabaseConfig locates the sqlite database.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// DefaultsConfig holds values used when a request leaves them out.
type DefaultsConfig struct {
	Province string `yaml:"province"`
	TaxYear  int    `yaml:"tax_year"`
}

// CoachConfig configures the LLM behind the financial coach.
type CoachConfig struct {
	Model           string  `yaml:"model"`
	APIKeyEnv       string  `yaml:"api_key_env"`
	Temperature     float32 `yaml:"temperature"`
	MaxOutputTokens int32   `yaml:"max_output_tokens"`
	FollowUpDays    int     `yaml:"follow_up_days"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// DataConfig locates files kept next to the database.
type DataConfig struct {
	Dir         string `yaml:"dir"` // holds import/ and import/processed/
	ActivityLog string `yaml:"activity_log"`
	Categories  string `yaml:"categories"`
}

// Load reads a maple.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.dir = filepath.Dir(path)
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new installation.
func Default(province model.Province) *Config {
	return &Config{
		Server: ServerConfig{
			Addr:                ":8080",
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 90,
			UserHeader:          "X-User-Email",
		},
		Database: DatabaseConfig{Path: "maple.db"},
		Defaults: DefaultsConfig{
			Province: string(province),
			TaxYear:  2024,
		},
		Coach: CoachConfig{
			Model:           "gemini-2.5-flash",
			APIKeyEnv:       "GEMINI_API_KEY",
			Temperature:     0.7,
			MaxOutputTokens: 3000,
			FollowUpDays:    30,
		},
		Logging: LoggingConfig{Level: "info"},
		Data: DataConfig{
			Dir:         ".",
			ActivityLog: "activity.csv",
			Categories:  "categories.csv",
		},
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs model.ValidationErrors
	add := func(field, msg string) {
		errs = append(errs, model.FieldError{Field: field, Message: msg})
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		add("server.addr", "server address is required")
	}
	if strings.TrimSpace(c.Server.UserHeader) == "" {
		add("server.user_header", "user header is required")
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		add("database.path", "database path is required")
	}
	if _, err := model.ParseProvince(c.Defaults.Province); err != nil {
		add("defaults.province", fmt.Sprintf("unknown province %q", c.Defaults.Province))
	}
	if c.Logging.Level != "" {
		if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
			add("logging.level", fmt.Sprintf("unknown log level %q", c.Logging.Level))
		}
	}
	if c.Coach.Temperature < 0 || c.Coach.Temperature > 2 {
		add("coach.temperature", "temperature must be between 0 and 2")
	}
	return errs.Err()
}

// Province returns the default province. Call Validate first.
func (c *Config) Province() model.Province {
	p, _ := model.ParseProvince(c.Defaults.Province)
	return p
}

// DatabasePath returns the database path, resolved against the config directory.
func (c *Config) DatabasePath() string { return c.resolve(c.Database.Path) }

// DataDir returns the data directory, resolved against the config directory.
func (c *Config) DataDir() string { return c.resolve(c.Data.Dir) }

// ActivityLogPath returns the activity log path.
func (c *Config) ActivityLogPath() string { return c.resolve(c.Data.ActivityLog) }

// CategoriesPath returns the category catalogue path.
func (c *Config) CategoriesPath() string { return c.resolve(c.Data.Categories) }

// ReadTimeout returns the server read timeout.
func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.Server.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the server write timeout. It bounds coach calls too.
func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.Server.WriteTimeoutSeconds) * time.Second
}

// CoachAPIKey reads the coach API key from the configured environment variable.
func (c *Config) CoachAPIKey() string {
	if c.Coach.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.Coach.APIKeyEnv)
}

func (c *Config) resolve(p string) string {
	if p == "" || p == ":memory:" || filepath.IsAbs(p) || c.dir == "" {
		return p
	}
	return filepath.Join(c.dir, p)
}

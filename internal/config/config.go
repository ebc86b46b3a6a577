// Package config loads service configuration from an optional YAML file
// overlaid with environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	// Load .env file into environments.
	_ "github.com/joho/godotenv/autoload"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration object.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	AI       AIConfig       `yaml:"ai"`
	Storage  StorageConfig  `yaml:"storage"`
	Redis    RedisConfig    `yaml:"redis"`
	Admin    AdminConfig    `yaml:"admin"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Port               int      `yaml:"port"`
	AllowOrigins       []string `yaml:"allow_origins"`
	RateLimitPerSecond uint     `yaml:"rate_limit_per_second"`
	LogLevel           string   `yaml:"log_level"`
}

// DatabaseConfig holds Postgres connection settings.
type DatabaseConfig struct {
	Host                string `yaml:"host"`
	Port                string `yaml:"port"`
	User                string `yaml:"user"`
	Password            string `yaml:"password"`
	Name                string `yaml:"name"`
	ConnectionString    string `yaml:"connection_string"`
	UseConnectionString bool   `yaml:"use_connection_string"`
}

// AuthConfig holds token signing and Google OAuth settings.
type AuthConfig struct {
	SecretKey          string        `yaml:"secret_key"`
	TokenTTL           time.Duration `yaml:"token_ttl"`
	GoogleClientID     string        `yaml:"google_client_id"`
	GoogleClientSecret string        `yaml:"google_client_secret"`
	GoogleRedirectURL  string        `yaml:"google_redirect_url"`
}

// AIConfig configures the match advisory client.
type AIConfig struct {
	APIKey            string        `yaml:"api_key"`
	BaseURL           string        `yaml:"base_url"`
	Model             string        `yaml:"model"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	UseMock           bool          `yaml:"use_mock"`
}

// StorageConfig selects where resume files live. An empty bucket keeps file
// bytes in the database.
type StorageConfig struct {
	GCSBucket string `yaml:"gcs_bucket"`
}

// RedisConfig enables the shared token blacklist and rate limit store.
type RedisConfig struct {
	URL string `yaml:"url"`
}

// AdminConfig seeds the first admin account on startup.
type AdminConfig struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// Load reads path (missing file is fine), applies environment overrides and
// defaults, and validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			slog.Info("config file not found, using environment only", slog.String("path", path))
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Server.LogLevel, "LOG_LEVEL")
	if v := os.Getenv("ALLOW_ORIGIN"); v != "" {
		c.Server.AllowOrigins = splitComma(v)
	}
	if err := setInt(&c.Server.Port, "PORT"); err != nil {
		return err
	}
	if v := os.Getenv("RATE_LIMIT_REQUESTS_PER_SECOND"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_REQUESTS_PER_SECOND: %w", err)
		}
		c.Server.RateLimitPerSecond = uint(n)
	}

	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.Port, "DB_PORT")
	setString(&c.Database.User, "DB_USERNAME")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.Name, "DB_DATABASE")
	setString(&c.Database.ConnectionString, "DB_CONNECTION_STR")
	if err := setBool(&c.Database.UseConnectionString, "USE_CONNECTION_STR"); err != nil {
		return err
	}

	setString(&c.Auth.SecretKey, "SECRET_KEY")
	setString(&c.Auth.GoogleClientID, "GOOGLE_AUTH_CLIENT")
	setString(&c.Auth.GoogleClientSecret, "GOOGLE_AUTH_SECRET")
	setString(&c.Auth.GoogleRedirectURL, "OAUTH_REDIRECT_URL")
	if err := setDuration(&c.Auth.TokenTTL, "TOKEN_TTL"); err != nil {
		return err
	}

	setString(&c.AI.APIKey, "OPENAI_API_KEY")
	setString(&c.AI.BaseURL, "OPENAI_BASE_URL")
	setString(&c.AI.Model, "OPENAI_MODEL")
	if err := setDuration(&c.AI.Timeout, "AI_TIMEOUT"); err != nil {
		return err
	}
	if err := setBool(&c.AI.UseMock, "USE_MOCK_AI"); err != nil {
		return err
	}

	setString(&c.Storage.GCSBucket, "GCS_BUCKET")
	setString(&c.Redis.URL, "REDIS_URL")
	setString(&c.Admin.Email, "ADMIN_EMAIL")
	setString(&c.Admin.Password, "ADMIN_PASSWORD")
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.RateLimitPerSecond == 0 {
		c.Server.RateLimitPerSecond = 5
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = 7 * 24 * time.Hour
	}
	if c.AI.BaseURL == "" {
		c.AI.BaseURL = "https://api.openai.com/v1"
	}
	if c.AI.Model == "" {
		c.AI.Model = "gpt-4o-mini"
	}
	if c.AI.Timeout == 0 {
		c.AI.Timeout = 30 * time.Second
	}
	if c.AI.RequestsPerSecond == 0 {
		c.AI.RequestsPerSecond = 2
	}
	if c.AI.APIKey == "" {
		c.AI.UseMock = true
	}
}

// Validate checks required settings.
func (c *Config) Validate() error {
	if c.Auth.SecretKey == "" {
		return errors.New("SECRET_KEY is required")
	}
	if c.Database.UseConnectionString {
		if c.Database.ConnectionString == "" {
			return errors.New("DB_CONNECTION_STR is empty")
		}
		return nil
	}
	if c.Database.Host == "" || c.Database.Port == "" || c.Database.User == "" || c.Database.Name == "" {
		return errors.New("database configuration is incomplete")
	}
	return nil
}

// ParseLevel converts the configured log level into a slog level.
func (s ServerConfig) ParseLevel() slog.Level {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s environment variable is invalid: %w", key, err)
	}
	*dst = b
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

func splitComma(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

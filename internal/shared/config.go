package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/crypto/bcrypt"
)

//go:embed config.example.toml
var exampleConf []byte

// DevSecretKey is the session secret shipped in the example configuration.
const DevSecretKey = "dev"

// SecretKeyEnv overrides [SessionConfig.SecretKey] when set.
const SecretKeyEnv = "WATCHLIST_SECRET_KEY"

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
	Session  SessionConfig  `toml:"session"`
	Auth     AuthConfig     `toml:"auth"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	ShutdownTimeout int    `toml:"shutdown_timeout"`
}

// SessionConfig contains session cookie and signing settings.
type SessionConfig struct {
	SecretKey  string `toml:"secret_key"`
	MaxAge     int    `toml:"max_age"`
	CookieName string `toml:"cookie_name"`
	Secure     bool   `toml:"secure"`
}

// AuthConfig contains password hashing and login throttling settings.
type AuthConfig struct {
	BcryptCost int     `toml:"bcrypt_cost"`
	LoginRate  float64 `toml:"login_rate"`
	LoginBurst int     `toml:"login_burst"`
}

// Addr returns the host:port listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Timeout returns the graceful shutdown timeout as a [time.Duration].
func (c ServerConfig) Timeout() time.Duration {
	return time.Duration(c.ShutdownTimeout) * time.Second
}

// TTL returns the session lifetime as a [time.Duration].
func (c SessionConfig) TTL() time.Duration {
	return time.Duration(c.MaxAge) * time.Second
}

// UsesDevSecret reports whether the session secret is still the shipped default.
func (c SessionConfig) UsesDevSecret() bool {
	return c.SecretKey == DevSecretKey
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Values missing from the file keep the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.applyEnv()
	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	config.applyEnv()
	return &config
}

func (c *Config) applyEnv() {
	if secret := os.Getenv(SecretKeyEnv); secret != "" {
		c.Session.SecretKey = secret
	}
}

// Validate checks settings the application cannot run without.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("%w: database.path is required", ErrInvalidConfig)
	}
	if c.Session.SecretKey == "" {
		return fmt.Errorf("%w: session.secret_key is required", ErrInvalidConfig)
	}
	if c.Session.MaxAge <= 0 {
		return fmt.Errorf("%w: session.max_age must be positive", ErrInvalidConfig)
	}
	if c.Session.CookieName == "" {
		return fmt.Errorf("%w: session.cookie_name is required", ErrInvalidConfig)
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: auth.bcrypt_cost must be between %d and %d", ErrInvalidConfig, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.Auth.LoginRate <= 0 || c.Auth.LoginBurst <= 0 {
		return fmt.Errorf("%w: auth.login_rate and auth.login_burst must be positive", ErrInvalidConfig)
	}
	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Package config provides configuration loading for the TrainTrack API.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the main application configuration struct.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// DatabaseConfig holds the catalog database settings. URL takes precedence
// over the individual fields when set.
type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string.
func (d DatabaseConfig) GetDSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

// AuthConfig holds session token settings.
type AuthConfig struct {
	JWTSecret       string `mapstructure:"jwt_secret"`
	ExpirationHours int    `mapstructure:"expiration_hours"`
}

// EngineConfig holds scoring policy settings.
type EngineConfig struct {
	// IncludeNoMatch controls whether No Match positions are returned as an
	// informational set when nothing better exists.
	IncludeNoMatch bool `mapstructure:"include_no_match"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from the given file (optional) and from
// TRAINTRACK_* environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("database.url", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.database", "traintrack")
	v.SetDefault("database.user", "traintrack")
	v.SetDefault("database.sslmode", "disable")
	// Registered with an empty default so the env override is visible to
	// Unmarshal.
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.expiration_hours", 24)
	v.SetDefault("engine.include_no_match", true)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetEnvPrefix("TRAINTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: server.port must be between 1 and 65535")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("config error: auth.jwt_secret is required")
	}
	if c.Auth.ExpirationHours <= 0 {
		return fmt.Errorf("config error: auth.expiration_hours must be positive")
	}
	return nil
}

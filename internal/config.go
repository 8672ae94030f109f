package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/aerologix/aerologix/internal/models"
)

// Config represents the application configuration.
type Config struct {
	App    ApplicationConfig `yaml:"app"`
	Media  MediaConfig       `yaml:"media"`
	SQLite SQLiteConfig      `yaml:"sqlite"`
	Auth   AuthConfig        `yaml:"auth"`
	Plans  PlansConfig       `yaml:"plans"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Media.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	return c.Plans.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// MediaConfig holds the path to the aircraft media directory.
type MediaConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the media configuration.
func (c *MediaConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds session configuration. Bearer tokens expire after
// SessionTTL; the purge loop sweeps expired sessions every PurgeInterval.
type AuthConfig struct {
	SessionTTL    time.Duration `yaml:"session_ttl"`
	PurgeInterval time.Duration `yaml:"purge_interval"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.SessionTTL <= 0 {
		return fmt.Errorf("auth: session_ttl must be positive")
	}
	if c.PurgeInterval <= 0 {
		return fmt.Errorf("auth: purge_interval must be positive")
	}
	return nil
}

// PlansConfig maps plan names to their aircraft limits. -1 means unlimited.
type PlansConfig struct {
	Free      int `yaml:"free"`
	Pro       int `yaml:"pro"`
	Unlimited int `yaml:"unlimited"`
}

// Validate validates the plan limits.
func (c *PlansConfig) Validate() error {
	for name, limit := range c.Limits() {
		if limit == 0 || limit < -1 {
			return fmt.Errorf("plans: %s limit must be positive or -1", name)
		}
	}
	return nil
}

// Limits returns the plan limit map consumed by the service layer.
func (c *PlansConfig) Limits() map[string]int {
	return map[string]int{
		models.PlanFree:      c.Free,
		models.PlanPro:       c.Pro,
		models.PlanUnlimited: c.Unlimited,
	}
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Media: MediaConfig{
			Path: "./media",
		},
		SQLite: SQLiteConfig{
			Path: "./aerologix.db",
		},
		Auth: AuthConfig{
			SessionTTL:    30 * 24 * time.Hour,
			PurgeInterval: time.Hour,
		},
		Plans: PlansConfig{
			Free:      1,
			Pro:       5,
			Unlimited: -1,
		},
	}
}

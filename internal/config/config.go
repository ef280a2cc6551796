package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the scheduler service.
// Environment variables are automatically parsed from the SCHEDULER_ prefix.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Token store: sqlite or postgres
	DBDriver    string `envconfig:"DB_DRIVER" default:"sqlite"`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"./data/scheduler.db"`

	// Calendar provider: google or ics
	CalendarProvider string `envconfig:"CALENDAR_PROVIDER" default:"google"`

	// Reference timezone used when a user has no stored zone.
	DefaultTimeZone string `envconfig:"DEFAULT_TIMEZONE" default:"America/New_York"`

	// Availability policy
	BusinessStartHour int `envconfig:"BUSINESS_START_HOUR" default:"9"`
	BusinessEndHour   int `envconfig:"BUSINESS_END_HOUR" default:"19"`
	BufferMinutes     int `envconfig:"BUFFER_MINUTES" default:"30"`
	HorizonDays       int `envconfig:"HORIZON_DAYS" default:"7"`
	MaxSuggestions    int `envconfig:"MAX_SUGGESTIONS" default:"3"`

	// Service duration table in minutes; unknown service types fall back to
	// the "default" entry.
	ServiceDurations map[string]int `envconfig:"SERVICE_DURATIONS" default:"haircut:60,nails:45,manicure:30,pedicure:45,massage:90,facial:60,waxing:30,makeup:45,spa:120,default:60"`

	// Importance scoring capability; empty provider disables it and the
	// keyword classifier is used instead.
	ScorerProvider  string `envconfig:"SCORER_PROVIDER" default:""`
	ScorerModel     string `envconfig:"SCORER_MODEL" default:"llama3"`
	OllamaURL       string `envconfig:"OLLAMA_URL" default:"http://localhost:11434"`
	MaxScoredEvents int    `envconfig:"MAX_SCORED_EVENTS" default:"10"`

	// Health checker cadence
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"5"`
}

// ResolveDefaults validates driver/provider selections and the policy values.
func (c *Config) ResolveDefaults() error {
	allowedDB := map[string]bool{"sqlite": true, "postgres": true}
	if !allowedDB[c.DBDriver] {
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	if c.DBDriver == "postgres" && c.PostgresDSN == "" {
		return fmt.Errorf("POSTGRES_DSN required when DB_DRIVER=postgres")
	}

	allowedProvider := map[string]bool{"google": true, "ics": true}
	if !allowedProvider[c.CalendarProvider] {
		return fmt.Errorf("unsupported CALENDAR_PROVIDER: %s", c.CalendarProvider)
	}

	if c.ScorerProvider != "" && c.ScorerProvider != "ollama" {
		return fmt.Errorf("unsupported SCORER_PROVIDER: %s", c.ScorerProvider)
	}

	if c.BusinessStartHour < 0 || c.BusinessEndHour > 24 || c.BusinessStartHour >= c.BusinessEndHour {
		return fmt.Errorf("invalid business hours: %d-%d", c.BusinessStartHour, c.BusinessEndHour)
	}
	if c.BufferMinutes < 0 {
		return fmt.Errorf("invalid BUFFER_MINUTES: %d", c.BufferMinutes)
	}
	if _, ok := c.ServiceDurations["default"]; !ok {
		return fmt.Errorf("SERVICE_DURATIONS must include a default entry")
	}

	if _, err := time.LoadLocation(c.DefaultTimeZone); err != nil {
		return fmt.Errorf("invalid DEFAULT_TIMEZONE %q: %w", c.DefaultTimeZone, err)
	}
	return nil
}

// New creates a new Config by parsing environment variables.
// Environment variables should be prefixed with SCHEDULER_
// Example: SCHEDULER_HTTP_PORT, SCHEDULER_DEFAULT_TIMEZONE
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("SCHEDULER", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Int("port", cfg.HTTPPort).
		Str("db_driver", cfg.DBDriver).
		Str("calendar_provider", cfg.CalendarProvider).
		Str("timezone", cfg.DefaultTimeZone).
		Int("buffer_minutes", cfg.BufferMinutes).
		Str("scorer_provider", cfg.ScorerProvider).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing.
func NewForTesting() *Config {
	return &Config{
		Environment:      EnvTesting,
		HTTPPort:         8080,
		DBDriver:         "sqlite",
		SQLitePath:       ":memory:",
		CalendarProvider: "google",
		DefaultTimeZone:  "America/New_York",

		BusinessStartHour: 9,
		BusinessEndHour:   19,
		BufferMinutes:     30,
		HorizonDays:       7,
		MaxSuggestions:    3,

		ServiceDurations: map[string]int{
			"haircut": 60, "nails": 45, "manicure": 30, "pedicure": 45,
			"massage": 90, "facial": 60, "waxing": 30, "makeup": 45,
			"spa": 120, "default": 60,
		},

		ScorerModel:     "llama3",
		OllamaURL:       "http://localhost:11434",
		MaxScoredEvents: 10,

		HealthIntervalSeconds:     30,
		HealthProbeTimeoutSeconds: 5,
	}
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool { return c.Environment == EnvTesting }

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool { return c.Environment == EnvProduction }

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string { return fmt.Sprintf(":%d", c.HTTPPort) }

// Location resolves the configured default timezone. ResolveDefaults has
// already validated the name.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.DefaultTimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

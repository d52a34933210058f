package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"golang.org/x/text/language"
)

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `json:"server"`
	Discovery DiscoveryConfig `json:"discovery"`
	Session   SessionConfig   `json:"session"`
	Telemetry TelemetryConfig `json:"telemetry"`
}

// ServerConfig for HTTP server settings
type ServerConfig struct {
	Port         string `json:"port" env:"BILLETTLYST_SERVER_PORT"`
	ReadTimeout  int    `json:"read_timeout_seconds" env:"BILLETTLYST_SERVER_READ_TIMEOUT"`
	WriteTimeout int    `json:"write_timeout_seconds" env:"BILLETTLYST_SERVER_WRITE_TIMEOUT"`
}

// DiscoveryConfig for the Ticketmaster Discovery API
type DiscoveryConfig struct {
	APIKey                string   `json:"api_key" env:"BILLETTLYST_DISCOVERY_API_KEY"`
	BaseURL               string   `json:"base_url" env:"BILLETTLYST_DISCOVERY_BASE_URL"`
	Locale                string   `json:"locale" env:"BILLETTLYST_DISCOVERY_LOCALE"`
	Timeout               int      `json:"timeout_seconds" env:"BILLETTLYST_DISCOVERY_TIMEOUT"`
	DailyLimit            int      `json:"daily_limit" env:"BILLETTLYST_DISCOVERY_DAILY_LIMIT"`
	MaxConcurrentRequests int      `json:"max_concurrent_requests" env:"BILLETTLYST_DISCOVERY_MAX_CONCURRENT"`
	FestivalNames         []string `json:"festival_names" env:"BILLETTLYST_DISCOVERY_FESTIVALS" envSeparator:";"`
}

// SessionConfig for per-visitor state
type SessionConfig struct {
	CookieName      string   `json:"cookie_name" env:"BILLETTLYST_SESSION_COOKIE"`
	WishlistBackend string   `json:"wishlist_backend" env:"BILLETTLYST_SESSION_WISHLIST_BACKEND"`
	DefaultCity     string   `json:"default_city" env:"BILLETTLYST_SESSION_DEFAULT_CITY"`
	Cities          []string `json:"cities" env:"BILLETTLYST_SESSION_CITIES" envSeparator:","`
	IdleMinutes     int      `json:"idle_minutes" env:"BILLETTLYST_SESSION_IDLE_MINUTES"`
}

// TelemetryConfig for OpenTelemetry tracing
type TelemetryConfig struct {
	Enabled     bool   `json:"enabled" env:"BILLETTLYST_OTEL_ENABLED"`
	Endpoint    string `json:"endpoint" env:"BILLETTLYST_OTEL_ENDPOINT"`
	ServiceName string `json:"service_name" env:"BILLETTLYST_OTEL_SERVICE_NAME"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values using the pattern BILLETTLYST_SECTION_KEY.
func Load(configPath string) (*Config, error) {
	config := &Config{}

	// Load from file if it exists
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err == nil {
			if err := json.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	applyDefaults(config)

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return config, nil
}

func applyDefaults(config *Config) {
	if config.Server.Port == "" {
		config.Server.Port = "8080"
	}
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = 30
	}
	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = 30
	}
	if config.Discovery.BaseURL == "" {
		config.Discovery.BaseURL = "https://app.ticketmaster.com/discovery/v2"
	}
	if config.Discovery.Locale == "" {
		config.Discovery.Locale = "no"
	}
	if config.Discovery.Timeout == 0 {
		config.Discovery.Timeout = 10
	}
	if config.Discovery.DailyLimit == 0 {
		config.Discovery.DailyLimit = 5000
	}
	if config.Discovery.MaxConcurrentRequests == 0 {
		config.Discovery.MaxConcurrentRequests = 8
	}
	if config.Session.CookieName == "" {
		config.Session.CookieName = "billettlyst_session"
	}
	if config.Session.WishlistBackend == "" {
		config.Session.WishlistBackend = BackendMemory
	}
	if config.Session.DefaultCity == "" {
		config.Session.DefaultCity = "Oslo"
	}
	if len(config.Session.Cities) == 0 {
		config.Session.Cities = []string{"Oslo", "London", "Berlin", "Paris", "New York"}
	}
	if config.Session.IdleMinutes == 0 {
		config.Session.IdleMinutes = 120
	}
	if config.Telemetry.ServiceName == "" {
		config.Telemetry.ServiceName = "billettlyst"
	}
}

// Validate checks if required configurations are present
func (c *Config) Validate() error {
	var problems []string

	if c.Discovery.APIKey == "" {
		problems = append(problems, "discovery.api_key is required")
	}
	if _, err := language.Parse(c.Discovery.Locale); err != nil {
		problems = append(problems, fmt.Sprintf("discovery.locale %q is not a valid language tag", c.Discovery.Locale))
	}
	switch c.Session.WishlistBackend {
	case BackendMemory, BackendSQLite:
	default:
		problems = append(problems, fmt.Sprintf("session.wishlist_backend %q must be %q or %q",
			c.Session.WishlistBackend, BackendMemory, BackendSQLite))
	}
	if c.Telemetry.Enabled && c.Telemetry.Endpoint == "" {
		problems = append(problems, "telemetry.endpoint is required when telemetry is enabled")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, ", "))
	}

	return nil
}

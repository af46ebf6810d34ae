package datasource

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrMissingAPIKey is returned by Validate when no API key is configured
var ErrMissingAPIKey = errors.New("OpenWeatherMap API key is required")

// Config represents the application configuration
type Config struct {
	OpenWeatherMap struct {
		APIKey         string `json:"apiKey"`
		BaseURL        string `json:"baseURL"`
		Units          string `json:"units"`    // metric, imperial or standard
		Language       string `json:"language"` // language for condition descriptions
		TimeoutSeconds int    `json:"timeoutSeconds"`
	} `json:"openWeatherMap"`

	RateLimit struct {
		Enabled bool    `json:"enabled"`
		RPS     float64 `json:"rps"`
		Burst   int     `json:"burst"`
	} `json:"rateLimit"`

	// Favorites store: a SQLite file path or a postgres:// DSN
	Store string `json:"store"`

	// Locale for weekday names, e.g. "fr-FR". Empty means use the environment.
	Locale string `json:"locale"`

	Location struct {
		Enabled bool     `json:"enabled"`
		Lat     *float64 `json:"lat"`
		Lon     *float64 `json:"lon"`
	} `json:"location"`
}

// LoadConfig loads configuration from a JSON file on top of the defaults
func LoadConfig(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := DefaultConfig()
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filename, err)
	}

	return config, nil
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	config := &Config{}
	config.OpenWeatherMap.BaseURL = DefaultBaseURL
	config.OpenWeatherMap.Units = "metric"
	config.OpenWeatherMap.TimeoutSeconds = 10

	// OpenWeatherMap free tier allows 60 calls/minute = 1 call per second
	config.RateLimit.Enabled = true
	config.RateLimit.RPS = 1.0
	config.RateLimit.Burst = 5

	config.Store = defaultStorePath()
	return config
}

func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "weatherly.db"
	}
	return filepath.Join(dir, "weatherly", "favorites.db")
}

// ApplyEnv overrides configuration values from environment variables
func (c *Config) ApplyEnv() {
	if v := os.Getenv("OPENWEATHERMAP_API_KEY"); v != "" {
		c.OpenWeatherMap.APIKey = v
	}
	if v := os.Getenv("WEATHERLY_STORE"); v != "" {
		c.Store = v
	}
	if v := os.Getenv("WEATHERLY_LOCALE"); v != "" {
		c.Locale = v
	}
}

// Timeout returns the HTTP timeout for API calls
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.OpenWeatherMap.TimeoutSeconds) * time.Second
}

// Validate checks the configuration for values the client cannot run with
func (c *Config) Validate() error {
	if strings.TrimSpace(c.OpenWeatherMap.APIKey) == "" {
		return ErrMissingAPIKey
	}
	switch c.OpenWeatherMap.Units {
	case "metric", "imperial", "standard":
	default:
		return fmt.Errorf("unknown unit system %q", c.OpenWeatherMap.Units)
	}
	if c.OpenWeatherMap.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst < 1) {
		return fmt.Errorf("rate limit needs rps > 0 and burst >= 1, got %v/%d", c.RateLimit.RPS, c.RateLimit.Burst)
	}
	if c.Store == "" {
		return fmt.Errorf("favorites store is not configured")
	}
	return nil
}

// NewClient builds the weather client described by the configuration
func (c *Config) NewClient() WeatherClient {
	client := NewOpenWeatherMapClient(c.OpenWeatherMap.APIKey,
		WithBaseURL(c.OpenWeatherMap.BaseURL),
		WithUnits(c.OpenWeatherMap.Units),
		WithLanguage(c.OpenWeatherMap.Language),
		WithTimeout(c.Timeout()),
	)
	if !c.RateLimit.Enabled {
		return client
	}
	return NewRateLimitedClient(client, c.RateLimit.RPS, c.RateLimit.Burst)
}

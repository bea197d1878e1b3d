// Package config loads runtime settings from flags, CRYSTAL_* environment
// variables and defaults, plus the required API secrets from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"
	_ "time/tzdata" // zone data for hosts without /usr/share/zoneinfo

	"github.com/spf13/viper"

	"github.com/varsilias/crystal/internal/llm"
	"github.com/varsilias/crystal/internal/search"
	"github.com/varsilias/crystal/internal/weather"
)

// Setting keys. Flags use the same names.
const (
	KeyAddr           = "addr"
	KeyLogLevel       = "log-level"
	KeyLogJSON        = "log-json"
	KeySecrets        = "secrets"
	KeyTimezone       = "timezone"
	KeyModel          = "model"
	KeyLLMBaseURL     = "llm-base-url"
	KeyWeatherBaseURL = "weather-base-url"
	KeySearchBaseURL  = "search-base-url"
	KeyHTTPTimeout    = "http-timeout"
	KeySessionTTL     = "session-ttl"
	KeySessionSweep   = "session-sweep"
)

type Config struct {
	Addr     string
	LogLevel string
	LogJSON  bool

	SecretsPath string
	Location    *time.Location

	Model          string
	LLMBaseURL     string
	WeatherBaseURL string
	SearchBaseURL  string
	HTTPTimeout    time.Duration

	SessionTTL   time.Duration
	SessionSweep string

	Secrets Secrets
}

// New returns a viper instance with defaults and environment lookup set up.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix("CRYSTAL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyAddr, "8080")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogJSON, false)
	v.SetDefault(KeySecrets, "secrets.toml")
	v.SetDefault(KeyTimezone, "America/Sao_Paulo")
	v.SetDefault(KeyModel, llm.DefaultModel)
	v.SetDefault(KeyLLMBaseURL, llm.DefaultBaseURL)
	v.SetDefault(KeyWeatherBaseURL, weather.DefaultBaseURL)
	v.SetDefault(KeySearchBaseURL, search.DefaultBaseURL)
	v.SetDefault(KeyHTTPTimeout, 15*time.Second)
	v.SetDefault(KeySessionTTL, 2*time.Hour)
	v.SetDefault(KeySessionSweep, "@every 10m")
}

// Load resolves settings from v and reads the secrets file. Any error is
// fatal at startup.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Addr:           v.GetString(KeyAddr),
		LogLevel:       v.GetString(KeyLogLevel),
		LogJSON:        v.GetBool(KeyLogJSON),
		SecretsPath:    v.GetString(KeySecrets),
		Model:          v.GetString(KeyModel),
		LLMBaseURL:     v.GetString(KeyLLMBaseURL),
		WeatherBaseURL: v.GetString(KeyWeatherBaseURL),
		SearchBaseURL:  v.GetString(KeySearchBaseURL),
		HTTPTimeout:    v.GetDuration(KeyHTTPTimeout),
		SessionTTL:     v.GetDuration(KeySessionTTL),
		SessionSweep:   v.GetString(KeySessionSweep),
	}
	if cfg.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("%s must be positive, got %q", KeyHTTPTimeout, v.GetString(KeyHTTPTimeout))
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("%s must be positive, got %q", KeySessionTTL, v.GetString(KeySessionTTL))
	}

	loc, err := time.LoadLocation(v.GetString(KeyTimezone))
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}
	cfg.Location = loc

	if cfg.Secrets, err = LoadSecrets(cfg.SecretsPath); err != nil {
		return nil, err
	}
	return cfg, nil
}

var ErrSecretsNotFound = errors.New("secrets file not found")

// MissingKeyError names a secret that is absent or blank.
type MissingKeyError struct{ Key string }

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("secret %s is missing", e.Key)
}

type Secrets struct {
	OpenWeatherAPIKey  string
	GoogleSearchAPIKey string
	GoogleCSEID        string
	GeminiAPIKey       string
}

// LoadSecrets reads the four API secrets from a TOML file. All of them are
// required.
func LoadSecrets(path string) (Secrets, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Secrets{}, fmt.Errorf("%w: %s", ErrSecretsNotFound, path)
		}
		return Secrets{}, fmt.Errorf("read secrets %s: %w", path, err)
	}

	var s Secrets
	for _, f := range []struct {
		key string
		dst *string
	}{
		{"OPENWEATHER_API_KEY", &s.OpenWeatherAPIKey},
		{"GOOGLE_SEARCH_API_KEY", &s.GoogleSearchAPIKey},
		{"GOOGLE_CSE_ID", &s.GoogleCSEID},
		{"GEMINI_API_KEY", &s.GeminiAPIKey},
	} {
		*f.dst = strings.TrimSpace(v.GetString(f.key))
		if *f.dst == "" {
			return Secrets{}, &MissingKeyError{Key: f.key}
		}
	}
	return s, nil
}

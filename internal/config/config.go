package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingCredential is returned when the language-model API key is not configured.
var ErrMissingCredential = errors.New("llm api key is required (set TRIP_LLM_API_KEY)")

type Config struct {
	Version     string          `mapstructure:"version"`
	Environment string          `mapstructure:"environment"`
	Server      ServerConfig    `mapstructure:"server"`
	LLM         LLMConfig       `mapstructure:"llm"`
	Weather     WeatherConfig   `mapstructure:"weather"`
	Geocode     GeocodeConfig   `mapstructure:"geocode"`
	Cache       CacheConfig     `mapstructure:"cache"`
	Planner     PlannerConfig   `mapstructure:"planner"`
	Export      ExportConfig    `mapstructure:"export"`
	Logging     LoggingConfig   `mapstructure:"logging"`
	Telemetry   TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port         int      `mapstructure:"port"`
	Host         string   `mapstructure:"host"`
	ReadTimeout  int      `mapstructure:"read_timeout"`
	WriteTimeout int      `mapstructure:"write_timeout"`
	IdleTimeout  int      `mapstructure:"idle_timeout"`
	CORSOrigins  []string `mapstructure:"cors_origins"`
}

// LLMConfig selects and configures the text generation provider. Empty
// BaseURL and Model fall back to the provider's defaults.
type LLMConfig struct {
	Provider    string  `mapstructure:"provider"`
	BaseURL     string  `mapstructure:"base_url"`
	Model       string  `mapstructure:"model"`
	APIKey      string  `mapstructure:"api_key"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
	Timeout     int     `mapstructure:"timeout"`
}

// WeatherConfig and GeocodeConfig leave BaseURL empty to use the
// provider's public endpoint.
type WeatherConfig struct {
	Type    string `mapstructure:"type"`
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"`
}

type GeocodeConfig struct {
	Type      string `mapstructure:"type"`
	BaseURL   string `mapstructure:"base_url"`
	UserAgent string `mapstructure:"user_agent"`
	APIKey    string `mapstructure:"api_key"`
	Timeout   int    `mapstructure:"timeout"`
}

type CacheConfig struct {
	Enabled bool        `mapstructure:"enabled"`
	Backend string      `mapstructure:"backend"`
	TTL     int         `mapstructure:"ttl"`
	Redis   RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type PlannerConfig struct {
	Currency    string `mapstructure:"currency"`
	TipsEnabled bool   `mapstructure:"tips_enabled"`
}

type ExportConfig struct {
	Title    string  `mapstructure:"title"`
	FontSize float64 `mapstructure:"font_size"`
	Compress bool    `mapstructure:"compress"`
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type TelemetryConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Version:     "1.0.0",
		Environment: "development",
		Server: ServerConfig{
			Port:         8080,
			Host:         "0.0.0.0",
			ReadTimeout:  30,
			WriteTimeout: 120,
			IdleTimeout:  60,
			CORSOrigins:  []string{"*"},
		},
		LLM: LLMConfig{
			Provider:    "openai",
			MaxTokens:   900,
			Temperature: 0.7,
			Timeout:     60,
		},
		Weather: WeatherConfig{
			Type:    "wttr",
			Timeout: 10,
		},
		Geocode: GeocodeConfig{
			Type:      "nominatim",
			UserAgent: "travel-app",
			Timeout:   10,
		},
		Cache: CacheConfig{
			Enabled: true,
			Backend: "memory",
			TTL:     0,
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
		},
		Planner: PlannerConfig{
			Currency:    "INR",
			TipsEnabled: true,
		},
		Export: ExportConfig{
			Title:    "Travel Plan",
			FontSize: 11,
			Compress: true,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "",
		},
		Telemetry: TelemetryConfig{
			Enabled:  false,
			Endpoint: "tempo:4317",
		},
	}
}

// Validate checks the values the process cannot start without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		return ErrMissingCredential
	}

	switch c.LLM.Provider {
	case "openai", "anthropic", "gemini":
	default:
		return fmt.Errorf("unknown llm provider %q", c.LLM.Provider)
	}

	switch c.Weather.Type {
	case "wttr":
	default:
		return fmt.Errorf("unknown weather type %q", c.Weather.Type)
	}

	switch c.Geocode.Type {
	case "nominatim":
	case "google-maps":
		if c.Geocode.APIKey == "" {
			return fmt.Errorf("geocode type google-maps requires geocode.api_key")
		}
	default:
		return fmt.Errorf("unknown geocode type %q", c.Geocode.Type)
	}

	switch c.Cache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}

	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("llm.max_tokens must be positive, got %d", c.LLM.MaxTokens)
	}

	return nil
}

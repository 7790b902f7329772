// Package config provides configuration loading from YAML files and the environment.
package config

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	zlog "github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Server    ServerConfig            `yaml:"server"`
	TextGen   TextGenConfig           `yaml:"textgen"`
	Spotify   SpotifyConfig           `yaml:"spotify"`
	Recommend RecommendConfig         `yaml:"recommend"`
	Filters   map[string]FilterConfig `yaml:"filters"`
	Store     StoreConfig             `yaml:"store"`
}

// ServerConfig represents HTTP server configuration.
type ServerConfig struct {
	Addr        string      `yaml:"addr" default:":5000"`
	CORSOrigins []string    `yaml:"cors_origins"`
	Hooks       HooksConfig `yaml:"hooks"`
}

// HooksConfig lists shell commands run around the server lifecycle.
type HooksConfig struct {
	OnStarted []string `yaml:"on_started"`
	OnStopped []string `yaml:"on_stopped"`
}

// TextGenConfig selects and configures the text generation backend.
type TextGenConfig struct {
	Type     string         `yaml:"type" default:"openai" validate:"oneof=openai ollama"`
	Settings map[string]any `yaml:"settings"`
}

// SpotifyConfig represents Spotify API configuration.
type SpotifyConfig struct {
	ClientID     string `yaml:"client_id" validate:"required"`
	ClientSecret string `yaml:"client_secret" validate:"required"`
	Market       string `yaml:"market" validate:"omitempty,len=2"`
}

// RecommendConfig lists the recommendation providers in the order they are tried.
type RecommendConfig struct {
	Providers []ProviderConfig `yaml:"providers" validate:"dive"`
}

// ProviderConfig represents a single recommendation provider configuration.
type ProviderConfig struct {
	Type     string         `yaml:"type" validate:"required,oneof=spotify lastfm"`
	Settings map[string]any `yaml:"settings"`
}

// FilterConfig represents a filter's configuration.
type FilterConfig struct {
	Enabled  bool           `yaml:"enabled"`
	Settings map[string]any `yaml:"settings,omitempty"`
}

// StoreConfig represents playlist store configuration.
type StoreConfig struct {
	Disabled bool   `yaml:"disabled"`
	Path     string `yaml:"path" default:"moodmix.db"`
}

// Load loads configuration from a YAML file.
// A missing file is not an error; the configuration then comes from the environment.
// Environment variables take precedence over file values.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "failed to parse config file")
		}
	case errors.Is(err, os.ErrNotExist):
		zlog.Warn().Msgf("Config file not found, using environment only: path=%s", path)
	default:
		return nil, errors.Wrap(err, "failed to read config file")
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// finalize applies environment overrides and defaults, then validates.
func (c *Config) finalize() error {
	// Override with environment variables
	c.overrideFromEnv()

	// Set defaults using creasty/defaults
	if err := defaults.Set(c); err != nil {
		return errors.Wrap(err, "failed to set defaults")
	}
	if len(c.Recommend.Providers) == 0 {
		c.Recommend.Providers = []ProviderConfig{{Type: "spotify"}}
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"*"}
	}

	// Validate configuration
	if err := c.Validate(); err != nil {
		return errors.Wrap(err, "config validation failed")
	}
	return nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Addr = ":" + v
	}
	if v := os.Getenv("SPOTIFY_CLIENT_ID"); v != "" {
		c.Spotify.ClientID = v
	}
	if v := os.Getenv("SPOTIFY_CLIENT_SECRET"); v != "" {
		c.Spotify.ClientSecret = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" && (c.TextGen.Type == "" || c.TextGen.Type == "openai") {
		c.TextGen.setSetting("api_key", v)
	}
	if v := os.Getenv("OLLAMA_HOST"); v != "" && c.TextGen.Type == "ollama" {
		c.TextGen.setSetting("host", v)
	}
	if v := os.Getenv("LASTFM_API_KEY"); v != "" {
		for i := range c.Recommend.Providers {
			if c.Recommend.Providers[i].Type == "lastfm" {
				if c.Recommend.Providers[i].Settings == nil {
					c.Recommend.Providers[i].Settings = make(map[string]any)
				}
				c.Recommend.Providers[i].Settings["api_key"] = v
				break
			}
		}
	}
	if v := os.Getenv("STORE_PATH"); v != "" {
		c.Store.Path = v
	}
}

func (t *TextGenConfig) setSetting(key string, value any) {
	if t.Settings == nil {
		t.Settings = make(map[string]any)
	}
	t.Settings[key] = value
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}

// IsFilterEnabled checks if a filter is enabled.
func (c *Config) IsFilterEnabled(filterName string) bool {
	if f, ok := c.Filters[filterName]; ok {
		return f.Enabled
	}
	return false
}

// FilterSettings returns the settings for a filter.
func (c *Config) FilterSettings(filterName string) map[string]any {
	if f, ok := c.Filters[filterName]; ok {
		return f.Settings
	}
	return nil
}

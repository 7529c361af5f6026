package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config aggregates all application configuration
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	OpenWeather OpenWeatherConfig `yaml:"openweather"`
	Tequila     TequilaConfig     `yaml:"tequila"`
}

type ServerConfig struct {
	Port string `yaml:"port" env:"PORT" env-default:"3000"`
}

type OpenWeatherConfig struct {
	APIKey string `yaml:"api_key" env:"OPENWEATHER_KEY"`
}

type TequilaConfig struct {
	APIKey  string `yaml:"api_key" env:"TEQUILA_API_KEY"`
	BaseURL string `yaml:"base_url" env:"TEQUILA_BASE_URL" env-default:"https://tequila-api.kiwi.com"`
}

// Load reads configuration from config.yaml and environment variables.
// Priority: Env Vars > Config File > Defaults.
// A missing provider credential is not an error here; the affected
// provider reports Unconfigured on every call instead.
func Load() (*Config, error) {
	var cfg Config

	err := cleanenv.ReadConfig("config.yaml", &cfg)
	if err != nil {
		// If file doesn't exist, just read env vars
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read env config: %w", err)
		}
	}

	return &cfg, nil
}

package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration values.
type Config struct {
	Secret         string        `mapstructure:"secret"`
	HTTPPort       string        `mapstructure:"http_port"`
	DemoPassword   string        `mapstructure:"demo_password"`
	TokenTTL       time.Duration `mapstructure:"token_ttl"`
	LogLevel       string        `mapstructure:"log_level"`
	LogFormat      string        `mapstructure:"log_format"`
	CatalogCSV     string        `mapstructure:"catalog_csv"`
	AllowedOrigins []string      `mapstructure:"-"`

	// Warnings collects values that were replaced by defaults.
	Warnings []string `mapstructure:"-"`
}

var defaults = map[string]any{
	"secret":          "dev_secret",
	"http_port":       "8080",
	"demo_password":   "password123",
	"token_ttl":       "24h",
	"log_level":       "info",
	"log_format":      "json",
	"catalog_csv":     "",
	"allowed_origins": "*",
}

// Load reads config.yaml from dir if present, then environment variables,
// falling back to reasonable defaults.
func Load(dir string) (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir != "" {
		v.AddConfigPath(dir)
	}

	for key, val := range defaults {
		v.SetDefault(key, val)
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.AllowedOrigins = splitList(v.GetStringSlice("allowed_origins"))

	// Validate that port is numeric.
	if _, err := strconv.Atoi(cfg.HTTPPort); err != nil {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("invalid HTTP_PORT value %q, defaulting to 8080", cfg.HTTPPort))
		cfg.HTTPPort = "8080"
	}
	if cfg.TokenTTL <= 0 {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("invalid TOKEN_TTL value %s, defaulting to 24h", cfg.TokenTTL))
		cfg.TokenTTL = 24 * time.Hour
	}
	return cfg, nil
}

// splitList accepts both yaml lists and comma separated env values.
func splitList(raw []string) []string {
	var out []string
	for _, item := range raw {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

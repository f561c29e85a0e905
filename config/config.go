package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Mapstructure tags are used to map environment variables and config file keys.
type Config struct {
	// Server Configuration
	ServerAddress string `mapstructure:"SERVER_ADDRESS"` // e.g., ":8080"
	AppEnv        string `mapstructure:"APP_ENV"`        // "production" switches gin to release mode
	LogLevel      string `mapstructure:"LOG_LEVEL"`      // debug, info, warn, error

	// AI Configuration
	GeminiAPIKey   string        `mapstructure:"GEMINI_API_KEY"`  // API key for the generative endpoint
	AIBaseURL      string        `mapstructure:"AI_BASE_URL"`     // OpenAI-compatible endpoint
	ModelID        string        `mapstructure:"MODEL_ID"`        // e.g., "gemini-2.5-flash"
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"` // upper bound for one remote call

	// Storage Configuration
	StorePath string `mapstructure:"STORE_PATH"` // SQLite file holding the saved prompts
}

const (
	DefaultServerAddress  = ":8080"
	DefaultAIBaseURL      = "https://generativelanguage.googleapis.com/v1beta/openai"
	DefaultModelID        = "gemini-2.5-flash"
	DefaultRequestTimeout = 60 * time.Second
	DefaultStorePath      = "data/prompts.db"
	DefaultLogLevel       = "info"
)

// LoadConfig reads configuration from file and environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)     // Path to look for the config file in
	v.SetConfigName("config") // Name of config file (without extension)
	v.SetConfigType("yaml")

	v.SetDefault("SERVER_ADDRESS", DefaultServerAddress)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", DefaultLogLevel)
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("AI_BASE_URL", DefaultAIBaseURL)
	v.SetDefault("MODEL_ID", DefaultModelID)
	v.SetDefault("REQUEST_TIMEOUT", DefaultRequestTimeout)
	v.SetDefault("STORE_PATH", DefaultStorePath)

	v.AutomaticEnv() // Read environment variables that match keys

	err = v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Info("config.yaml not found, relying on environment variables", "path", path)
		} else {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		slog.Info("using configuration file", "file", v.ConfigFileUsed())
	}

	err = v.Unmarshal(&config)
	if err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if config.GeminiAPIKey == "" {
		slog.Warn("GEMINI_API_KEY is not set; remote calls will fail and show the fallback message")
	}
	if config.RequestTimeout <= 0 {
		return Config{}, fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", config.RequestTimeout)
	}

	return
}

// SlogLevel parses LogLevel, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/tomotune/tomotune/internal/constants"
)

// Config holds all application configuration
type Config struct {
	Port         string
	DBPath       string
	MediaDir     string
	TablePath    string
	BaseURL      string
	LearningRate float64
	LogLevel     string
	LogFormat    string
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", constants.DefaultPort),
		DBPath:       getEnv("DB_PATH", constants.DefaultDBPath),
		MediaDir:     getEnv("MEDIA_DIR", constants.DefaultMediaDir),
		TablePath:    getEnv("TABLE_PATH", constants.DefaultTablePath),
		BaseURL:      getEnv("BASE_URL", constants.DefaultBaseURL),
		LearningRate: getEnvFloat("LEARNING_RATE", constants.DefaultLearningRate),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "text"),
	}
}

// Validate validates the configuration and returns detailed errors
func (c *Config) Validate() error {
	var errors []string

	if c.Port == "" {
		errors = append(errors, "PORT cannot be empty")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("PORT must be a valid number, got: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("PORT must be between 1 and 65535, got: %d", port))
		}
	}

	if c.DBPath == "" {
		errors = append(errors, "DB_PATH cannot be empty")
	}

	if c.MediaDir == "" {
		errors = append(errors, "MEDIA_DIR cannot be empty")
	}

	if c.TablePath == "" {
		errors = append(errors, "TABLE_PATH cannot be empty")
	}

	if c.BaseURL == "" {
		errors = append(errors, "BASE_URL cannot be empty")
	} else {
		if _, err := url.Parse(c.BaseURL); err != nil {
			errors = append(errors, fmt.Sprintf("BASE_URL is not a valid URL: %s", c.BaseURL))
		}
	}

	if c.LearningRate < 0 || c.LearningRate > 1 {
		errors = append(errors, fmt.Sprintf("LEARNING_RATE must be in [0,1], got: %g", c.LearningRate))
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: debug, info, warn, error, got: %s", c.LogLevel))
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[c.LogFormat] {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: text, json, got: %s", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// getEnvFloat retrieves a float environment variable with a fallback default
func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

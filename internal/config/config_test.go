package config

import (
	"os"
	"testing"

	"github.com/tomotune/tomotune/internal/constants"
)

func TestLoad(t *testing.T) {
	// Test default values
	cfg := Load()

	if cfg.Port != constants.DefaultPort {
		t.Errorf("Expected Port to be %s, got %s", constants.DefaultPort, cfg.Port)
	}

	if cfg.DBPath != constants.DefaultDBPath {
		t.Errorf("Expected DBPath to be %s, got %s", constants.DefaultDBPath, cfg.DBPath)
	}

	if cfg.MediaDir != constants.DefaultMediaDir {
		t.Errorf("Expected MediaDir to be %s, got %s", constants.DefaultMediaDir, cfg.MediaDir)
	}

	if cfg.TablePath != constants.DefaultTablePath {
		t.Errorf("Expected TablePath to be %s, got %s", constants.DefaultTablePath, cfg.TablePath)
	}

	if cfg.LearningRate != constants.DefaultLearningRate {
		t.Errorf("Expected LearningRate to be %g, got %g", constants.DefaultLearningRate, cfg.LearningRate)
	}
}

func TestLoadWithEnvVars(t *testing.T) {
	os.Setenv("PORT", "9090")
	os.Setenv("MEDIA_DIR", "/tmp/media")
	os.Setenv("LEARNING_RATE", "0.1")
	defer func() {
		os.Unsetenv("PORT")
		os.Unsetenv("MEDIA_DIR")
		os.Unsetenv("LEARNING_RATE")
	}()

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Expected Port to be 9090, got %s", cfg.Port)
	}
	if cfg.MediaDir != "/tmp/media" {
		t.Errorf("Expected MediaDir to be /tmp/media, got %s", cfg.MediaDir)
	}
	if cfg.LearningRate != 0.1 {
		t.Errorf("Expected LearningRate to be 0.1, got %g", cfg.LearningRate)
	}
}

func TestLoadWithInvalidLearningRate(t *testing.T) {
	os.Setenv("LEARNING_RATE", "not-a-number")
	defer os.Unsetenv("LEARNING_RATE")

	cfg := Load()
	if cfg.LearningRate != constants.DefaultLearningRate {
		t.Errorf("Expected default learning rate for invalid env, got %g", cfg.LearningRate)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"empty port", func(c *Config) { c.Port = "" }, true},
		{"non-numeric port", func(c *Config) { c.Port = "abc" }, true},
		{"port out of range", func(c *Config) { c.Port = "70000" }, true},
		{"empty db path", func(c *Config) { c.DBPath = "" }, true},
		{"empty media dir", func(c *Config) { c.MediaDir = "" }, true},
		{"empty table path", func(c *Config) { c.TablePath = "" }, true},
		{"learning rate above 1", func(c *Config) { c.LearningRate = 1.5 }, true},
		{"negative learning rate", func(c *Config) { c.LearningRate = -0.1 }, true},
		{"invalid log level", func(c *Config) { c.LogLevel = "verbose" }, true},
		{"invalid log format", func(c *Config) { c.LogFormat = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

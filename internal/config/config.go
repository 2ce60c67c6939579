package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the configuration for the application.
type Config struct {
	GeminiAPIKey string
	DataDir      string
	DatabasePath string
}

// NewFromEnv creates a new Config object from environment variables.
// The Gemini credential is mandatory; a missing key is a startup failure,
// not a degraded mode.
func NewFromEnv() (*Config, error) {
	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	if geminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	return &Config{
		GeminiAPIKey: geminiAPIKey,
		DataDir:      dataDir,
		DatabasePath: filepath.Join(dataDir, "plan-my-meal.db"),
	}, nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewFromEnv(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "gemini_key")
		t.Setenv("DATA_DIR", "/tmp/pm-test")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.GeminiAPIKey != "gemini_key" {
			t.Errorf("Expected GeminiAPIKey to be 'gemini_key', got '%s'", cfg.GeminiAPIKey)
		}
		if cfg.DataDir != "/tmp/pm-test" {
			t.Errorf("Expected DataDir to be '/tmp/pm-test', got '%s'", cfg.DataDir)
		}
		expectedDB := filepath.Join("/tmp/pm-test", "plan-my-meal.db")
		if cfg.DatabasePath != expectedDB {
			t.Errorf("Expected DatabasePath to be '%s', got '%s'", expectedDB, cfg.DatabasePath)
		}
	})

	t.Run("DefaultDataDir", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "gemini_key")
		t.Setenv("DATA_DIR", "")
		os.Unsetenv("DATA_DIR")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DataDir != "data" {
			t.Errorf("Expected DataDir to default to 'data', got '%s'", cfg.DataDir)
		}
	})

	t.Run("MissingGeminiAPIKey", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")
		os.Unsetenv("GEMINI_API_KEY")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for missing GEMINI_API_KEY, got nil")
		}
		expectedError := "GEMINI_API_KEY environment variable not set"
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})
}

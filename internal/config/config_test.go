// This test file verifies the configuration loading logic using Viper.

package config

import (
	"os"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	// Viper caches state between Load calls within a process, and it reads
	// config.yml from the CWD, so each subtest manages both explicitly.
	t.Setenv("BOOKSTORE_API_URL", "")
	t.Setenv("BOOKSTORE_SESSION_SECRET", "")

	t.Run("Missing api_url is an error", func(t *testing.T) {
		os.Remove("config.yml")
		t.Setenv("BOOKSTORE_SESSION_SECRET", "test-secret")

		if _, err := Load(); err == nil {
			t.Fatal("Load() should fail when api_url is not configured")
		}
	})

	t.Run("Missing session secret is an error", func(t *testing.T) {
		os.Remove("config.yml")
		t.Setenv("BOOKSTORE_API_URL", "http://backend.local:9050")

		if _, err := Load(); err == nil {
			t.Fatal("Load() should fail when session.secret is not configured")
		}
	})

	t.Run("Env vars and defaults", func(t *testing.T) {
		os.Remove("config.yml")
		t.Setenv("BOOKSTORE_API_URL", "http://backend.local:9050/")
		t.Setenv("BOOKSTORE_SESSION_SECRET", "test-secret")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned an error: %v", err)
		}
		if cfg.Port != 8080 {
			t.Errorf("Expected default port 8080, got %d", cfg.Port)
		}
		if cfg.APIURL != "http://backend.local:9050" {
			t.Errorf("Expected trailing slash trimmed from api_url, got %q", cfg.APIURL)
		}
		if cfg.IsProduction() {
			t.Error("Expected development mode by default")
		}
	})

	t.Run("Loads from config file", func(t *testing.T) {
		configContent := `
port: 9999
api_url: "http://178.18.250.240:9050"
environment: "production"
session:
  secret: "file-secret"
unknown_setting: "should be ignored"
`
		// Create the config file in the current directory so Viper can find it.
		configPath := "config.yml"
		if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
			t.Fatalf("Failed to write test config file: %v", err)
		}
		defer os.Remove(configPath)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned an error: %v", err)
		}
		if cfg.Port != 9999 {
			t.Errorf("Expected port 9999, got %d", cfg.Port)
		}
		if cfg.APIURL != "http://178.18.250.240:9050" {
			t.Errorf("Unexpected api_url %q", cfg.APIURL)
		}
		if !cfg.IsProduction() {
			t.Error("Expected production mode")
		}
		if cfg.Session.Secret != "file-secret" {
			t.Errorf("Unexpected session secret %q", cfg.Session.Secret)
		}
	})
}

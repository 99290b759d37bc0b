package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "boxtube.db" {
			t.Errorf("expected database path boxtube.db, got %s", config.Database.Path)
		}

		if config.Catalog.Host != "youtube-v31.p.rapidapi.com" {
			t.Errorf("expected catalog host youtube-v31.p.rapidapi.com, got %s", config.Catalog.Host)
		}

		if config.Catalog.MaxResults != 50 {
			t.Errorf("expected max_results 50, got %d", config.Catalog.MaxResults)
		}

		if config.Catalog.RatePerSec != 4.0 {
			t.Errorf("expected rate_per_sec 4.0, got %f", config.Catalog.RatePerSec)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[catalog]
api_key = "test_api_key"
host = "custom-host.p.rapidapi.com"
base_url = "https://custom-host.p.rapidapi.com"
max_results = 10
rate_per_sec = 2.0

[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Catalog.APIKey != "test_api_key" {
			t.Errorf("expected api_key test_api_key, got %s", config.Catalog.APIKey)
		}

		if config.Catalog.MaxResults != 10 {
			t.Errorf("expected max_results 10, got %d", config.Catalog.MaxResults)
		}

		t.Run("missing file", func(t *testing.T) {
			if _, err := LoadConfig(filepath.Join(tmpDir, "nope.toml")); err == nil {
				t.Error("expected an error for a missing file")
			}
		})

		t.Run("env override", func(t *testing.T) {
			t.Setenv("BOXTUBE_API_KEY", "env_key")

			config, err := LoadConfig(configPath)
			if err != nil {
				t.Fatalf("failed to load config: %v", err)
			}
			if config.Catalog.APIKey != "env_key" {
				t.Errorf("expected the env var to win, got %s", config.Catalog.APIKey)
			}
		})
	})
}

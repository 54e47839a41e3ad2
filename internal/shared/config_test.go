package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./gamedex.db" {
			t.Errorf("expected database path ./gamedex.db, got %s", config.Database.Path)
		}

		if config.Sync.RateLimit != 4.0 {
			t.Errorf("expected sync rate limit 4.0, got %f", config.Sync.RateLimit)
		}

		if config.Sync.Workers != 4 {
			t.Errorf("expected 4 sync workers, got %d", config.Sync.Workers)
		}

		if config.Credentials.IGDB.ClientID != "your_igdb_client_id" {
			t.Errorf("expected igdb client_id your_igdb_client_id, got %s", config.Credentials.IGDB.ClientID)
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

		testConfig := `[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[sync]
rate_limit = 2.5
workers = 2

[credentials.igdb]
client_id = "test_client_id"
client_secret = "test_secret"
base_url = "http://localhost:9090/v4"
token_url = "http://localhost:9090/oauth2/token"
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

		if config.Sync.Workers != 2 {
			t.Errorf("expected 2 sync workers, got %d", config.Sync.Workers)
		}

		if config.Credentials.IGDB.ClientID != "test_client_id" {
			t.Errorf("expected igdb client_id test_client_id, got %s", config.Credentials.IGDB.ClientID)
		}

		if config.Credentials.IGDB.TokenURL != "http://localhost:9090/oauth2/token" {
			t.Errorf("unexpected token_url %s", config.Credentials.IGDB.TokenURL)
		}
	})
}

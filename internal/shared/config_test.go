package shared

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Steam.Currency != "USD" {
		t.Errorf("expected default currency USD, got %q", config.Steam.Currency)
	}
	if config.Steam.Language != "english" {
		t.Errorf("expected default language english, got %q", config.Steam.Language)
	}
	if config.Client.MinIntervalSeconds != 4 {
		t.Errorf("expected min interval 4, got %d", config.Client.MinIntervalSeconds)
	}
	if config.Client.Retries != 3 {
		t.Errorf("expected 3 retries, got %d", config.Client.Retries)
	}
	if config.Client.CooldownSeconds != 600 {
		t.Errorf("expected 600s cooldown, got %d", config.Client.CooldownSeconds)
	}
	if config.Cache.Path != "steam_cache.json" {
		t.Errorf("unexpected cache path %q", config.Cache.Path)
	}
	if config.Cache.ResultsPath != "results_autosave.json" {
		t.Errorf("unexpected results path %q", config.Cache.ResultsPath)
	}
}

func TestClientConfigDurations(t *testing.T) {
	c := ClientConfig{MinIntervalSeconds: 4, CooldownSeconds: 600, TimeoutSeconds: 15}

	if c.MinInterval() != 4*time.Second {
		t.Errorf("MinInterval() = %v", c.MinInterval())
	}
	if c.Cooldown() != 600*time.Second {
		t.Errorf("Cooldown() = %v", c.Cooldown())
	}
	if c.Timeout() != 15*time.Second {
		t.Errorf("Timeout() = %v", c.Timeout())
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[steam]
api_key = "ABC123"
currency = "EUR"
language = "russian"

[client]
min_interval_seconds = 2
retries = 5

[cache]
path = "cache.json"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.Steam.APIKey != "ABC123" {
		t.Errorf("expected api key ABC123, got %q", config.Steam.APIKey)
	}
	if config.Steam.Currency != "EUR" {
		t.Errorf("expected currency EUR, got %q", config.Steam.Currency)
	}
	if config.Client.Retries != 5 {
		t.Errorf("expected 5 retries, got %d", config.Client.Retries)
	}
	if config.Cache.Path != "cache.json" {
		t.Errorf("expected cache path cache.json, got %q", config.Cache.Path)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("[steam\napi_key ="), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for malformed config file")
	}
}

func TestCreateConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if err := CreateConfigFile(path); err != nil {
		t.Fatalf("CreateConfigFile failed: %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load created config: %v", err)
	}
	if config.Client.MaxCooldowns != 3 {
		t.Errorf("expected max cooldowns 3, got %d", config.Client.MaxCooldowns)
	}

	err = CreateConfigFile(path)
	if err == nil {
		t.Fatal("expected error when config file already exists")
	}
	if !errors.Is(err, os.ErrExist) {
		t.Errorf("expected os.ErrExist, got %v", err)
	}
	if strings.Contains(err.Error(), "%!w") {
		t.Errorf("error message has a bad wrap verb: %v", err)
	}
}

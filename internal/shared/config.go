package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Steam    SteamConfig    `toml:"steam"`
	Client   ClientConfig   `toml:"client"`
	Cache    CacheConfig    `toml:"cache"`
	Database DatabaseConfig `toml:"database"`
}

// SteamConfig contains Steam Web API credentials and market preferences.
type SteamConfig struct {
	APIKey   string `toml:"api_key"`
	Currency string `toml:"currency"`
	Language string `toml:"language"`
}

// ClientConfig contains rate limiting and retry settings for outbound requests.
type ClientConfig struct {
	MinIntervalSeconds int `toml:"min_interval_seconds"`
	Retries            int `toml:"retries"`
	CooldownSeconds    int `toml:"cooldown_seconds"`
	MaxCooldowns       int `toml:"max_cooldowns"`
	TimeoutSeconds     int `toml:"timeout_seconds"`
}

// CacheConfig contains paths for the persistent cache, the result autosave
// file, and the optional local snapshot directory.
type CacheConfig struct {
	Path        string `toml:"path"`
	ResultsPath string `toml:"results_path"`
	SnapshotDir string `toml:"snapshot_dir"`
}

// DatabaseConfig contains run history database settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// MinInterval returns the minimum inter-request interval as a [time.Duration].
func (c ClientConfig) MinInterval() time.Duration {
	return time.Duration(c.MinIntervalSeconds) * time.Second
}

// Cooldown returns the 429 cooldown as a [time.Duration].
func (c ClientConfig) Cooldown() time.Duration {
	return time.Duration(c.CooldownSeconds) * time.Second
}

// Timeout returns the per-request timeout as a [time.Duration].
func (c ClientConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, os.ErrExist)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

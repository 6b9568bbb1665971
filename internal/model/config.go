package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// APIConfig holds settings for the backend connection.
type APIConfig struct {
	// BaseURL is the root URL of the shop management API.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// TimeoutSec is the per-request timeout in seconds.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// NotifyConfig holds settings for the notification polling loop.
type NotifyConfig struct {
	// PollIntervalSec is how often (in seconds) to poll for notifications.
	PollIntervalSec int `mapstructure:"poll_interval_sec" yaml:"poll_interval_sec"`

	// RecentLimit is how many recent notifications each poll requests.
	RecentLimit int `mapstructure:"recent_limit" yaml:"recent_limit"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme    string `mapstructure:"theme" yaml:"theme"`
	PageSize int    `mapstructure:"page_size" yaml:"page_size"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	API     APIConfig     `mapstructure:"api" yaml:"api"`
	Notify  NotifyConfig  `mapstructure:"notify" yaml:"notify"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`

	// LogFile is where structured logs are written; the terminal itself
	// belongs to the UI.
	LogFile string `mapstructure:"log_file" yaml:"log_file"`

	// DBPath is the location of the local cache database.
	DBPath string `mapstructure:"db_path" yaml:"db_path"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/shopdesk/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "shopdesk", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	dir := filepath.Dir(DefaultConfigPath())
	return &AppConfig{
		API: APIConfig{
			BaseURL:    "http://localhost:8080",
			TimeoutSec: 30,
		},
		Notify: NotifyConfig{
			PollIntervalSec: 30,
			RecentLimit:     10,
		},
		Display: DisplayConfig{
			Theme:    "default",
			PageSize: 50,
		},
		LogFile: filepath.Join(dir, "shopdesk.log"),
		DBPath:  filepath.Join(dir, "cache.db"),
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	defaults := defaultAppConfig()

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("api.base_url", defaults.API.BaseURL)
	v.SetDefault("api.timeout_sec", defaults.API.TimeoutSec)
	v.SetDefault("notify.poll_interval_sec", defaults.Notify.PollIntervalSec)
	v.SetDefault("notify.recent_limit", defaults.Notify.RecentLimit)
	v.SetDefault("display.theme", defaults.Display.Theme)
	v.SetDefault("display.page_size", defaults.Display.PageSize)
	v.SetDefault("log_file", defaults.LogFile)
	v.SetDefault("db_path", defaults.DBPath)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaults, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("api", cfg.API)
	v.Set("notify", cfg.Notify)
	v.Set("display", cfg.Display)
	v.Set("log_file", cfg.LogFile)
	v.Set("db_path", cfg.DBPath)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}

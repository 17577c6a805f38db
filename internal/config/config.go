// Package config provides configuration management for veil with Viper
// integration. Settings are partitioned into general, privacy, and wallet
// sections; changed sections are pushed to the host by the settings store.
package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// File permission constants
const (
	dirPerm  = 0755
	filePerm = 0644
)

// Config represents the complete configuration for veil.
type Config struct {
	General  GeneralConfig  `mapstructure:"general" yaml:"general" json:"general"`
	Privacy  PrivacyConfig  `mapstructure:"privacy" yaml:"privacy" json:"privacy"`
	Wallet   WalletConfig   `mapstructure:"wallet" yaml:"wallet" json:"wallet"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database" json:"database"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging" json:"logging"`
	Host     HostConfig     `mapstructure:"host" yaml:"host" json:"host"`
}

// GeneralConfig holds browsing behavior settings.
type GeneralConfig struct {
	Homepage       string `mapstructure:"homepage" yaml:"homepage" json:"homepage"`
	NewTabURL      string `mapstructure:"new_tab_url" yaml:"new_tab_url" json:"new_tab_url"`
	SearchEngine   string `mapstructure:"search_engine" yaml:"search_engine" json:"search_engine"`
	RestoreSession bool   `mapstructure:"restore_session" yaml:"restore_session" json:"restore_session"`
}

// PrivacyConfig holds tracker blocking and data retention settings.
type PrivacyConfig struct {
	BlockTrackers        bool `mapstructure:"block_trackers" yaml:"block_trackers" json:"block_trackers"`
	BlockAds             bool `mapstructure:"block_ads" yaml:"block_ads" json:"block_ads"`
	DoNotTrack           bool `mapstructure:"do_not_track" yaml:"do_not_track" json:"do_not_track"`
	ClearHistoryOnExit   bool `mapstructure:"clear_history_on_exit" yaml:"clear_history_on_exit" json:"clear_history_on_exit"`
	HistoryRetentionDays int  `mapstructure:"history_retention_days" yaml:"history_retention_days" json:"history_retention_days"`
}

// WalletConfig holds wallet polling and error-surfacing policy.
type WalletConfig struct {
	Network              string        `mapstructure:"network" yaml:"network" json:"network"`
	BalancePollInterval  time.Duration `mapstructure:"balance_poll_interval" yaml:"balance_poll_interval" json:"balance_poll_interval"`
	TxPollInterval       time.Duration `mapstructure:"tx_poll_interval" yaml:"tx_poll_interval" json:"tx_poll_interval"`
	TxPollTimeout        time.Duration `mapstructure:"tx_poll_timeout" yaml:"tx_poll_timeout" json:"tx_poll_timeout"`
	SurfaceRefreshErrors bool          `mapstructure:"surface_refresh_errors" yaml:"surface_refresh_errors" json:"surface_refresh_errors"`
}

// DatabaseConfig holds local persistence configuration.
type DatabaseConfig struct {
	Path         string        `mapstructure:"path" yaml:"path" json:"path"`
	QueryTimeout time.Duration `mapstructure:"query_timeout" yaml:"query_timeout" json:"query_timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" json:"level"`
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// HostConfig holds the bridge endpoint of the host process.
type HostConfig struct {
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint" json:"endpoint"`
}

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	v.SetConfigName("config")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Current directory for development

	v.SetEnvPrefix("VEIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := []string{
		"general.homepage",
		"general.new_tab_url",
		"general.search_engine",
		"general.restore_session",
		"privacy.block_trackers",
		"privacy.block_ads",
		"privacy.do_not_track",
		"privacy.clear_history_on_exit",
		"privacy.history_retention_days",
		"wallet.network",
		"wallet.balance_poll_interval",
		"wallet.tx_poll_interval",
		"wallet.tx_poll_timeout",
		"wallet.surface_refresh_errors",
		"database.path",
		"database.query_timeout",
		"logging.level",
		"logging.format",
		"host.endpoint",
	}
	for _, key := range bindings {
		env := "VEIL_" + strings.ToUpper(strings.NewReplacer(".", "_").Replace(key))
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable %s: %w", env, err)
		}
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if err := m.createDefaultConfig(); err != nil {
				return fmt.Errorf("failed to create default config: %w", err)
			}
		} else {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Database.Path == "" {
		dbPath, err := GetDatabaseFile()
		if err != nil {
			return fmt.Errorf("failed to get database path: %w", err)
		}
		config.Database.Path = dbPath
	}

	m.config = config
	return nil
}

// Get returns the current configuration (thread-safe copy).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	configCopy := *m.config
	return &configCopy
}

// Set stores an updated value and persists the config file.
func (m *Manager) Set(key string, value any) error {
	m.mu.Lock()
	m.viper.Set(key, value)
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	m.config = config
	m.mu.Unlock()

	return m.Save()
}

// Save writes the current configuration to the config file.
func (m *Manager) Save() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.viper.WriteConfig(); err != nil {
		// WriteConfig fails when no file existed yet
		path, pathErr := GetConfigFile()
		if pathErr != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		if err := m.viper.WriteConfigAs(path); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
	}
	return nil
}

// Watch starts watching the config file for changes and reloads
// automatically, notifying registered callbacks.
func (m *Manager) Watch() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching {
		return nil
	}

	m.viper.WatchConfig()
	m.viper.OnConfigChange(func(_ fsnotify.Event) {
		if err := m.reload(); err != nil {
			return
		}

		m.mu.RLock()
		config := m.config
		callbacks := make([]func(*Config), len(m.callbacks))
		copy(callbacks, m.callbacks)
		m.mu.RUnlock()

		for _, callback := range callbacks {
			callback(config)
		}
	})

	m.watching = true
	return nil
}

// OnConfigChange registers a callback invoked after config reloads.
func (m *Manager) OnConfigChange(callback func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, callback)
}

func (m *Manager) reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.viper.ReadInConfig(); err != nil {
		return err
	}

	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return err
	}

	m.config = config
	return nil
}

package config

import (
	"fmt"
	"os"
	"time"
)

// Default values applied before the config file and environment are read.
func (m *Manager) setDefaults() {
	m.viper.SetDefault("general.homepage", "https://duckduckgo.com")
	m.viper.SetDefault("general.new_tab_url", "about:blank")
	m.viper.SetDefault("general.search_engine", "https://duckduckgo.com/?q=%s")
	m.viper.SetDefault("general.restore_session", true)

	m.viper.SetDefault("privacy.block_trackers", true)
	m.viper.SetDefault("privacy.block_ads", true)
	m.viper.SetDefault("privacy.do_not_track", true)
	m.viper.SetDefault("privacy.clear_history_on_exit", false)
	m.viper.SetDefault("privacy.history_retention_days", 90)

	m.viper.SetDefault("wallet.network", "testnet")
	m.viper.SetDefault("wallet.balance_poll_interval", 30*time.Second)
	m.viper.SetDefault("wallet.tx_poll_interval", 2*time.Second)
	m.viper.SetDefault("wallet.tx_poll_timeout", 2*time.Minute)
	// Background balance-refresh failures are swallowed by default so
	// transient network blips never alarm the user; flip to surface them.
	m.viper.SetDefault("wallet.surface_refresh_errors", false)

	m.viper.SetDefault("database.query_timeout", 5*time.Second)

	m.viper.SetDefault("logging.level", "info")
	m.viper.SetDefault("logging.format", "console")

	m.viper.SetDefault("host.endpoint", "ws://127.0.0.1:8790/bridge")
}

// createDefaultConfig writes a default config file.
func (m *Manager) createDefaultConfig() error {
	path, err := GetConfigFile()
	if err != nil {
		return err
	}
	if err := m.viper.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write default config to %s: %w", path, err)
	}
	if err := os.Chmod(path, filePerm); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}
	return nil
}

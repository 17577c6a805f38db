package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "veil"

// GetConfigDir returns the XDG config directory for veil.
func GetConfigDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// GetDataDir returns the XDG data directory for veil.
func GetDataDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", appName), nil
}

// GetConfigFile returns the path of the main config file.
func GetConfigFile() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// GetDatabaseFile returns the default path of the local database.
func GetDatabaseFile() (string, error) {
	dir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "veil.db"), nil
}

// EnsureDirectories creates the config and data directories.
func EnsureDirectories() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}
	dataDir, err := GetDataDir()
	if err != nil {
		return err
	}
	for _, dir := range []string{configDir, dataDir} {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

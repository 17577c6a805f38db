package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Load())
	return m
}

func TestManager_LoadDefaults(t *testing.T) {
	m := newTestManager(t)
	cfg := m.Get()

	assert.Equal(t, "https://duckduckgo.com", cfg.General.Homepage)
	assert.Equal(t, "about:blank", cfg.General.NewTabURL)
	assert.True(t, cfg.Privacy.BlockTrackers)
	assert.Equal(t, 90, cfg.Privacy.HistoryRetentionDays)
	assert.Equal(t, "testnet", cfg.Wallet.Network)
	assert.Equal(t, 30*time.Second, cfg.Wallet.BalancePollInterval)
	assert.False(t, cfg.Wallet.SurfaceRefreshErrors)
	assert.NotEmpty(t, cfg.Database.Path)
	assert.Equal(t, "ws://127.0.0.1:8790/bridge", cfg.Host.Endpoint)
}

func TestManager_EnvOverride(t *testing.T) {
	t.Setenv("VEIL_WALLET_NETWORK", "mainnet")
	t.Setenv("VEIL_PRIVACY_BLOCK_ADS", "false")

	m := newTestManager(t)
	cfg := m.Get()

	assert.Equal(t, "mainnet", cfg.Wallet.Network)
	assert.False(t, cfg.Privacy.BlockAds)
}

func TestManager_GetReturnsCopy(t *testing.T) {
	m := newTestManager(t)

	cfg := m.Get()
	cfg.General.Homepage = "https://mutated.example"

	assert.Equal(t, "https://duckduckgo.com", m.Get().General.Homepage)
}

func TestManager_SetPersists(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.Set("general.homepage", "https://example.org"))
	assert.Equal(t, "https://example.org", m.Get().General.Homepage)

	// A fresh manager reads the persisted value back.
	m2, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m2.Load())
	assert.Equal(t, "https://example.org", m2.Get().General.Homepage)
}

func TestSchema_DescribesSections(t *testing.T) {
	b, err := Schema()
	require.NoError(t, err)

	s := string(b)
	assert.Contains(t, s, "general")
	assert.Contains(t, s, "privacy")
	assert.Contains(t, s, "wallet")
}

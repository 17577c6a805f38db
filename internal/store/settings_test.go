package store

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veilbrowser/veil/internal/bridge"
	"github.com/veilbrowser/veil/internal/bridge/bridgetest"
	"github.com/veilbrowser/veil/internal/config"
)

func newSettingsStore(t *testing.T, transport *bridgetest.FakeTransport) *SettingsStore {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	manager, err := config.NewManager()
	require.NoError(t, err)
	require.NoError(t, manager.Load())

	client := bridge.New(transport, zerolog.Nop())
	return NewSettingsStore(client, manager, zerolog.Nop())
}

func TestSettingsStore_UpdateGeneralPersistsAndPushes(t *testing.T) {
	transport := bridgetest.NewFakeTransport()
	s := newSettingsStore(t, transport)

	general := s.General()
	general.Homepage = "https://start.example"
	require.True(t, s.UpdateGeneral(context.Background(), general))

	assert.Equal(t, "https://start.example", s.General().Homepage)
	assert.Equal(t, 1, transport.CallCount("window.pushSettings"))

	calls := transport.Calls()
	assert.Contains(t, string(calls[0].Params), `"section":"general"`)
	assert.Contains(t, string(calls[0].Params), "https://start.example")
}

func TestSettingsStore_UpdatePrivacyTogglesBlocking(t *testing.T) {
	transport := bridgetest.NewFakeTransport()
	s := newSettingsStore(t, transport)

	privacy := s.Privacy()
	require.True(t, privacy.BlockTrackers)

	privacy.BlockTrackers = false
	require.True(t, s.UpdatePrivacy(context.Background(), privacy))
	assert.False(t, s.Privacy().BlockTrackers)
}

func TestSettingsStore_HostPushFailureStillSavesLocally(t *testing.T) {
	transport := bridgetest.NewFakeTransport()
	transport.Respond("window.pushSettings", map[string]any{
		"success": false,
		"error":   "window gone",
	})
	s := newSettingsStore(t, transport)

	wallet := s.Wallet()
	wallet.Network = "mainnet"
	require.True(t, s.UpdateWallet(context.Background(), wallet))

	assert.Equal(t, "mainnet", s.Wallet().Network)
	assert.Empty(t, s.Err())
}

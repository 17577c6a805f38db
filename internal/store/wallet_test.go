package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veilbrowser/veil/internal/bridge"
	"github.com/veilbrowser/veil/internal/bridge/bridgetest"
	"github.com/veilbrowser/veil/internal/config"
	"github.com/veilbrowser/veil/internal/domain/entity"
)

var testAddress = "aleo1" + strings.Repeat("q", 58)

func newWalletStore(transport *bridgetest.FakeTransport, cfg config.WalletConfig) *WalletStore {
	client := bridge.New(transport, zerolog.Nop())
	return NewWalletStore(client, cfg, zerolog.Nop())
}

func TestWalletStore_SendWhileLockedMakesNoHostCalls(t *testing.T) {
	transport := bridgetest.NewFakeTransport()
	s := newWalletStore(transport, config.WalletConfig{})

	// Locked wallet, seeded without touching the transport.
	s.mu.Lock()
	s.wallet = entity.Wallet{Status: entity.WalletLocked}
	s.mu.Unlock()

	txID, ok := s.Send(context.Background(), testAddress, 1.5, 0.1, "")

	assert.False(t, ok)
	assert.Empty(t, txID)
	assert.Equal(t, ErrWalletLocked, s.Err())
	assert.Equal(t, 0, transport.CallCount(""))
}

func TestWalletStore_SendValidatesLocallyBeforeHostCall(t *testing.T) {
	transport := bridgetest.NewFakeTransport()
	s := newWalletStore(transport, config.WalletConfig{})
	s.mu.Lock()
	s.wallet = entity.Wallet{Status: entity.WalletUnlocked}
	s.mu.Unlock()

	_, ok := s.Send(context.Background(), "not-an-address", 1, 0, "")
	assert.False(t, ok)
	assert.Equal(t, "Invalid recipient address", s.Err())

	_, ok = s.Send(context.Background(), testAddress, 0, 0, "")
	assert.False(t, ok)
	assert.Equal(t, "Amount must be greater than zero", s.Err())

	assert.Equal(t, 0, transport.CallCount("wallet.send"))
}

func TestWalletStore_SendSchedulesDelayedBalanceRefresh(t *testing.T) {
	transport := bridgetest.NewFakeTransport()
	transport.Respond("wallet.send", map[string]any{
		"success":        true,
		"transaction_id": "at1sent",
	})
	transport.Respond("wallet.getBalance", map[string]any{
		"success": true,
		"balance": 41.5,
	})

	s := newWalletStore(transport, config.WalletConfig{})
	s.mu.Lock()
	s.wallet = entity.Wallet{Status: entity.WalletUnlocked, Balance: 50}
	s.mu.Unlock()

	var scheduledDelay time.Duration
	var scheduled func()
	s.schedule = func(d time.Duration, f func()) {
		scheduledDelay = d
		scheduled = f
	}

	txID, ok := s.Send(context.Background(), testAddress, 8, 0.5, "rent")
	require.True(t, ok)
	assert.Equal(t, "at1sent", txID)
	assert.Equal(t, balanceRefreshDelay, scheduledDelay)

	// Balance is untouched until the scheduled refresh fires.
	assert.Equal(t, 50.0, s.Snapshot().Balance)
	require.NotNil(t, scheduled)
	scheduled()
	assert.Equal(t, 41.5, s.Snapshot().Balance)
}

func TestWalletStore_CreateValidatesPassword(t *testing.T) {
	transport := bridgetest.NewFakeTransport()
	s := newWalletStore(transport, config.WalletConfig{})

	_, ok := s.Create(context.Background(), "short", "short")
	assert.False(t, ok)
	assert.Equal(t, "Password must be at least 8 characters", s.Err())

	_, ok = s.Create(context.Background(), "longenough", "different")
	assert.False(t, ok)
	assert.Equal(t, "Passwords do not match", s.Err())

	assert.Equal(t, 0, transport.CallCount("wallet.create"))
}

func TestWalletStore_CreateTransitionsToUnlocked(t *testing.T) {
	transport := bridgetest.NewFakeTransport()
	transport.Respond("wallet.create", map[string]any{
		"success":         true,
		"address":         testAddress,
		"recovery_phrase": "abandon ability able about above absent absorb abstract absurd abuse access accident",
	})
	transport.Respond("wallet.getBalance", map[string]any{
		"success": true,
		"balance": 0.0,
	})

	s := newWalletStore(transport, config.WalletConfig{})
	phrase, ok := s.Create(context.Background(), "correcthorse", "correcthorse")

	require.True(t, ok)
	assert.Contains(t, phrase, "abandon")
	w := s.Snapshot()
	assert.Equal(t, entity.WalletUnlocked, w.Status)
	assert.Equal(t, testAddress, w.Address)
}

func TestWalletStore_UnlockInvalidPasswordStaysLocked(t *testing.T) {
	transport := bridgetest.NewFakeTransport()
	transport.Respond("wallet.unlock", map[string]any{
		"success": false,
		"error":   "Invalid password",
	})

	s := newWalletStore(transport, config.WalletConfig{})
	s.mu.Lock()
	s.wallet = entity.Wallet{Status: entity.WalletLocked}
	s.mu.Unlock()

	ok := s.Unlock(context.Background(), "wrong")
	assert.False(t, ok)
	assert.Equal(t, "Invalid password", s.Err())
	assert.Equal(t, entity.WalletLocked, s.Snapshot().Status)
}

func TestWalletStore_LockClearsAddressAndBalance(t *testing.T) {
	transport := bridgetest.NewFakeTransport()
	s := newWalletStore(transport, config.WalletConfig{})
	s.mu.Lock()
	s.wallet = entity.Wallet{Status: entity.WalletUnlocked, Address: testAddress, Balance: 12}
	s.mu.Unlock()

	s.Lock(context.Background())

	w := s.Snapshot()
	assert.Equal(t, entity.WalletLocked, w.Status)
	assert.Empty(t, w.Address)
	assert.Zero(t, w.Balance)
}

func TestWalletStore_RefreshBalanceFailureIsSilentByDefault(t *testing.T) {
	transport := bridgetest.NewFakeTransport()
	transport.Respond("wallet.getBalance", map[string]any{
		"success": false,
		"error":   "node unreachable",
	})

	s := newWalletStore(transport, config.WalletConfig{})
	s.mu.Lock()
	s.wallet = entity.Wallet{Status: entity.WalletUnlocked, Balance: 7}
	s.mu.Unlock()

	s.RefreshBalance(context.Background())

	assert.Empty(t, s.Err())
	assert.Equal(t, 7.0, s.Snapshot().Balance)
}

func TestWalletStore_RefreshBalanceFailureSurfacedWhenConfigured(t *testing.T) {
	transport := bridgetest.NewFakeTransport()
	transport.Respond("wallet.getBalance", map[string]any{
		"success": false,
		"error":   "node unreachable",
	})

	s := newWalletStore(transport, config.WalletConfig{SurfaceRefreshErrors: true})
	s.mu.Lock()
	s.wallet = entity.Wallet{Status: entity.WalletUnlocked, Balance: 7}
	s.mu.Unlock()

	s.RefreshBalance(context.Background())

	assert.Equal(t, "node unreachable", s.Err())
	assert.Equal(t, 7.0, s.Snapshot().Balance)
}

func TestWalletStore_CheckStatusSeedsStateMachine(t *testing.T) {
	tests := []struct {
		name      string
		hasWallet bool
		isLocked  bool
		want      entity.WalletStatus
	}{
		{"no wallet", false, false, entity.WalletNone},
		{"locked", true, true, entity.WalletLocked},
		{"unlocked", true, false, entity.WalletUnlocked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := bridgetest.NewFakeTransport()
			transport.Respond("wallet.status", map[string]any{
				"success":    true,
				"has_wallet": tt.hasWallet,
				"is_locked":  tt.isLocked,
			})
			transport.Respond("wallet.getAddress", map[string]any{
				"success": true,
				"address": testAddress,
			})

			s := newWalletStore(transport, config.WalletConfig{})
			s.CheckStatus(context.Background())

			assert.Equal(t, tt.want, s.Snapshot().Status)
		})
	}
}

func TestWalletStore_TransportFailureSurfacesUnavailable(t *testing.T) {
	transport := bridgetest.NewFakeTransport()
	require.NoError(t, transport.Close())

	s := newWalletStore(transport, config.WalletConfig{})
	s.CheckStatus(context.Background())

	assert.Equal(t, "wallet API not available", s.Err())
}

func TestWalletStore_DeleteReturnsToNoWallet(t *testing.T) {
	transport := bridgetest.NewFakeTransport()
	s := newWalletStore(transport, config.WalletConfig{})
	s.mu.Lock()
	s.wallet = entity.Wallet{Status: entity.WalletUnlocked, Address: testAddress}
	s.mu.Unlock()

	require.True(t, s.Delete(context.Background(), "correcthorse"))
	assert.Equal(t, entity.WalletNone, s.Snapshot().Status)
}

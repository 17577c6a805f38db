// Package store contains the client-side state containers, one per domain.
// Stores are explicitly constructed and injected; there are no package-level
// singletons. Each store exclusively owns its collection, reconciles it
// against bridge responses, and surfaces expected failures as a store-level
// error string rather than a Go error.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/veilbrowser/veil/internal/bridge"
	"github.com/veilbrowser/veil/internal/config"
	"github.com/veilbrowser/veil/internal/domain/entity"
)

// ErrWalletLocked is the exact error surfaced when an operation requires an
// unlocked wallet.
const ErrWalletLocked = "Wallet is locked"

// balanceRefreshDelay is how long after a send the balance is re-fetched.
// The host returns before chain confirmation, so an immediate fetch would
// read the old balance; one second is an approximation, not a guarantee.
const balanceRefreshDelay = time.Second

// WalletStore owns the wallet lifecycle state machine and its snapshot
// data. All cryptography lives host-side; this store only sequences calls
// and mirrors results.
type WalletStore struct {
	client *bridge.Client
	cfg    config.WalletConfig
	log    zerolog.Logger

	// schedule runs f after d; replaced in tests to avoid real sleeps.
	schedule func(d time.Duration, f func())

	// refreshGroup collapses concurrent balance fetches. The delayed
	// post-send refresh can race a manual refresh from the UI.
	refreshGroup singleflight.Group

	mu     sync.RWMutex
	wallet entity.Wallet
	err    string
}

// NewWalletStore creates a wallet store.
func NewWalletStore(client *bridge.Client, cfg config.WalletConfig, log zerolog.Logger) *WalletStore {
	return &WalletStore{
		client: client,
		cfg:    cfg,
		log:    log.With().Str("component", "wallet-store").Logger(),
		schedule: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
		wallet: entity.Wallet{Status: entity.WalletNone},
	}
}

// Snapshot returns a copy of the current wallet state.
func (s *WalletStore) Snapshot() entity.Wallet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wallet
}

// Err returns the last store-level error string, empty when none.
func (s *WalletStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *WalletStore) setErr(msg string) {
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
}

// CheckStatus queries the host once at startup and seeds the state machine.
// An already unlocked wallet eagerly loads its address and balance.
func (s *WalletStore) CheckStatus(ctx context.Context) {
	res := s.client.Wallet.Status(ctx)
	if res.Failed() {
		s.setErr(res.Error)
		return
	}

	s.mu.Lock()
	switch {
	case !res.HasWallet:
		s.wallet = entity.Wallet{Status: entity.WalletNone}
	case res.IsLocked:
		s.wallet = entity.Wallet{Status: entity.WalletLocked}
	default:
		s.wallet.Status = entity.WalletUnlocked
	}
	s.err = ""
	unlocked := s.wallet.Status == entity.WalletUnlocked
	s.mu.Unlock()

	if unlocked {
		s.loadAddress(ctx)
		s.RefreshBalance(ctx)
	}
}

func (s *WalletStore) loadAddress(ctx context.Context) {
	res := s.client.Wallet.GetAddress(ctx)
	if res.Failed() {
		s.log.Warn().Str("error", res.Error).Msg("failed to load wallet address")
		return
	}
	s.mu.Lock()
	s.wallet.Address = res.Address
	s.mu.Unlock()
}

// validatePassword performs the local checks done before any host call.
func validatePassword(password, confirm string) string {
	if len(password) < entity.MinPasswordLen {
		return fmt.Sprintf("Password must be at least %d characters", entity.MinPasswordLen)
	}
	if password != confirm {
		return "Passwords do not match"
	}
	return ""
}

// Create generates a new wallet and transitions no-wallet → unlocked.
// Returns the recovery phrase exactly once; it is never stored.
func (s *WalletStore) Create(ctx context.Context, password, confirm string) (string, bool) {
	if msg := validatePassword(password, confirm); msg != "" {
		s.setErr(msg)
		return "", false
	}

	res := s.client.Wallet.Create(ctx, password)
	if res.Failed() {
		s.setErr(res.Error)
		return "", false
	}

	s.mu.Lock()
	s.wallet = entity.Wallet{Status: entity.WalletUnlocked, Address: res.Address}
	s.err = ""
	s.mu.Unlock()

	s.RefreshBalance(ctx)
	return res.RecoveryPhrase, true
}

// ImportKey imports a wallet from a private key string.
func (s *WalletStore) ImportKey(ctx context.Context, privateKey, password, confirm string) bool {
	if msg := validatePassword(password, confirm); msg != "" {
		s.setErr(msg)
		return false
	}
	if privateKey == "" {
		s.setErr("Private key is required")
		return false
	}

	res := s.client.Wallet.ImportKey(ctx, privateKey, password)
	return s.finishImport(ctx, res)
}

// ImportMnemonic imports a wallet from a recovery phrase.
func (s *WalletStore) ImportMnemonic(ctx context.Context, mnemonic, password, confirm string) bool {
	if msg := validatePassword(password, confirm); msg != "" {
		s.setErr(msg)
		return false
	}
	if mnemonic == "" {
		s.setErr("Recovery phrase is required")
		return false
	}

	res := s.client.Wallet.ImportMnemonic(ctx, mnemonic, password)
	return s.finishImport(ctx, res)
}

func (s *WalletStore) finishImport(ctx context.Context, res bridge.ImportResult) bool {
	if res.Failed() {
		s.setErr(res.Error)
		return false
	}

	s.mu.Lock()
	s.wallet = entity.Wallet{Status: entity.WalletUnlocked, Address: res.Address}
	s.err = ""
	s.mu.Unlock()

	s.RefreshBalance(ctx)
	return true
}

// Unlock transitions locked → unlocked. On an invalid password the host
// reports failure and the wallet stays locked.
func (s *WalletStore) Unlock(ctx context.Context, password string) bool {
	res := s.client.Wallet.Unlock(ctx, password)
	if res.Failed() {
		s.setErr(res.Error)
		return false
	}

	s.mu.Lock()
	s.wallet.Status = entity.WalletUnlocked
	s.wallet.Address = res.Address
	s.err = ""
	s.mu.Unlock()

	s.RefreshBalance(ctx)
	return true
}

// Lock transitions unlocked → locked. Address and balance are cleared
// immediately; the host is told to drop its keys in the background since
// the lock itself is a local state change.
func (s *WalletStore) Lock(ctx context.Context) {
	s.mu.Lock()
	if s.wallet.Status != entity.WalletUnlocked {
		s.mu.Unlock()
		return
	}
	s.wallet = entity.Wallet{Status: entity.WalletLocked}
	s.err = ""
	s.mu.Unlock()

	go func() {
		if res := s.client.Wallet.Lock(context.WithoutCancel(ctx)); res.Failed() {
			s.log.Warn().Str("error", res.Error).Msg("host-side lock failed")
		}
	}()
}

// RefreshBalance fetches the current balance. It is a no-op unless the
// wallet is unlocked. A failed refresh keeps the stale balance; whether the
// failure is surfaced is a config policy (surface_refresh_errors), default
// silent, so background polling never alarms the user over transient
// errors.
func (s *WalletStore) RefreshBalance(ctx context.Context) {
	s.mu.RLock()
	status := s.wallet.Status
	s.mu.RUnlock()
	if status != entity.WalletUnlocked {
		return
	}

	v, _, _ := s.refreshGroup.Do("balance", func() (any, error) {
		return s.client.Wallet.GetBalance(ctx), nil
	})
	res := v.(bridge.BalanceResult)

	s.mu.Lock()
	defer s.mu.Unlock()
	// The wallet may have locked while the call was in flight.
	if s.wallet.Status != entity.WalletUnlocked {
		return
	}
	if res.Failed() {
		if s.cfg.SurfaceRefreshErrors {
			s.err = res.Error
		} else {
			s.log.Debug().Str("error", res.Error).Msg("balance refresh failed, keeping stale value")
		}
		return
	}
	s.wallet.Balance = res.Balance
}

// Send submits a transfer. It fails fast with ErrWalletLocked before any
// host call when the wallet is not unlocked. On success a delayed balance
// refresh is scheduled instead of awaiting chain confirmation.
func (s *WalletStore) Send(ctx context.Context, to string, amount, fee float64, memo string) (string, bool) {
	s.mu.RLock()
	status := s.wallet.Status
	s.mu.RUnlock()
	if status != entity.WalletUnlocked {
		s.setErr(ErrWalletLocked)
		return "", false
	}

	if !entity.IsValidAddress(to) {
		s.setErr("Invalid recipient address")
		return "", false
	}
	if amount <= 0 {
		s.setErr("Amount must be greater than zero")
		return "", false
	}

	res := s.client.Wallet.Send(ctx, bridge.SendParams{To: to, Amount: amount, Fee: fee, Memo: memo})
	if res.Failed() {
		s.setErr(res.Error)
		return "", false
	}

	s.setErr("")
	s.schedule(balanceRefreshDelay, func() {
		s.RefreshBalance(context.WithoutCancel(ctx))
	})
	return res.TransactionID, true
}

// ExportPrivateKey exports the private key after password verification.
func (s *WalletStore) ExportPrivateKey(ctx context.Context, password string) (string, bool) {
	return s.export(s.client.Wallet.ExportPrivateKey(ctx, password))
}

// ExportViewKey exports the view key after password verification.
func (s *WalletStore) ExportViewKey(ctx context.Context, password string) (string, bool) {
	return s.export(s.client.Wallet.ExportViewKey(ctx, password))
}

func (s *WalletStore) export(res bridge.ExportResult) (string, bool) {
	if res.Failed() {
		s.setErr(res.Error)
		return "", false
	}
	s.setErr("")
	return res.Key, true
}

// Delete removes the wallet entirely and returns to no-wallet.
func (s *WalletStore) Delete(ctx context.Context, password string) bool {
	res := s.client.Wallet.Delete(ctx, password)
	if res.Failed() {
		s.setErr(res.Error)
		return false
	}

	s.mu.Lock()
	s.wallet = entity.Wallet{Status: entity.WalletNone}
	s.err = ""
	s.mu.Unlock()
	return true
}

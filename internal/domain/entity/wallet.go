package entity

import "strings"

// WalletStatus is the wallet lifecycle state machine:
//
//	no-wallet → unlocked   (create / import)
//	locked    → unlocked   (unlock with correct password)
//	unlocked  → locked     (explicit lock, local-only)
//	locked|unlocked → no-wallet (delete)
//
// Address and balance are only meaningful in the unlocked state.
type WalletStatus string

const (
	// WalletNone means no wallet has been created or imported yet.
	WalletNone WalletStatus = "no-wallet"

	// WalletLocked means a wallet exists but its keys are inaccessible.
	WalletLocked WalletStatus = "locked"

	// WalletUnlocked means keys are loaded host-side and address/balance
	// are populated.
	WalletUnlocked WalletStatus = "unlocked"
)

// CanTransition reports whether moving from s to next is a legal wallet
// lifecycle transition.
func (s WalletStatus) CanTransition(next WalletStatus) bool {
	switch s {
	case WalletNone:
		return next == WalletUnlocked
	case WalletLocked:
		return next == WalletUnlocked || next == WalletNone
	case WalletUnlocked:
		return next == WalletLocked || next == WalletNone
	}
	return false
}

// Wallet is the client-side snapshot of wallet state.
type Wallet struct {
	Status  WalletStatus
	Address string
	Balance float64
}

// addressPrefix is the bech32-style prefix Aleo account addresses carry.
const addressPrefix = "aleo1"

// addressLen is the full length of an encoded Aleo address.
const addressLen = 63

// IsValidAddress performs the client-side format check done before any
// host call. The host performs the authoritative validation.
func IsValidAddress(addr string) bool {
	if len(addr) != addressLen || !strings.HasPrefix(addr, addressPrefix) {
		return false
	}
	for _, r := range addr[len(addressPrefix):] {
		if !strings.ContainsRune("acdefghjklmnpqrstuvwxyz023456789", r) {
			return false
		}
	}
	return true
}

// MinPasswordLen is the minimum accepted wallet password length.
const MinPasswordLen = 8

// RecoveryPhraseWords is the number of words in a generated recovery phrase.
const RecoveryPhraseWords = 12

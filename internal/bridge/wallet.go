package bridge

import "context"

// WalletAPI wraps the wallet.* host namespace. All cryptography, key
// storage, and chain submission happen host-side; these methods move plain
// data only.
type WalletAPI struct {
	c *Client
}

// StatusResult reports wallet existence and lock state.
type StatusResult struct {
	Result
	HasWallet bool `json:"has_wallet"`
	IsLocked  bool `json:"is_locked"`
}

// CreateResult carries the new wallet's address and recovery phrase.
type CreateResult struct {
	Result
	Address        string `json:"address,omitempty"`
	RecoveryPhrase string `json:"recovery_phrase,omitempty"`
}

// ImportResult carries the imported wallet's address.
type ImportResult struct {
	Result
	Address string `json:"address,omitempty"`
}

// AddressResult carries the unlocked wallet's address.
type AddressResult struct {
	Result
	Address string `json:"address,omitempty"`
}

// BalanceResult carries the wallet balance in credits.
type BalanceResult struct {
	Result
	Balance float64 `json:"balance"`
}

// SendResult carries the submitted transaction id.
type SendResult struct {
	Result
	TransactionID string `json:"transaction_id,omitempty"`
}

// ExportResult carries an exported key. Handle with care; never logged.
type ExportResult struct {
	Result
	Key string `json:"key,omitempty"`
}

type passwordParams struct {
	Password string `json:"password"`
}

// Status queries wallet existence and lock state.
func (w *WalletAPI) Status(ctx context.Context) StatusResult {
	var out StatusResult
	if !w.c.call(ctx, "wallet.status", nil, &out) {
		return StatusResult{Result: unavailable("wallet")}
	}
	return out
}

// Create generates a new wallet protected by password.
func (w *WalletAPI) Create(ctx context.Context, password string) CreateResult {
	var out CreateResult
	if !w.c.call(ctx, "wallet.create", passwordParams{Password: password}, &out) {
		return CreateResult{Result: unavailable("wallet")}
	}
	return out
}

type importKeyParams struct {
	PrivateKey string `json:"private_key"`
	Password   string `json:"password"`
}

// ImportKey imports a wallet from a raw private key.
func (w *WalletAPI) ImportKey(ctx context.Context, privateKey, password string) ImportResult {
	var out ImportResult
	if !w.c.call(ctx, "wallet.importKey", importKeyParams{PrivateKey: privateKey, Password: password}, &out) {
		return ImportResult{Result: unavailable("wallet")}
	}
	return out
}

type importMnemonicParams struct {
	Mnemonic string `json:"mnemonic"`
	Password string `json:"password"`
}

// ImportMnemonic imports a wallet from a recovery phrase.
func (w *WalletAPI) ImportMnemonic(ctx context.Context, mnemonic, password string) ImportResult {
	var out ImportResult
	if !w.c.call(ctx, "wallet.importMnemonic", importMnemonicParams{Mnemonic: mnemonic, Password: password}, &out) {
		return ImportResult{Result: unavailable("wallet")}
	}
	return out
}

// Unlock decrypts the wallet host-side. An invalid password comes back as a
// host-reported failure; the wallet stays locked.
func (w *WalletAPI) Unlock(ctx context.Context, password string) AddressResult {
	var out AddressResult
	if !w.c.call(ctx, "wallet.unlock", passwordParams{Password: password}, &out) {
		return AddressResult{Result: unavailable("wallet")}
	}
	return out
}

// Lock discards the decrypted keys host-side.
func (w *WalletAPI) Lock(ctx context.Context) Result {
	var out Result
	if !w.c.call(ctx, "wallet.lock", nil, &out) {
		return unavailable("wallet")
	}
	return out
}

// GetAddress returns the unlocked wallet's address.
func (w *WalletAPI) GetAddress(ctx context.Context) AddressResult {
	var out AddressResult
	if !w.c.call(ctx, "wallet.getAddress", nil, &out) {
		return AddressResult{Result: unavailable("wallet")}
	}
	return out
}

// GetBalance returns the current balance.
func (w *WalletAPI) GetBalance(ctx context.Context) BalanceResult {
	var out BalanceResult
	if !w.c.call(ctx, "wallet.getBalance", nil, &out) {
		return BalanceResult{Result: unavailable("wallet")}
	}
	return out
}

// SendParams are the plain-data arguments for a transfer.
type SendParams struct {
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
	Fee    float64 `json:"fee,omitempty"`
	Memo   string  `json:"memo,omitempty"`
}

// Send submits a transfer. Confirmation is not awaited; the host returns as
// soon as the transaction is accepted for processing.
func (w *WalletAPI) Send(ctx context.Context, params SendParams) SendResult {
	var out SendResult
	if !w.c.call(ctx, "wallet.send", params, &out) {
		return SendResult{Result: unavailable("wallet")}
	}
	return out
}

// ExportPrivateKey exports the private key after password verification.
func (w *WalletAPI) ExportPrivateKey(ctx context.Context, password string) ExportResult {
	var out ExportResult
	if !w.c.call(ctx, "wallet.exportPrivateKey", passwordParams{Password: password}, &out) {
		return ExportResult{Result: unavailable("wallet")}
	}
	return out
}

// ExportViewKey exports the view key after password verification.
func (w *WalletAPI) ExportViewKey(ctx context.Context, password string) ExportResult {
	var out ExportResult
	if !w.c.call(ctx, "wallet.exportViewKey", passwordParams{Password: password}, &out) {
		return ExportResult{Result: unavailable("wallet")}
	}
	return out
}

// Delete removes the wallet entirely after password verification.
func (w *WalletAPI) Delete(ctx context.Context, password string) Result {
	var out Result
	if !w.c.call(ctx, "wallet.delete", passwordParams{Password: password}, &out) {
		return unavailable("wallet")
	}
	return out
}

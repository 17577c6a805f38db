package bridge

import (
	"context"

	"github.com/veilbrowser/veil/internal/domain/entity"
)

// DAppAPI wraps the dapp.* host namespace: the connect/sign/transact
// approval flow for embedded pages requesting wallet access.
type DAppAPI struct {
	c *Client
}

// TransactionResult carries a submitted transaction id.
type TransactionResult struct {
	Result
	TransactionID string `json:"transaction_id,omitempty"`
}

// TransactionStatusResult carries the chain-side status of a transaction:
// "pending", "finalized", or "rejected".
type TransactionStatusResult struct {
	Result
	Status string `json:"status,omitempty"`
}

// RequestTransactionParams are the plain-data arguments of a program call.
// Inputs keep the string-encoded typed-literal convention ("123field",
// "456u32"); the receiving program parses those suffixes.
type RequestTransactionParams struct {
	ProgramID    string           `json:"program_id"`
	FunctionName string           `json:"function_name"`
	Inputs       []entity.Literal `json:"inputs"`
	Fee          float64          `json:"fee"`
	Origin       string           `json:"origin"`
}

// RequestTransaction submits a program execution request for user approval
// and chain submission.
func (d *DAppAPI) RequestTransaction(ctx context.Context, params RequestTransactionParams) TransactionResult {
	var out TransactionResult
	if !d.c.call(ctx, "dapp.requestTransaction", params, &out) {
		return TransactionResult{Result: unavailable("dapp")}
	}
	return out
}

type respondPermissionParams struct {
	RequestID string                    `json:"request_id"`
	Decision  entity.PermissionDecision `json:"decision"`
	Remember  bool                      `json:"remember,omitempty"`
}

// RespondToPermission answers a pending permission request.
func (d *DAppAPI) RespondToPermission(ctx context.Context, requestID string, decision entity.PermissionDecision, remember bool) Result {
	var out Result
	if !d.c.call(ctx, "dapp.respondToPermission", respondPermissionParams{
		RequestID: requestID,
		Decision:  decision,
		Remember:  remember,
	}, &out) {
		return unavailable("dapp")
	}
	return out
}

type txStatusParams struct {
	TransactionID string `json:"transaction_id"`
}

// TransactionStatus polls a submitted transaction. Ledger finalization is
// polled, not pushed.
func (d *DAppAPI) TransactionStatus(ctx context.Context, txID string) TransactionStatusResult {
	var out TransactionStatusResult
	if !d.c.call(ctx, "dapp.transactionStatus", txStatusParams{TransactionID: txID}, &out) {
		return TransactionStatusResult{Result: unavailable("dapp")}
	}
	return out
}

// =============================
// File: internal/dex/pumpfun/interfaces.go
// =============================
package pumpfun

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"pumptrader/internal/blockchain/solbc"
)

// Client is the slice of the RPC surface the trading flows depend on.
// *solbc.Client satisfies it.
type Client interface {
	GetRecentBlockhash(ctx context.Context) (solana.Hash, error)
	GetAccountInfoWithCommitment(ctx context.Context, pubkey solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetAccountInfoResult, error)
	GetBalance(ctx context.Context, pubkey solana.PublicKey, commitment rpc.CommitmentType) (uint64, error)
	GetTokenAccountBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetTokenAccountBalanceResult, error)
	SendTransactionWithOpts(ctx context.Context, tx *solana.Transaction, opts solbc.TransactionOptions) (solana.Signature, error)
	WaitForTransactionConfirmation(ctx context.Context, signature solana.Signature, commitment rpc.CommitmentType) error
}

var _ Client = (*solbc.Client)(nil)

// =============================
// File: internal/dex/pumpfun/transactions.go
// =============================
package pumpfun

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	"pumptrader/internal/blockchain/solbc"
)

// executeTransactionWithRetry signs and submits the instructions, retrying
// transient failures with exponential backoff. Slippage rejections and
// other deterministic failures abort immediately.
func (d *DEX) executeTransactionWithRetry(ctx context.Context, instructions []solana.Instruction) (solana.Signature, error) {
	op := func() (solana.Signature, error) {
		tx, err := d.createSignedTransaction(ctx, instructions)
		if err != nil {
			return solana.Signature{}, err
		}
		return d.submitAndConfirmTransaction(ctx, tx)
	}

	return backoff.Retry(
		ctx,
		op,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(15*time.Second),
	)
}

func (d *DEX) createSignedTransaction(ctx context.Context, instructions []solana.Instruction) (*solana.Transaction, error) {
	blockhash, err := d.client.GetRecentBlockhash(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent blockhash: %w", err)
	}

	tx, err := solana.NewTransaction(instructions, blockhash, solana.TransactionPayer(d.wallet.PublicKey))
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to create transaction: %w", err))
	}

	if err := d.wallet.SignTransaction(tx); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to sign transaction: %w", err))
	}

	return tx, nil
}

func (d *DEX) submitAndConfirmTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	sig, err := d.client.SendTransactionWithOpts(ctx, tx, solbc.TransactionOptions{
		SkipPreflight:       true,
		PreflightCommitment: d.config.PrimaryCommitment,
	})
	if err != nil {
		if IsSlippageExceededError(err) {
			return solana.Signature{}, backoff.Permanent(err)
		}
		return solana.Signature{}, fmt.Errorf("failed to send transaction: %w", err)
	}

	d.logger.Debug("Transaction sent, awaiting confirmation",
		zap.String("signature", sig.String()))

	if err := d.client.WaitForTransactionConfirmation(ctx, sig, rpc.CommitmentConfirmed); err != nil {
		if IsSlippageExceededError(err) {
			return solana.Signature{}, backoff.Permanent(err)
		}
		return sig, fmt.Errorf("transaction %s not confirmed: %w", sig.String(), err)
	}

	return sig, nil
}

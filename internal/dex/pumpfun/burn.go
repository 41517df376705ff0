// =============================
// File: internal/dex/pumpfun/burn.go
// =============================
package pumpfun

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"go.uber.org/zap"

	"pumptrader/internal/blockchain/solbc"
)

// BurnResult reports a confirmed burn.
type BurnResult struct {
	Signature    solana.Signature
	AmountBurned uint64 // base token units destroyed
}

// ExecuteBurn permanently destroys amount base units of mint from the
// wallet's token account. If amount is zero the wallet's entire balance
// of the token is burned.
func (d *DEX) ExecuteBurn(ctx context.Context, mint solana.PublicKey, amount uint64) (*BurnResult, error) {
	tokenProgram, err := d.resolveTokenProgram(ctx, mint)
	if err != nil {
		return nil, err
	}

	ata, err := d.wallet.GetATA(mint, tokenProgram)
	if err != nil {
		return nil, fmt.Errorf("failed to derive token account: %w", err)
	}

	balance, err := d.tokenAccountBalance(ctx, ata, mint)
	if err != nil {
		return nil, err
	}
	if amount == 0 {
		amount = balance
	}
	if amount == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoTokenAccount, mint.String())
	}
	if amount > balance {
		return nil, fmt.Errorf("burn amount %d exceeds token balance %d", amount, balance)
	}

	burnIx, err := BuildBurnInstruction(tokenProgram, ata, mint, d.wallet.PublicKey, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to build burn instruction: %w", err)
	}

	instructions := []solana.Instruction{
		computebudget.NewSetComputeUnitLimitInstruction(d.config.ComputeUnitLimit).Build(),
		computebudget.NewSetComputeUnitPriceInstruction(d.config.ComputeUnitPrice).Build(),
		burnIx,
	}

	sig, err := d.executeTransactionWithRetry(ctx, instructions)
	if err != nil {
		return nil, err
	}

	d.logger.Info("Burn confirmed",
		zap.String("signature", sig.String()),
		zap.String("mint", mint.String()),
		zap.Uint64("amount", amount))

	return &BurnResult{Signature: sig, AmountBurned: amount}, nil
}

// tokenAccountBalance returns the raw base unit balance of the wallet's
// token account. A missing account means there is nothing to burn.
func (d *DEX) tokenAccountBalance(ctx context.Context, ata, mint solana.PublicKey) (uint64, error) {
	result, err := d.client.GetTokenAccountBalance(ctx, ata, d.config.PrimaryCommitment)
	if err != nil {
		if solbc.IsAccountNotFoundError(err) {
			return 0, fmt.Errorf("%w: %s", ErrNoTokenAccount, mint.String())
		}
		return 0, fmt.Errorf("failed to get token account balance: %w", err)
	}
	if result == nil || result.Value == nil {
		return 0, fmt.Errorf("%w: %s", ErrNoTokenAccount, mint.String())
	}

	balance, err := strconv.ParseUint(result.Value.Amount, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse token balance %q: %w", result.Value.Amount, err)
	}
	return balance, nil
}

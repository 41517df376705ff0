// =============================
// File: internal/dex/pumpfun/trade.go
// =============================
package pumpfun

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"go.uber.org/zap"

	"pumptrader/internal/blockchain/solbc"
	"pumptrader/internal/wallet"
)

// balanceBufferLamports is kept on top of the maximum purchase cost to pay
// the transaction fee and the ATA rent when the token account is created.
const balanceBufferLamports = 3_000_000

// DEX executes trades against the Pump.fun bonding curve program.
type DEX struct {
	client Client
	wallet *wallet.Wallet
	config *Config
	logger *zap.Logger
}

// NewDEX creates a Pump.fun trading client.
func NewDEX(client Client, w *wallet.Wallet, cfg *Config, logger *zap.Logger) (*DEX, error) {
	if client == nil {
		return nil, fmt.Errorf("client is required")
	}
	if w == nil {
		return nil, fmt.Errorf("wallet is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &DEX{
		client: client,
		wallet: w,
		config: cfg,
		logger: logger.Named("pumpfun"),
	}, nil
}

// BuyResult reports a confirmed purchase.
type BuyResult struct {
	Signature   solana.Signature
	TokenAmount uint64 // base token units bought
	SolSpent    uint64 // lamports spent before fees, solIn
	MaxSolCost  uint64 // lamport ceiling embedded in the instruction
}

// ExecuteBuy purchases tokens on the mint's bonding curve for solIn
// lamports, tolerating up to slippagePercent of price movement between
// quoting and execution. All precondition failures surface before any
// lamport leaves the wallet.
func (d *DEX) ExecuteBuy(ctx context.Context, mint solana.PublicKey, solIn uint64, slippagePercent float64) (*BuyResult, error) {
	if solIn == 0 {
		return nil, fmt.Errorf("purchase amount must be positive")
	}

	globalAddr, _, err := DeriveGlobal(d.config.ProgramID)
	if err != nil {
		return nil, err
	}
	global, err := FetchGlobalState(ctx, d.client, d.config, globalAddr, d.logger)
	if err != nil {
		return nil, err
	}

	curveAddr, _, err := DeriveBondingCurve(d.config.ProgramID, mint)
	if err != nil {
		return nil, err
	}
	curve, err := FetchBondingCurve(ctx, d.client, d.config, curveAddr, d.logger)
	if err != nil {
		return nil, err
	}
	if curve.Complete {
		return nil, fmt.Errorf("%w: %s", ErrCurveComplete, mint.String())
	}

	tokenAmount, err := TokensOutForSol(curve, solIn, global.FeeBasisPoints)
	if err != nil {
		return nil, fmt.Errorf("failed to price purchase: %w", err)
	}
	if tokenAmount == 0 {
		return nil, fmt.Errorf("purchase of %d lamports yields zero tokens", solIn)
	}
	maxSolCost := MaxSolCost(solIn, slippagePercent)

	d.logger.Info("Quoted purchase",
		zap.String("mint", mint.String()),
		zap.Uint64("sol_in", solIn),
		zap.Uint64("token_amount", tokenAmount),
		zap.Uint64("max_sol_cost", maxSolCost),
		zap.Float64("spot_price_sol", SpotPrice(curve)))

	balance, err := d.client.GetBalance(ctx, d.wallet.PublicKey, d.config.PrimaryCommitment)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet balance: %w", err)
	}
	if balance < maxSolCost+balanceBufferLamports {
		return nil, fmt.Errorf("%w: have %d lamports, need %d",
			ErrInsufficientFunds, balance, maxSolCost+balanceBufferLamports)
	}

	tokenProgram, err := d.resolveTokenProgram(ctx, mint)
	if err != nil {
		return nil, err
	}

	userATA, err := d.wallet.GetATA(mint, tokenProgram)
	if err != nil {
		return nil, fmt.Errorf("failed to derive token account: %w", err)
	}
	needATA, err := d.needsTokenAccount(ctx, userATA)
	if err != nil {
		return nil, err
	}

	accounts, err := ResolveBuyAccounts(d.config, mint, d.wallet.PublicKey, tokenProgram, global, curve)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve buy accounts: %w", err)
	}

	instructions, err := d.buildPurchaseInstructions(accounts, mint, tokenProgram, tokenAmount, maxSolCost, needATA)
	if err != nil {
		return nil, err
	}

	sig, err := d.executeTransactionWithRetry(ctx, instructions)
	if err != nil {
		if IsSlippageExceededError(err) {
			return nil, &SlippageExceededError{
				SlippagePercent: slippagePercent,
				MaxSolCost:      maxSolCost,
				OriginalError:   err,
			}
		}
		return nil, err
	}

	d.logger.Info("Purchase confirmed",
		zap.String("signature", sig.String()),
		zap.String("mint", mint.String()),
		zap.Uint64("token_amount", tokenAmount))

	return &BuyResult{
		Signature:   sig,
		TokenAmount: tokenAmount,
		SolSpent:    solIn,
		MaxSolCost:  maxSolCost,
	}, nil
}

// buildPurchaseInstructions assembles the purchase transaction body in
// execution order: compute budget, optional token account creation, buy.
func (d *DEX) buildPurchaseInstructions(accounts *BuyAccounts, mint, tokenProgram solana.PublicKey, tokenAmount, maxSolCost uint64, createATA bool) ([]solana.Instruction, error) {
	instructions := []solana.Instruction{
		computebudget.NewSetComputeUnitLimitInstruction(d.config.ComputeUnitLimit).Build(),
		computebudget.NewSetComputeUnitPriceInstruction(d.config.ComputeUnitPrice).Build(),
	}

	if createATA {
		createIx, err := d.wallet.CreateAssociatedTokenAccountIdempotentInstruction(mint, tokenProgram)
		if err != nil {
			return nil, fmt.Errorf("failed to build create token account instruction: %w", err)
		}
		instructions = append(instructions, createIx)
	}

	buyIx, err := BuildBuyInstruction(d.config.ProgramID, accounts, tokenAmount, maxSolCost)
	if err != nil {
		return nil, fmt.Errorf("failed to build buy instruction: %w", err)
	}
	return append(instructions, buyIx), nil
}

// resolveTokenProgram reads the mint account and returns its owning token
// program: classic SPL Token or Token-2022.
func (d *DEX) resolveTokenProgram(ctx context.Context, mint solana.PublicKey) (solana.PublicKey, error) {
	info, err := d.client.GetAccountInfoWithCommitment(ctx, mint, d.config.PrimaryCommitment)
	if err != nil {
		if solbc.IsAccountNotFoundError(err) {
			return solana.PublicKey{}, fmt.Errorf("%w: %s", ErrMintNotFound, mint.String())
		}
		return solana.PublicKey{}, fmt.Errorf("failed to get mint account: %w", err)
	}

	owner := info.Value.Owner
	if !owner.Equals(solana.TokenProgramID) && !owner.Equals(solana.Token2022ProgramID) {
		return solana.PublicKey{}, fmt.Errorf("mint %s is owned by %s, not a token program",
			mint.String(), owner.String())
	}
	return owner, nil
}

// needsTokenAccount reports whether the given ATA does not exist yet.
func (d *DEX) needsTokenAccount(ctx context.Context, ata solana.PublicKey) (bool, error) {
	_, err := d.client.GetAccountInfoWithCommitment(ctx, ata, d.config.PrimaryCommitment)
	if err != nil {
		if solbc.IsAccountNotFoundError(err) {
			return true, nil
		}
		return false, fmt.Errorf("failed to check token account: %w", err)
	}
	return false, nil
}

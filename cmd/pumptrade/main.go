// ====================================
// File: cmd/pumptrade/main.go
// ====================================
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"pumptrader/internal/blockchain/solbc"
	"pumptrader/internal/config"
	"pumptrader/internal/dex/pumpfun"
	"pumptrader/internal/logger"
	"pumptrader/internal/wallet"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; the environment itself always wins.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		return fmt.Errorf("usage: pumptrade <buy|burn> [flags]")
	}
	command := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Init(cfg.DebugLogging, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch command {
	case "buy":
		return runBuy(ctx, cfg, log, os.Args[2:])
	case "burn":
		return runBurn(ctx, cfg, log, os.Args[2:])
	default:
		return fmt.Errorf("unknown command %q: expected buy or burn", command)
	}
}

// addOverrideFlags registers the flags that override environment-sourced
// connection settings for a single invocation.
func addOverrideFlags(fs *flag.FlagSet, cfg *config.Config) {
	fs.Func("rpc-url", "RPC endpoint (overrides PUMPTRADE_RPC_URL)", func(s string) error {
		cfg.RPCURL = s
		return nil
	})
	fs.Func("private-key", "base58 private key (overrides PUMPTRADE_PRIVATE_KEY)", func(s string) error {
		cfg.PrivateKey = s
		return nil
	})
}

func buildDEX(cfg *config.Config, log *zap.Logger) (*pumpfun.DEX, error) {
	w, err := wallet.NewWallet(cfg.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}
	log.Info("Wallet loaded", zap.String("pubkey", w.String()))

	client := solbc.NewClient(cfg.RPCURL, log)

	dexCfg, err := dexConfig(cfg)
	if err != nil {
		return nil, err
	}
	return pumpfun.NewDEX(client, w, dexCfg, log)
}

// dexConfig translates the flat environment configuration into the trading
// client's config, keeping the mainnet defaults where nothing is set.
func dexConfig(cfg *config.Config) (*pumpfun.Config, error) {
	dexCfg := pumpfun.DefaultConfig()

	if cfg.PumpProgramID != "" {
		programID, err := solana.PublicKeyFromBase58(cfg.PumpProgramID)
		if err != nil {
			return nil, fmt.Errorf("invalid pump_program_id: %w", err)
		}
		dexCfg.ProgramID = programID
	}
	if cfg.FeeProgramID != "" {
		feeProgramID, err := solana.PublicKeyFromBase58(cfg.FeeProgramID)
		if err != nil {
			return nil, fmt.Errorf("invalid fee_program_id: %w", err)
		}
		dexCfg.FeeProgramID = feeProgramID
	}

	primary, err := pumpfun.ParseCommitment(cfg.PrimaryCommitment)
	if err != nil {
		return nil, err
	}
	fallback, err := pumpfun.ParseCommitment(cfg.FallbackCommitment)
	if err != nil {
		return nil, err
	}
	dexCfg.PrimaryCommitment = primary
	dexCfg.FallbackCommitment = fallback
	dexCfg.ComputeUnitLimit = cfg.ComputeUnitLimit
	dexCfg.ComputeUnitPrice = cfg.ComputeUnitPrice

	return dexCfg, nil
}

func runBuy(ctx context.Context, cfg *config.Config, log *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("buy", flag.ExitOnError)
	mintFlag := fs.String("mint", "", "token mint address (required)")
	solFlag := fs.Float64("sol", 0, "amount of SOL to spend, e.g. 0.05 (required)")
	slippageFlag := fs.Float64("slippage", 1.0, "slippage tolerance in percent")
	addOverrideFlags(fs, cfg)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *mintFlag == "" || *solFlag <= 0 {
		fs.Usage()
		return fmt.Errorf("both -mint and -sol are required")
	}
	mint, err := solana.PublicKeyFromBase58(*mintFlag)
	if err != nil {
		return fmt.Errorf("invalid mint address: %w", err)
	}
	lamports := uint64(*solFlag * float64(solana.LAMPORTS_PER_SOL))

	d, err := buildDEX(cfg, log)
	if err != nil {
		return err
	}

	result, err := d.ExecuteBuy(ctx, mint, lamports, *slippageFlag)
	if err != nil {
		return err
	}

	fmt.Printf("signature: %s\n", result.Signature)
	fmt.Printf("tokens bought: %d\n", result.TokenAmount)
	fmt.Printf("sol spent: %d lamports (max allowed %d)\n", result.SolSpent, result.MaxSolCost)
	return nil
}

func runBurn(ctx context.Context, cfg *config.Config, log *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("burn", flag.ExitOnError)
	mintFlag := fs.String("mint", "", "token mint address (required)")
	amountFlag := fs.Uint64("amount", 0, "base units to burn (0 burns the full balance)")
	addOverrideFlags(fs, cfg)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *mintFlag == "" {
		fs.Usage()
		return fmt.Errorf("-mint is required")
	}
	mint, err := solana.PublicKeyFromBase58(*mintFlag)
	if err != nil {
		return fmt.Errorf("invalid mint address: %w", err)
	}

	d, err := buildDEX(cfg, log)
	if err != nil {
		return err
	}

	result, err := d.ExecuteBurn(ctx, mint, *amountFlag)
	if err != nil {
		return err
	}

	fmt.Printf("signature: %s\n", result.Signature)
	fmt.Printf("tokens burned: %d\n", result.AmountBurned)
	return nil
}

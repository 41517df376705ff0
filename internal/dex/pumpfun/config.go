// =============================
// File: internal/dex/pumpfun/config.go
// =============================
package pumpfun

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// Known protocol addresses.
var (
	// Program ID for the Pump.fun bonding curve program.
	PumpFunProgramID = solana.MustPublicKeyFromBase58("6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P")

	// Program ID for the Pump.fun fee management program.
	PumpFunFeeProgramID = solana.MustPublicKeyFromBase58("pfeeUxB6jkeY1Hxd7CsFCAjcbHA9rWtchMGdZ6VojVZ")
)

// PDA seeds used by the bonding curve program.
const (
	seedGlobal                  = "global"
	seedBondingCurve            = "bonding-curve"
	seedCreatorVault            = "creator-vault"
	seedEventAuthority          = "__event_authority"
	seedGlobalVolumeAccumulator = "global_volume_accumulator"
	seedUserVolumeAccumulator   = "user_volume_accumulator"
	seedFeeConfig               = "fee_config"
)

// Config holds the per-process settings for the Pump.fun client.
type Config struct {
	// Protocol addresses. ProgramID may be overridden for test validators.
	ProgramID    solana.PublicKey
	FeeProgramID solana.PublicKey

	// Commitment pair for bonding curve lookups: the primary level is tried
	// first; absence there triggers one retry at the fallback level to cover
	// freshly created curves that have not propagated to all replicas.
	PrimaryCommitment  rpc.CommitmentType
	FallbackCommitment rpc.CommitmentType

	// Compute budget applied to every transaction.
	ComputeUnitLimit uint32
	ComputeUnitPrice uint64 // micro-lamports per compute unit
}

// DefaultConfig returns the mainnet configuration.
func DefaultConfig() *Config {
	return &Config{
		ProgramID:          PumpFunProgramID,
		FeeProgramID:       PumpFunFeeProgramID,
		PrimaryCommitment:  rpc.CommitmentConfirmed,
		FallbackCommitment: rpc.CommitmentProcessed,
		ComputeUnitLimit:   200_000,
		ComputeUnitPrice:   5_000,
	}
}

// ParseCommitment converts a configuration string into an RPC commitment level.
func ParseCommitment(s string) (rpc.CommitmentType, error) {
	switch s {
	case "processed":
		return rpc.CommitmentProcessed, nil
	case "confirmed":
		return rpc.CommitmentConfirmed, nil
	case "finalized":
		return rpc.CommitmentFinalized, nil
	default:
		return "", fmt.Errorf("unknown commitment level: %q", s)
	}
}

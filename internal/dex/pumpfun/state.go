// =============================
// File: internal/dex/pumpfun/state.go
// =============================
package pumpfun

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"pumptrader/internal/blockchain/solbc"
)

// GlobalState is the program-wide config account of the bonding curve
// program. Created once by the program; this client only reads it.
type GlobalState struct {
	Discriminator               [8]byte
	Initialized                 bool
	Authority                   solana.PublicKey
	FeeRecipient                solana.PublicKey
	InitialVirtualTokenReserves uint64
	InitialVirtualSolReserves   uint64
	InitialRealTokenReserves    uint64
	TokenTotalSupply            uint64
	FeeBasisPoints              uint64
}

// BondingCurve is the per-mint market account. Virtual reserves drive
// pricing; Complete marks a graduated market that no longer trades here.
type BondingCurve struct {
	Discriminator        [8]byte
	VirtualTokenReserves uint64
	VirtualSolReserves   uint64
	RealTokenReserves    uint64
	RealSolReserves      uint64
	TokenTotalSupply     uint64
	Complete             bool
	Creator              solana.PublicKey
}

// Fixed account layouts: 8-byte discriminator, then fields in declaration
// order, u64 little-endian, booleans as single bytes, keys as 32 bytes.
const (
	globalStateSize  = 8 + 1 + 32 + 32 + 5*8
	bondingCurveSize = 8 + 5*8 + 1 + 32
)

// DecodeGlobalState parses a raw global config account payload.
func DecodeGlobalState(data []byte) (*GlobalState, error) {
	if len(data) < globalStateSize {
		return nil, fmt.Errorf("global state data too short: %d bytes, need %d", len(data), globalStateSize)
	}

	state := &GlobalState{}
	copy(state.Discriminator[:], data[0:8])
	state.Initialized = data[8] != 0
	state.Authority = solana.PublicKeyFromBytes(data[9:41])
	state.FeeRecipient = solana.PublicKeyFromBytes(data[41:73])

	offset := 73
	state.InitialVirtualTokenReserves = binary.LittleEndian.Uint64(data[offset : offset+8])
	offset += 8
	state.InitialVirtualSolReserves = binary.LittleEndian.Uint64(data[offset : offset+8])
	offset += 8
	state.InitialRealTokenReserves = binary.LittleEndian.Uint64(data[offset : offset+8])
	offset += 8
	state.TokenTotalSupply = binary.LittleEndian.Uint64(data[offset : offset+8])
	offset += 8
	state.FeeBasisPoints = binary.LittleEndian.Uint64(data[offset : offset+8])

	if state.FeeBasisPoints > feeBasisPointsDenominator {
		return nil, fmt.Errorf("global state has invalid fee basis points: %d", state.FeeBasisPoints)
	}
	return state, nil
}

// DecodeBondingCurve parses a raw bonding curve account payload.
func DecodeBondingCurve(data []byte) (*BondingCurve, error) {
	if len(data) < bondingCurveSize {
		return nil, fmt.Errorf("bonding curve data too short: %d bytes, need %d", len(data), bondingCurveSize)
	}

	curve := &BondingCurve{}
	copy(curve.Discriminator[:], data[0:8])

	offset := 8
	curve.VirtualTokenReserves = binary.LittleEndian.Uint64(data[offset : offset+8])
	offset += 8
	curve.VirtualSolReserves = binary.LittleEndian.Uint64(data[offset : offset+8])
	offset += 8
	curve.RealTokenReserves = binary.LittleEndian.Uint64(data[offset : offset+8])
	offset += 8
	curve.RealSolReserves = binary.LittleEndian.Uint64(data[offset : offset+8])
	offset += 8
	curve.TokenTotalSupply = binary.LittleEndian.Uint64(data[offset : offset+8])
	offset += 8
	curve.Complete = data[offset] != 0
	offset++
	curve.Creator = solana.PublicKeyFromBytes(data[offset : offset+32])

	return curve, nil
}

// FetchGlobalState fetches and decodes the global config account.
func FetchGlobalState(ctx context.Context, client Client, cfg *Config, globalAddr solana.PublicKey, logger *zap.Logger) (*GlobalState, error) {
	accountInfo, err := client.GetAccountInfoWithCommitment(ctx, globalAddr, cfg.PrimaryCommitment)
	if err != nil {
		if solbc.IsAccountNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", ErrGlobalNotFound, globalAddr.String())
		}
		return nil, fmt.Errorf("failed to get global state account: %w", err)
	}

	if !accountInfo.Value.Owner.Equals(cfg.ProgramID) {
		return nil, fmt.Errorf("global state account has incorrect owner: expected %s, got %s",
			cfg.ProgramID.String(), accountInfo.Value.Owner.String())
	}

	state, err := DecodeGlobalState(accountInfo.Value.Data.GetBinary())
	if err != nil {
		return nil, fmt.Errorf("failed to decode global state: %w", err)
	}

	logger.Debug("Fetched global state",
		zap.String("address", globalAddr.String()),
		zap.String("fee_recipient", state.FeeRecipient.String()),
		zap.Uint64("fee_basis_points", state.FeeBasisPoints))

	return state, nil
}

// FetchBondingCurve fetches and decodes the bonding curve account for a mint.
// The primary commitment is tried first; if the account is absent there, one
// retry at the fallback level covers a curve created so recently that it has
// not reached all replicas yet. Absence at both levels means the token does
// not exist.
func FetchBondingCurve(ctx context.Context, client Client, cfg *Config, curveAddr solana.PublicKey, logger *zap.Logger) (*BondingCurve, error) {
	accountInfo, err := client.GetAccountInfoWithCommitment(ctx, curveAddr, cfg.PrimaryCommitment)
	if solbc.IsAccountNotFoundError(err) {
		logger.Debug("Bonding curve absent at primary commitment, retrying at fallback",
			zap.String("address", curveAddr.String()),
			zap.String("primary", string(cfg.PrimaryCommitment)),
			zap.String("fallback", string(cfg.FallbackCommitment)))
		accountInfo, err = client.GetAccountInfoWithCommitment(ctx, curveAddr, cfg.FallbackCommitment)
	}
	if err != nil {
		if solbc.IsAccountNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", ErrCurveNotFound, curveAddr.String())
		}
		return nil, fmt.Errorf("failed to get bonding curve account: %w", err)
	}

	curve, err := DecodeBondingCurve(accountInfo.Value.Data.GetBinary())
	if err != nil {
		return nil, fmt.Errorf("failed to decode bonding curve: %w", err)
	}

	logger.Debug("Fetched bonding curve",
		zap.String("address", curveAddr.String()),
		zap.Uint64("virtual_token_reserves", curve.VirtualTokenReserves),
		zap.Uint64("virtual_sol_reserves", curve.VirtualSolReserves),
		zap.Bool("complete", curve.Complete))

	return curve, nil
}

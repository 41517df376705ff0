// =============================
// File: internal/dex/pumpfun/pda.go
// =============================
package pumpfun

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Program-derived addresses are pure functions of their seeds and program
// id: the same inputs always yield the same address and bump. Nothing here
// touches the network.

// DeriveGlobal returns the global config account of the bonding curve program.
func DeriveGlobal(programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(
		[][]byte{[]byte(seedGlobal)},
		programID,
	)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("failed to derive global account: %w", err)
	}
	return addr, bump, nil
}

// DeriveBondingCurve returns the bonding curve account for a mint.
func DeriveBondingCurve(programID, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(
		[][]byte{[]byte(seedBondingCurve), mint.Bytes()},
		programID,
	)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("failed to derive bonding curve: %w", err)
	}
	return addr, bump, nil
}

// DeriveCreatorVault returns the fee vault of the token's creator.
func DeriveCreatorVault(programID, creator solana.PublicKey) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(
		[][]byte{[]byte(seedCreatorVault), creator.Bytes()},
		programID,
	)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("failed to derive creator vault: %w", err)
	}
	return addr, bump, nil
}

// DeriveGlobalVolumeAccumulator returns the program-wide volume accumulator.
func DeriveGlobalVolumeAccumulator(programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(
		[][]byte{[]byte(seedGlobalVolumeAccumulator)},
		programID,
	)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("failed to derive global volume accumulator: %w", err)
	}
	return addr, bump, nil
}

// DeriveUserVolumeAccumulator returns the per-user volume accumulator.
func DeriveUserVolumeAccumulator(programID, user solana.PublicKey) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(
		[][]byte{[]byte(seedUserVolumeAccumulator), user.Bytes()},
		programID,
	)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("failed to derive user volume accumulator: %w", err)
	}
	return addr, bump, nil
}

// DeriveEventAuthority returns the event authority of the program.
func DeriveEventAuthority(programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(
		[][]byte{[]byte(seedEventAuthority)},
		programID,
	)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("failed to derive event authority: %w", err)
	}
	return addr, bump, nil
}

// DeriveFeeConfig returns the fee configuration account. It lives under the
// fee management program, keyed by the bonding curve program it serves.
func DeriveFeeConfig(feeProgramID, programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(
		[][]byte{[]byte(seedFeeConfig), programID.Bytes()},
		feeProgramID,
	)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("failed to derive fee config: %w", err)
	}
	return addr, bump, nil
}

// DeriveAssociatedTokenAccount returns the ATA of owner for mint under the
// given token program. The token program is a seed, so an ATA for a
// Token-2022 mint differs from the classic derivation.
func DeriveAssociatedTokenAccount(owner, mint, tokenProgram solana.PublicKey) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(
		[][]byte{owner.Bytes(), tokenProgram.Bytes(), mint.Bytes()},
		solana.SPLAssociatedTokenAccountProgramID,
	)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("failed to derive associated token account: %w", err)
	}
	return addr, bump, nil
}

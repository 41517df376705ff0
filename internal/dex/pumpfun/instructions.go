// =============================
// File: internal/dex/pumpfun/instructions.go
// =============================
package pumpfun

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// anchorDiscriminator returns the 8-byte instruction discriminator for an
// Anchor program method: sha256("global:<method>")[0:8].
func anchorDiscriminator(method string) []byte {
	hash := sha256.Sum256([]byte("global:" + method))
	return hash[:8]
}

var buyDiscriminator = anchorDiscriminator("buy")

// burnInstructionOpcode is the SPL Token program's Burn instruction tag.
// Token-2022 keeps the same encoding.
const burnInstructionOpcode = 8

// BuyAccounts collects every account the buy instruction touches, in a
// named form so call sites cannot silently swap positions.
type BuyAccounts struct {
	Global                  solana.PublicKey
	FeeRecipient            solana.PublicKey
	Mint                    solana.PublicKey
	BondingCurve            solana.PublicKey
	AssociatedBondingCurve  solana.PublicKey
	AssociatedUser          solana.PublicKey
	User                    solana.PublicKey
	TokenProgram            solana.PublicKey
	CreatorVault            solana.PublicKey
	EventAuthority          solana.PublicKey
	Program                 solana.PublicKey
	GlobalVolumeAccumulator solana.PublicKey
	UserVolumeAccumulator   solana.PublicKey
	FeeConfig               solana.PublicKey
	FeeProgram              solana.PublicKey
}

// ResolveBuyAccounts derives every address the buy instruction needs from
// the program ids, the mint, the buyer, and on-chain state already fetched.
func ResolveBuyAccounts(cfg *Config, mint, user, tokenProgram solana.PublicKey, global *GlobalState, curve *BondingCurve) (*BuyAccounts, error) {
	globalAddr, _, err := DeriveGlobal(cfg.ProgramID)
	if err != nil {
		return nil, err
	}
	curveAddr, _, err := DeriveBondingCurve(cfg.ProgramID, mint)
	if err != nil {
		return nil, err
	}
	curveATA, _, err := DeriveAssociatedTokenAccount(curveAddr, mint, tokenProgram)
	if err != nil {
		return nil, err
	}
	userATA, _, err := DeriveAssociatedTokenAccount(user, mint, tokenProgram)
	if err != nil {
		return nil, err
	}
	creatorVault, _, err := DeriveCreatorVault(cfg.ProgramID, curve.Creator)
	if err != nil {
		return nil, err
	}
	eventAuthority, _, err := DeriveEventAuthority(cfg.ProgramID)
	if err != nil {
		return nil, err
	}
	globalVolume, _, err := DeriveGlobalVolumeAccumulator(cfg.ProgramID)
	if err != nil {
		return nil, err
	}
	userVolume, _, err := DeriveUserVolumeAccumulator(cfg.ProgramID, user)
	if err != nil {
		return nil, err
	}
	feeConfig, _, err := DeriveFeeConfig(cfg.FeeProgramID, cfg.ProgramID)
	if err != nil {
		return nil, err
	}

	return &BuyAccounts{
		Global:                  globalAddr,
		FeeRecipient:            global.FeeRecipient,
		Mint:                    mint,
		BondingCurve:            curveAddr,
		AssociatedBondingCurve:  curveATA,
		AssociatedUser:          userATA,
		User:                    user,
		TokenProgram:            tokenProgram,
		CreatorVault:            creatorVault,
		EventAuthority:          eventAuthority,
		Program:                 cfg.ProgramID,
		GlobalVolumeAccumulator: globalVolume,
		UserVolumeAccumulator:   userVolume,
		FeeConfig:               feeConfig,
		FeeProgram:              cfg.FeeProgramID,
	}, nil
}

// BuildBuyInstruction encodes the buy: tokenAmount is the exact number of
// base token units expected, maxSolCost the lamport ceiling the program may
// draw. Account order is fixed by the program's IDL and must not change.
func BuildBuyInstruction(programID solana.PublicKey, accounts *BuyAccounts, tokenAmount, maxSolCost uint64) (solana.Instruction, error) {
	if tokenAmount == 0 {
		return nil, fmt.Errorf("token amount must be positive")
	}

	data := make([]byte, 0, 24)
	data = append(data, buyDiscriminator...)
	data = binary.LittleEndian.AppendUint64(data, tokenAmount)
	data = binary.LittleEndian.AppendUint64(data, maxSolCost)

	metas := solana.AccountMetaSlice{
		solana.NewAccountMeta(accounts.Global, false, false),
		solana.NewAccountMeta(accounts.FeeRecipient, true, false),
		solana.NewAccountMeta(accounts.Mint, false, false),
		solana.NewAccountMeta(accounts.BondingCurve, true, false),
		solana.NewAccountMeta(accounts.AssociatedBondingCurve, true, false),
		solana.NewAccountMeta(accounts.AssociatedUser, true, false),
		solana.NewAccountMeta(accounts.User, true, true),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
		solana.NewAccountMeta(accounts.TokenProgram, false, false),
		solana.NewAccountMeta(accounts.CreatorVault, true, false),
		solana.NewAccountMeta(accounts.EventAuthority, false, false),
		solana.NewAccountMeta(accounts.Program, false, false),
		solana.NewAccountMeta(accounts.GlobalVolumeAccumulator, true, false),
		solana.NewAccountMeta(accounts.UserVolumeAccumulator, true, false),
		solana.NewAccountMeta(accounts.FeeConfig, false, false),
		solana.NewAccountMeta(accounts.FeeProgram, false, false),
	}

	return solana.NewInstruction(programID, metas, data), nil
}

// BuildBurnInstruction encodes an SPL Token burn of amount base units from
// the owner's token account. tokenProgram selects classic SPL Token or
// Token-2022 and must match the mint's owner.
func BuildBurnInstruction(tokenProgram, tokenAccount, mint, owner solana.PublicKey, amount uint64) (solana.Instruction, error) {
	if amount == 0 {
		return nil, fmt.Errorf("burn amount must be positive")
	}

	data := make([]byte, 0, 9)
	data = append(data, burnInstructionOpcode)
	data = binary.LittleEndian.AppendUint64(data, amount)

	metas := solana.AccountMetaSlice{
		solana.NewAccountMeta(tokenAccount, true, false),
		solana.NewAccountMeta(mint, true, false),
		solana.NewAccountMeta(owner, false, true),
	}

	return solana.NewInstruction(tokenProgram, metas, data), nil
}

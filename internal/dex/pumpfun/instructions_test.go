package pumpfun

import (
	"crypto/sha256"
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBuyAccounts(t *testing.T) *BuyAccounts {
	t.Helper()
	cfg := DefaultConfig()
	mint := solana.NewWallet().PublicKey()
	user := solana.NewWallet().PublicKey()

	global := &GlobalState{FeeRecipient: solana.NewWallet().PublicKey()}
	curve := &BondingCurve{Creator: solana.NewWallet().PublicKey()}

	accounts, err := ResolveBuyAccounts(cfg, mint, user, solana.TokenProgramID, global, curve)
	require.NoError(t, err)
	return accounts
}

func TestAnchorDiscriminator(t *testing.T) {
	expected := sha256.Sum256([]byte("global:buy"))
	assert.Equal(t, expected[:8], buyDiscriminator)

	// First eight bytes of sha256("global:buy"), fixed by the program's IDL.
	assert.Equal(t, []byte{0x66, 0x06, 0x3d, 0x12, 0x01, 0xda, 0xeb, 0xea}, buyDiscriminator)
}

func TestBuildBuyInstruction(t *testing.T) {
	accounts := testBuyAccounts(t)

	ix, err := BuildBuyInstruction(PumpFunProgramID, accounts, 1_000_000, 52_500_000)
	require.NoError(t, err)

	assert.Equal(t, PumpFunProgramID, ix.ProgramID())

	data, err := ix.Data()
	require.NoError(t, err)
	require.Len(t, data, 24)
	assert.Equal(t, buyDiscriminator, data[:8])
	assert.Equal(t, uint64(1_000_000), binary.LittleEndian.Uint64(data[8:16]))
	assert.Equal(t, uint64(52_500_000), binary.LittleEndian.Uint64(data[16:24]))
}

func TestBuildBuyInstructionAccountOrder(t *testing.T) {
	accounts := testBuyAccounts(t)

	ix, err := BuildBuyInstruction(PumpFunProgramID, accounts, 1, 1)
	require.NoError(t, err)

	metas := ix.Accounts()
	require.Len(t, metas, 16)

	expected := []solana.PublicKey{
		accounts.Global,
		accounts.FeeRecipient,
		accounts.Mint,
		accounts.BondingCurve,
		accounts.AssociatedBondingCurve,
		accounts.AssociatedUser,
		accounts.User,
		solana.SystemProgramID,
		accounts.TokenProgram,
		accounts.CreatorVault,
		accounts.EventAuthority,
		accounts.Program,
		accounts.GlobalVolumeAccumulator,
		accounts.UserVolumeAccumulator,
		accounts.FeeConfig,
		accounts.FeeProgram,
	}
	for i, meta := range metas {
		assert.Equal(t, expected[i], meta.PublicKey, "account %d out of order", i)
	}

	// The buyer is the only signer, and signs as a writable fee payer.
	for i, meta := range metas {
		if meta.PublicKey.Equals(accounts.User) {
			assert.True(t, meta.IsSigner, "user must sign")
			assert.True(t, meta.IsWritable)
		} else {
			assert.False(t, meta.IsSigner, "account %d must not sign", i)
		}
	}

	writable := map[solana.PublicKey]bool{
		accounts.FeeRecipient:            true,
		accounts.BondingCurve:            true,
		accounts.AssociatedBondingCurve:  true,
		accounts.AssociatedUser:          true,
		accounts.User:                    true,
		accounts.CreatorVault:            true,
		accounts.GlobalVolumeAccumulator: true,
		accounts.UserVolumeAccumulator:   true,
	}
	for i, meta := range metas {
		assert.Equal(t, writable[meta.PublicKey], meta.IsWritable, "account %d writability", i)
	}
}

func TestBuildBuyInstructionRejectsZeroAmount(t *testing.T) {
	accounts := testBuyAccounts(t)

	_, err := BuildBuyInstruction(PumpFunProgramID, accounts, 0, 1_000_000)
	assert.Error(t, err)
}

func TestBuildBurnInstruction(t *testing.T) {
	account := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	owner := solana.NewWallet().PublicKey()

	ix, err := BuildBurnInstruction(solana.TokenProgramID, account, mint, owner, 5_000_000)
	require.NoError(t, err)

	assert.Equal(t, solana.TokenProgramID, ix.ProgramID())

	data, err := ix.Data()
	require.NoError(t, err)
	require.Len(t, data, 9)
	assert.Equal(t, byte(burnInstructionOpcode), data[0])
	assert.Equal(t, uint64(5_000_000), binary.LittleEndian.Uint64(data[1:]))

	metas := ix.Accounts()
	require.Len(t, metas, 3)
	assert.Equal(t, account, metas[0].PublicKey)
	assert.True(t, metas[0].IsWritable)
	assert.Equal(t, mint, metas[1].PublicKey)
	assert.True(t, metas[1].IsWritable)
	assert.Equal(t, owner, metas[2].PublicKey)
	assert.True(t, metas[2].IsSigner)
	assert.False(t, metas[2].IsWritable)
}

func TestBuildBurnInstructionRejectsZeroAmount(t *testing.T) {
	_, err := BuildBurnInstruction(solana.TokenProgramID,
		solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey(), 0)
	assert.Error(t, err)
}

func TestResolveBuyAccountsUsesCurveCreator(t *testing.T) {
	cfg := DefaultConfig()
	mint := solana.NewWallet().PublicKey()
	user := solana.NewWallet().PublicKey()
	global := &GlobalState{FeeRecipient: solana.NewWallet().PublicKey()}

	curveA := &BondingCurve{Creator: solana.NewWallet().PublicKey()}
	curveB := &BondingCurve{Creator: solana.NewWallet().PublicKey()}

	accountsA, err := ResolveBuyAccounts(cfg, mint, user, solana.TokenProgramID, global, curveA)
	require.NoError(t, err)
	accountsB, err := ResolveBuyAccounts(cfg, mint, user, solana.TokenProgramID, global, curveB)
	require.NoError(t, err)

	assert.NotEqual(t, accountsA.CreatorVault, accountsB.CreatorVault,
		"creator vault follows the creator recorded on the curve")
	assert.Equal(t, accountsA.BondingCurve, accountsB.BondingCurve)
	assert.Equal(t, global.FeeRecipient, accountsA.FeeRecipient)
}

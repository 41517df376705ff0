package pumpfun

import (
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeGlobalState(s *GlobalState) []byte {
	data := make([]byte, globalStateSize)
	copy(data[0:8], s.Discriminator[:])
	if s.Initialized {
		data[8] = 1
	}
	copy(data[9:41], s.Authority.Bytes())
	copy(data[41:73], s.FeeRecipient.Bytes())
	binary.LittleEndian.PutUint64(data[73:], s.InitialVirtualTokenReserves)
	binary.LittleEndian.PutUint64(data[81:], s.InitialVirtualSolReserves)
	binary.LittleEndian.PutUint64(data[89:], s.InitialRealTokenReserves)
	binary.LittleEndian.PutUint64(data[97:], s.TokenTotalSupply)
	binary.LittleEndian.PutUint64(data[105:], s.FeeBasisPoints)
	return data
}

func encodeBondingCurve(c *BondingCurve) []byte {
	data := make([]byte, bondingCurveSize)
	copy(data[0:8], c.Discriminator[:])
	binary.LittleEndian.PutUint64(data[8:], c.VirtualTokenReserves)
	binary.LittleEndian.PutUint64(data[16:], c.VirtualSolReserves)
	binary.LittleEndian.PutUint64(data[24:], c.RealTokenReserves)
	binary.LittleEndian.PutUint64(data[32:], c.RealSolReserves)
	binary.LittleEndian.PutUint64(data[40:], c.TokenTotalSupply)
	if c.Complete {
		data[48] = 1
	}
	copy(data[49:81], c.Creator.Bytes())
	return data
}

func TestDecodeGlobalState(t *testing.T) {
	original := &GlobalState{
		Initialized:                 true,
		Authority:                   solana.NewWallet().PublicKey(),
		FeeRecipient:                solana.NewWallet().PublicKey(),
		InitialVirtualTokenReserves: 1_073_000_000_000_000,
		InitialVirtualSolReserves:   30_000_000_000,
		InitialRealTokenReserves:    793_100_000_000_000,
		TokenTotalSupply:            1_000_000_000_000_000,
		FeeBasisPoints:              100,
	}

	decoded, err := DecodeGlobalState(encodeGlobalState(original))
	require.NoError(t, err)

	assert.True(t, decoded.Initialized)
	assert.Equal(t, original.Authority, decoded.Authority)
	assert.Equal(t, original.FeeRecipient, decoded.FeeRecipient)
	assert.Equal(t, original.InitialVirtualTokenReserves, decoded.InitialVirtualTokenReserves)
	assert.Equal(t, original.FeeBasisPoints, decoded.FeeBasisPoints)
}

func TestDecodeGlobalStateRejectsShortData(t *testing.T) {
	data := encodeGlobalState(&GlobalState{FeeBasisPoints: 100})

	_, err := DecodeGlobalState(data[:globalStateSize-1])
	assert.ErrorContains(t, err, "too short")

	_, err = DecodeGlobalState(nil)
	assert.ErrorContains(t, err, "too short")
}

func TestDecodeGlobalStateRejectsBadFeeRate(t *testing.T) {
	data := encodeGlobalState(&GlobalState{FeeBasisPoints: 10_001})

	_, err := DecodeGlobalState(data)
	assert.ErrorContains(t, err, "fee basis points")
}

func TestDecodeBondingCurve(t *testing.T) {
	original := &BondingCurve{
		VirtualTokenReserves: 1_073_000_000_000_000,
		VirtualSolReserves:   30_000_000_000,
		RealTokenReserves:    793_100_000_000_000,
		RealSolReserves:      0,
		TokenTotalSupply:     1_000_000_000_000_000,
		Complete:             false,
		Creator:              solana.NewWallet().PublicKey(),
	}

	decoded, err := DecodeBondingCurve(encodeBondingCurve(original))
	require.NoError(t, err)

	assert.Equal(t, original.VirtualTokenReserves, decoded.VirtualTokenReserves)
	assert.Equal(t, original.VirtualSolReserves, decoded.VirtualSolReserves)
	assert.Equal(t, original.RealTokenReserves, decoded.RealTokenReserves)
	assert.Equal(t, original.TokenTotalSupply, decoded.TokenTotalSupply)
	assert.False(t, decoded.Complete)
	assert.Equal(t, original.Creator, decoded.Creator)
}

func TestDecodeBondingCurveCompleteFlag(t *testing.T) {
	data := encodeBondingCurve(&BondingCurve{Complete: true})

	decoded, err := DecodeBondingCurve(data)
	require.NoError(t, err)
	assert.True(t, decoded.Complete)
}

func TestDecodeBondingCurveRejectsShortData(t *testing.T) {
	data := encodeBondingCurve(&BondingCurve{})

	_, err := DecodeBondingCurve(data[:bondingCurveSize-1])
	assert.ErrorContains(t, err, "too short")
}

func TestDecodeBondingCurveIgnoresTrailingBytes(t *testing.T) {
	// On-chain accounts may be padded beyond the struct; extra bytes are fine.
	data := append(encodeBondingCurve(&BondingCurve{VirtualSolReserves: 42}), make([]byte, 7)...)

	decoded, err := DecodeBondingCurve(data)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), decoded.VirtualSolReserves)
}

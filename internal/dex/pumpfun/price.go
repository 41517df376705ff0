// =============================
// File: internal/dex/pumpfun/price.go
// =============================
package pumpfun

import (
	"fmt"
	"math"
	"math/bits"
)

const (
	// feeBasisPointsDenominator is the scale of the protocol fee: 10000
	// basis points = 100%.
	feeBasisPointsDenominator = 10_000

	// Decimal scales for price display.
	lamportsPerSol = 1_000_000_000 // SOL has 9 decimals
	tokenBaseUnits = 1_000_000     // bonding curve tokens have 6 decimals
)

// PurchaseFee returns the protocol fee taken from solIn, rounded down.
func PurchaseFee(solIn, feeBasisPoints uint64) (uint64, error) {
	if feeBasisPoints > feeBasisPointsDenominator {
		return 0, fmt.Errorf("fee basis points out of range: %d", feeBasisPoints)
	}
	// solIn * bps never overflows 128 bits, and the quotient is at most
	// solIn, so it always fits back into a u64.
	hi, lo := bits.Mul64(solIn, feeBasisPoints)
	fee, _ := bits.Div64(hi, lo, feeBasisPointsDenominator)
	return fee, nil
}

// TokensOutForSol computes the exact number of base token units a purchase
// of solIn lamports yields against the given curve, after the protocol fee.
// Constant-product math with flooring division, matching the on-chain
// program bit for bit: any rounding error favors the reserves, so the
// result never overstates what the chain will deliver.
func TokensOutForSol(curve *BondingCurve, solIn, feeBasisPoints uint64) (uint64, error) {
	if solIn == 0 {
		return 0, fmt.Errorf("purchase amount must be positive")
	}
	if curve.VirtualSolReserves == 0 || curve.VirtualTokenReserves == 0 {
		return 0, fmt.Errorf("bonding curve has empty virtual reserves")
	}

	fee, err := PurchaseFee(solIn, feeBasisPoints)
	if err != nil {
		return 0, err
	}
	// Cannot happen for fee rates within range, but a fee above the input
	// would silently underflow below.
	if fee > solIn {
		return 0, fmt.Errorf("fee %d exceeds input %d", fee, solIn)
	}
	netSol := solIn - fee
	if netSol == 0 {
		return 0, nil
	}

	if netSol > math.MaxUint64-curve.VirtualSolReserves {
		return 0, fmt.Errorf("purchase of %d lamports overflows the sol reserves", solIn)
	}

	// tokensOut = vToken - floor(vSol * vToken / (vSol + netSol))
	// The product needs 128 bits; the quotient is strictly less than
	// vToken because the divisor exceeds vSol, so Div64 cannot overflow.
	newSolReserves := curve.VirtualSolReserves + netSol
	hi, lo := bits.Mul64(curve.VirtualSolReserves, curve.VirtualTokenReserves)
	newTokenReserves, _ := bits.Div64(hi, lo, newSolReserves)

	return curve.VirtualTokenReserves - newTokenReserves, nil
}

// MaxSolCost converts a purchase amount and a slippage tolerance in percent
// into the lamport ceiling embedded in the buy instruction. The chain
// rejects the transaction if the realized cost exceeds this bound.
// Computed as floor(solIn * (10000 + bps) / 10000) in integer arithmetic;
// the tolerance resolves to hundredths of a percent.
func MaxSolCost(solIn uint64, slippagePercent float64) uint64 {
	if slippagePercent <= 0 {
		return solIn
	}
	slippageBps := uint64(slippagePercent * 100)
	hi, lo := bits.Mul64(solIn, feeBasisPointsDenominator+slippageBps)
	if hi >= feeBasisPointsDenominator {
		return math.MaxUint64
	}
	cost, _ := bits.Div64(hi, lo, feeBasisPointsDenominator)
	return cost
}

// SpotPrice returns the current marginal price in SOL per whole token.
// Display only; trade sizing goes through TokensOutForSol.
func SpotPrice(curve *BondingCurve) float64 {
	if curve.VirtualTokenReserves == 0 {
		return 0
	}
	solReserves := float64(curve.VirtualSolReserves) / lamportsPerSol
	tokenReserves := float64(curve.VirtualTokenReserves) / tokenBaseUnits
	return solReserves / tokenReserves
}

// =============================
// File: internal/dex/pumpfun/errors.go
// =============================
package pumpfun

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel errors for the precondition checks. Every one of these fires
// before any network write; callers can branch on them with errors.Is.
var (
	// ErrGlobalNotFound means the program's global config account is absent.
	ErrGlobalNotFound = errors.New("global config account not found")

	// ErrCurveNotFound means no bonding curve exists for the mint: the token
	// was never created on Pump.fun.
	ErrCurveNotFound = errors.New("bonding curve not found: token does not exist")

	// ErrCurveComplete means the curve has graduated and no longer accepts
	// purchases; the market has migrated to another venue.
	ErrCurveComplete = errors.New("bonding curve is complete: token has migrated")

	// ErrMintNotFound means the mint account itself is absent.
	ErrMintNotFound = errors.New("mint account not found")

	// ErrNoTokenAccount means the owner holds no token account for the mint.
	ErrNoTokenAccount = errors.New("no token account for mint: nothing to burn")

	// ErrInsufficientFunds means the wallet cannot cover the maximum cost
	// plus the fee buffer.
	ErrInsufficientFunds = errors.New("insufficient SOL balance")
)

// On-chain custom error codes surfaced in transaction failures.
const (
	SlippageExceededCode    = "0x1772"
	SlippageExceededCodeInt = 6002
)

// SlippageExceededError wraps an on-chain TooMuchSolRequired failure with
// the local parameters that produced the bound.
type SlippageExceededError struct {
	SlippagePercent float64
	MaxSolCost      uint64
	OriginalError   error
}

func (e *SlippageExceededError) Error() string {
	return fmt.Sprintf("slippage exceeded: purchase requires more than the %d lamport maximum (%.2f%% tolerance): %v",
		e.MaxSolCost, e.SlippagePercent, e.OriginalError)
}

func (e *SlippageExceededError) Unwrap() error {
	return e.OriginalError
}

// IsSlippageExceededError reports whether err is an on-chain slippage failure.
func IsSlippageExceededError(err error) bool {
	if err == nil {
		return false
	}
	var slippageErr *SlippageExceededError
	if errors.As(err, &slippageErr) {
		return true
	}
	return strings.Contains(err.Error(), "TooMuchSolRequired") ||
		strings.Contains(err.Error(), SlippageExceededCode) ||
		strings.Contains(err.Error(), strconv.Itoa(SlippageExceededCodeInt))
}

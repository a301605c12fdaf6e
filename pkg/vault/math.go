// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"fmt"

	"github.com/holiman/uint256"
)

const (
	// RatePrecision is the fixed-point scale of Vault.Rate (1e9)
	RatePrecision uint64 = 1_000_000_000

	// InitialRate is one asset unit per share
	InitialRate = RatePrecision
)

// mulDiv returns floor(x * y / d). The product is held in 256 bits so it
// cannot wrap; the quotient must fit in 64 bits.
func mulDiv(x, y, d uint64) (uint64, error) {
	if d == 0 {
		return 0, fmt.Errorf("%w: division by zero", ErrMathOverflow)
	}
	product := new(uint256.Int).Mul(uint256.NewInt(x), uint256.NewInt(y))
	quotient := product.Div(product, uint256.NewInt(d))
	if !quotient.IsUint64() {
		return 0, fmt.Errorf("%w: %d * %d / %d exceeds 64 bits", ErrMathOverflow, x, y, d)
	}
	return quotient.Uint64(), nil
}

// SharesForAmount converts an asset amount into shares at rate:
// floor(amount * RatePrecision / rate).
func SharesForAmount(amount, rate uint64) (uint64, error) {
	return mulDiv(amount, RatePrecision, rate)
}

// AmountForShares converts shares into asset units at rate:
// floor(shares * rate / RatePrecision).
func AmountForShares(shares, rate uint64) (uint64, error) {
	return mulDiv(shares, rate, RatePrecision)
}

// RateFor recomputes the exchange rate from the vault totals:
// floor(totalDeposits * RatePrecision / totalShares).
func RateFor(totalDeposits, totalShares uint64) (uint64, error) {
	if totalShares == 0 {
		return 0, ErrNoShares
	}
	return mulDiv(totalDeposits, RatePrecision, totalShares)
}

func safeAdd(a, b uint64) (uint64, error) {
	sum, overflow := new(uint256.Int).AddOverflow(uint256.NewInt(a), uint256.NewInt(b))
	if overflow || !sum.IsUint64() {
		return 0, fmt.Errorf("%w: %d + %d", ErrMathOverflow, a, b)
	}
	return sum.Uint64(), nil
}

func safeSub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, fmt.Errorf("%w: %d - %d", ErrMathOverflow, a, b)
	}
	return a - b, nil
}

// FormatRate renders a fixed-point rate as a decimal with four places,
// truncating rather than rounding.
func FormatRate(rate uint64) string {
	whole := rate / RatePrecision
	frac := (rate % RatePrecision) / (RatePrecision / 10_000)
	return fmt.Sprintf("%d.%04d", whole, frac)
}

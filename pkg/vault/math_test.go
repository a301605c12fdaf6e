// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSharesForAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount uint64
		rate   uint64
		want   uint64
		err    error
	}{
		{name: "one to one", amount: 1_000_000_000, rate: RatePrecision, want: 1_000_000_000},
		{name: "rate 1.1 floors", amount: 1_000, rate: 1_100_000_000, want: 909},
		{name: "dust rounds to zero", amount: 1, rate: 2 * RatePrecision, want: 0},
		{name: "max amount at par", amount: math.MaxUint64, rate: RatePrecision, want: math.MaxUint64},
		{name: "max amount above par", amount: math.MaxUint64, rate: 3 * RatePrecision, want: math.MaxUint64 / 3},
		{name: "max amount below par overflows", amount: math.MaxUint64, rate: RatePrecision - 1, err: ErrMathOverflow},
		{name: "zero rate", amount: 1, rate: 0, err: ErrMathOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			got, err := SharesForAmount(tt.amount, tt.rate)
			require.ErrorIs(err, tt.err)
			require.Equal(tt.want, got)
		})
	}
}

func TestAmountForShares(t *testing.T) {
	tests := []struct {
		name   string
		shares uint64
		rate   uint64
		want   uint64
		err    error
	}{
		{name: "scenario redemption", shares: 500_000_000, rate: 1_100_000_000, want: 550_000_000},
		{name: "floors", shares: 3, rate: 1_333_333_333, want: 3},
		{name: "zero shares", shares: 0, rate: 5 * RatePrecision, want: 0},
		{name: "max shares at par", shares: math.MaxUint64, rate: RatePrecision, want: math.MaxUint64},
		{name: "max shares above par overflows", shares: math.MaxUint64, rate: RatePrecision + 1, err: ErrMathOverflow},
		{name: "half max doubled", shares: math.MaxUint64 / 2, rate: 2 * RatePrecision, want: math.MaxUint64 - 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			got, err := AmountForShares(tt.shares, tt.rate)
			require.ErrorIs(err, tt.err)
			require.Equal(tt.want, got)
		})
	}
}

func TestRateFor(t *testing.T) {
	require := require.New(t)

	rate, err := RateFor(1_650_000_000, 1_500_000_000)
	require.NoError(err)
	require.Equal(uint64(1_100_000_000), rate)

	rate, err = RateFor(math.MaxUint64, math.MaxUint64)
	require.NoError(err)
	require.Equal(RatePrecision, rate)

	_, err = RateFor(100, 0)
	require.ErrorIs(err, ErrNoShares)

	_, err = RateFor(math.MaxUint64, 1)
	require.ErrorIs(err, ErrMathOverflow)
}

func TestCheckedArithmetic(t *testing.T) {
	require := require.New(t)

	sum, err := safeAdd(math.MaxUint64-1, 1)
	require.NoError(err)
	require.Equal(uint64(math.MaxUint64), sum)

	_, err = safeAdd(math.MaxUint64, 1)
	require.ErrorIs(err, ErrMathOverflow)

	diff, err := safeSub(10, 10)
	require.NoError(err)
	require.Zero(diff)

	_, err = safeSub(10, 11)
	require.ErrorIs(err, ErrMathOverflow)
}

func TestFormatRate(t *testing.T) {
	require := require.New(t)
	require.Equal("1.0000", FormatRate(RatePrecision))
	require.Equal("1.1000", FormatRate(1_100_000_000))
	require.Equal("1.3333", FormatRate(1_333_333_333))
	require.Equal("1.0000", FormatRate(1_000_099_999))
	require.Equal("42.0001", FormatRate(42_000_100_000))
}

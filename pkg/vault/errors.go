// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"errors"
	"fmt"
)

// Every error below rejects the attempted operation with no state change.
var (
	ErrInvalidAmount           = errors.New("invalid amount")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrInsufficientFunds       = errors.New("insufficient funds")
	ErrPendingWithdrawalExists = errors.New("a pending withdrawal request already exists, claim it first")
	ErrAlreadyClaimed          = errors.New("withdrawal already claimed")
	ErrEpochNotReached         = errors.New("epoch not yet reached for claim")
	ErrEpochNotElapsed         = errors.New("epoch duration has not elapsed")
	ErrNoShares                = errors.New("vault has no outstanding shares")
	ErrAlreadyInitialized      = errors.New("vault already initialized")

	ErrMathOverflow         = errors.New("math overflow")
	ErrNoWithdrawalRequest  = errors.New("no withdrawal request")
	ErrVaultNotFound        = errors.New("vault not found")
	ErrInvalidEpochDuration = fmt.Errorf("%w: epoch duration must be positive", ErrInvalidAmount)
	ErrInsolvent            = errors.New("custody balance would not cover outstanding claims")
)

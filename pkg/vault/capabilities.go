// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"context"
	"time"

	"github.com/luxfi/ids"
)

// AssetTransfer moves fungible asset units between accounts.
// Transfer fails with ErrInsufficientFunds when from cannot cover amount.
type AssetTransfer interface {
	Transfer(ctx context.Context, asset ids.ID, from, to ids.ShortID, amount uint64) error
	BalanceOf(ctx context.Context, asset ids.ID, account ids.ShortID) (uint64, error)
}

// ShareToken mints and burns the share asset of a vault.
type ShareToken interface {
	Mint(ctx context.Context, asset ids.ID, to ids.ShortID, amount uint64) error
	Burn(ctx context.Context, asset ids.ID, from ids.ShortID, amount uint64) error
	BalanceOf(ctx context.Context, asset ids.ID, account ids.ShortID) (uint64, error)
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Authorizer decides whether the caller named in op may perform it.
type Authorizer interface {
	Authorize(ctx context.Context, op Operation) error
}

// AllowAll trusts the caller named in every operation.
type AllowAll struct{}

func (AllowAll) Authorize(context.Context, Operation) error { return nil }

// Store persists vault records and withdrawal slots.
type Store interface {
	// GetVault returns ErrVaultNotFound when no vault has id.
	GetVault(id ids.ID) (Vault, error)
	// GetRequest returns nil without an error when the slot is empty.
	GetRequest(vaultID ids.ID, user ids.ShortID) (*WithdrawalRequest, error)
	// Commit writes v, and request when non-nil, atomically.
	Commit(v Vault, request *WithdrawalRequest) error
	ListVaults() ([]Vault, error)
}

func unixNow(c Clock) uint64 {
	now := c.Now().Unix()
	if now < 0 {
		return 0
	}
	return uint64(now)
}

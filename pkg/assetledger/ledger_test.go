// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package assetledger

import (
	"context"
	"testing"

	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"
	"github.com/luxfi/vault/pkg/vault"
	"github.com/stretchr/testify/require"
)

func TestTransfer(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	l := New(memdb.New())

	asset := ids.GenerateTestID()
	alice, bob := ids.ShortID{1}, ids.ShortID{2}

	require.NoError(l.Fund(ctx, asset, alice, 1000))
	require.NoError(l.Transfer(ctx, asset, alice, bob, 400))

	balance, err := l.BalanceOf(ctx, asset, alice)
	require.NoError(err)
	require.Equal(uint64(600), balance)
	balance, err = l.BalanceOf(ctx, asset, bob)
	require.NoError(err)
	require.Equal(uint64(400), balance)

	err = l.Transfer(ctx, asset, bob, alice, 401)
	require.ErrorIs(err, vault.ErrInsufficientFunds)

	// The failed transfer changed nothing.
	balance, err = l.BalanceOf(ctx, asset, bob)
	require.NoError(err)
	require.Equal(uint64(400), balance)

	supply, err := l.Supply(ctx, asset)
	require.NoError(err)
	require.Equal(uint64(1000), supply)
}

func TestMintBurn(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	l := New(memdb.New())

	share := ids.GenerateTestID()
	user := ids.ShortID{7}

	require.NoError(l.Mint(ctx, share, user, 500))
	require.NoError(l.Burn(ctx, share, user, 200))
	require.ErrorIs(l.Burn(ctx, share, user, 301), vault.ErrInsufficientFunds)

	balance, err := l.BalanceOf(ctx, share, user)
	require.NoError(err)
	require.Equal(uint64(300), balance)

	supply, err := l.Supply(ctx, share)
	require.NoError(err)
	require.Equal(uint64(300), supply)
}

func TestOverflowAndValidation(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	l := New(memdb.New())

	asset := ids.GenerateTestID()
	require.ErrorIs(l.Fund(ctx, asset, ids.ShortID{1}, 0), vault.ErrInvalidAmount)
	require.NoError(l.Mint(ctx, asset, ids.ShortID{1}, ^uint64(0)))
	require.ErrorIs(l.Mint(ctx, asset, ids.ShortID{2}, 1), vault.ErrMathOverflow)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := New(memdb.New())
	require.ErrorIs(t, l.Mint(ctx, ids.GenerateTestID(), ids.ShortID{1}, 1), context.Canceled)
}

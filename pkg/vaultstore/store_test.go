// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vaultstore

import (
	"testing"

	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"
	"github.com/luxfi/vault/pkg/vault"
	"github.com/stretchr/testify/require"
)

func newVault(t *testing.T, authority ids.ShortID) vault.Vault {
	v, err := vault.NewVault(authority, ids.GenerateTestID(), 6, 60, 1_700_000_000)
	require.NoError(t, err)
	return v
}

func TestGetMissing(t *testing.T) {
	require := require.New(t)
	s := New(memdb.New())

	_, err := s.GetVault(ids.GenerateTestID())
	require.ErrorIs(err, vault.ErrVaultNotFound)

	r, err := s.GetRequest(ids.GenerateTestID(), ids.ShortID{1})
	require.NoError(err)
	require.Nil(r)
}

func TestCommitRoundTrip(t *testing.T) {
	require := require.New(t)
	s := New(memdb.New())

	v := newVault(t, ids.ShortID{1})
	v.TotalDeposits = 1650
	v.TotalShares = 1000
	v.PendingWithdrawals = 550
	v.Rate = 1_100_000_000
	v.CurrentEpoch = 3

	user := ids.ShortID{2}
	request := &vault.WithdrawalRequest{
		User:            user,
		Vault:           v.ID,
		SharesAmount:    500,
		TokensToReceive: 550,
		RequestEpoch:    3,
		ClaimableEpoch:  4,
		RequestedAt:     1_700_000_100,
	}
	require.NoError(s.Commit(v, request))

	got, err := s.GetVault(v.ID)
	require.NoError(err)
	require.Equal(v, got)

	gotRequest, err := s.GetRequest(v.ID, user)
	require.NoError(err)
	require.Equal(request, gotRequest)

	// A commit without a request leaves the slot untouched.
	v.CurrentEpoch = 4
	require.NoError(s.Commit(v, nil))
	gotRequest, err = s.GetRequest(v.ID, user)
	require.NoError(err)
	require.Equal(request, gotRequest)
}

func TestListVaultsAndRequests(t *testing.T) {
	require := require.New(t)
	s := New(memdb.New())

	a := newVault(t, ids.ShortID{1})
	b := newVault(t, ids.ShortID{2})
	require.NoError(s.Commit(a, &vault.WithdrawalRequest{User: ids.ShortID{9}, Vault: a.ID, SharesAmount: 1}))
	require.NoError(s.Commit(b, nil))

	vaults, err := s.ListVaults()
	require.NoError(err)
	require.Len(vaults, 2)
	require.ElementsMatch([]ids.ID{a.ID, b.ID}, []ids.ID{vaults[0].ID, vaults[1].ID})

	requests, err := s.ListRequests(a.ID)
	require.NoError(err)
	require.Len(requests, 1)
	require.Equal(uint64(1), requests[0].SharesAmount)

	requests, err = s.ListRequests(b.ID)
	require.NoError(err)
	require.Empty(requests)
}

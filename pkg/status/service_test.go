// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package status

import (
	"context"
	"testing"

	"github.com/luxfi/ids"
	"github.com/luxfi/vault/internal/testutils"
	"github.com/luxfi/vault/pkg/vault"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

var (
	authority = testutils.Account(1)
	alice     = testutils.Account(2)
	thief     = testutils.Account(9)
)

func setupVault(t *testing.T, env *testutils.Env, asset ids.ID) vault.Vault {
	ctx := context.Background()
	id, err := env.Manager.Initialize(ctx, authority, asset, 9, 3600)
	require.NoError(t, err)
	require.NoError(t, env.Ledger.Fund(ctx, asset, alice, 10_000))
	require.NoError(t, env.Ledger.Fund(ctx, asset, authority, 10_000))
	_, err = env.Manager.Deposit(ctx, id, alice, 4_000)
	require.NoError(t, err)
	_, err = env.Manager.IncreaseRate(ctx, id, authority, 400)
	require.NoError(t, err)
	_, err = env.Manager.RequestWithdrawal(ctx, id, alice, 1_000)
	require.NoError(t, err)
	v, err := env.Manager.Vault(ctx, id)
	require.NoError(t, err)
	return v
}

func TestAuditHealthyVaults(t *testing.T) {
	require := testutils.SetupTest(t)
	env := testutils.NewEnv(t)
	first := setupVault(t, env, testutils.Asset(1))
	second := setupVault(t, env, testutils.Asset(2))

	svc := NewAuditService(env.Manager, env.Ledger, env.Metrics, 2)
	result, err := svc.Audit(context.Background())
	require.NoError(err)
	require.Len(result.Vaults, 2)
	require.True(result.Healthy())

	for _, report := range result.Vaults {
		require.True(report.Solvent)
		require.Empty(report.Issues)
		require.Equal(report.TotalDeposits, report.CustodyBalance)
		require.Equal(report.TotalShares, report.ShareSupply)
		require.Equal("1.1000", report.Rate)
		require.Equal(uint64(1_100), report.PendingWithdrawals)
	}

	// repeated ids are audited once
	result, err = svc.Audit(context.Background(), first.ID, second.ID, first.ID)
	require.NoError(err)
	require.Len(result.Vaults, 2)
}

func TestAuditDetectsShortfall(t *testing.T) {
	require := testutils.SetupTest(t)
	env := testutils.NewEnv(t)
	v := setupVault(t, env, testutils.Asset(1))
	ctx := context.Background()

	reserve, err := v.RequiredReserve()
	require.NoError(err)
	require.NoError(env.Ledger.Transfer(ctx, v.DepositAsset, v.CustodyAccount, thief, 500))

	svc := NewAuditService(env.Manager, env.Ledger, env.Metrics, 1)
	result, err := svc.Audit(ctx, v.ID)
	require.NoError(err)
	require.False(result.Healthy())

	report := result.Vaults[0]
	require.False(report.Solvent)
	require.Equal(reserve-report.CustodyBalance, report.Shortfall)
	require.Len(report.Issues, 1)
	require.Contains(report.Issues[0], "custody holds")

	count, err := testutil.GatherAndCount(env.Metrics.Registry(), "vault_reserve_shortfall")
	require.NoError(err)
	require.Equal(1, count)
}

func TestAuditDetectsShareMismatch(t *testing.T) {
	require := testutils.SetupTest(t)
	env := testutils.NewEnv(t)
	v := setupVault(t, env, testutils.Asset(1))
	ctx := context.Background()

	require.NoError(env.Ledger.Mint(ctx, v.ShareAsset, thief, 7))

	result, err := NewAuditService(env.Manager, env.Ledger, nil, 4).Audit(ctx, v.ID)
	require.NoError(err)
	report := result.Vaults[0]
	require.True(report.Solvent)
	require.Equal(v.TotalShares+7, report.ShareSupply)
	require.Len(report.Issues, 1)
	require.Contains(report.Issues[0], "share supply")
}

func TestAuditUnknownVault(t *testing.T) {
	require := testutils.SetupTest(t)
	env := testutils.NewEnv(t)

	_, err := NewAuditService(env.Manager, env.Ledger, nil, 0).Audit(context.Background(), ids.GenerateTestID())
	require.ErrorIs(err, vault.ErrVaultNotFound)
}

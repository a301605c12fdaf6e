// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package monitoring

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNilMetricsAreNoOps(t *testing.T) {
	var m *Metrics
	m.ObserveOperation("deposit", ResultOK)
	m.ObserveVault(Snapshot{Vault: "v"})
	m.ObserveShortfall("v", 1)
	require.Nil(t, m.Registry())
	require.NoError(t, m.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")))
}

func TestWriteTextfile(t *testing.T) {
	require := require.New(t)

	m, err := New()
	require.NoError(err)
	m.ObserveOperation("deposit", ResultOK)
	m.ObserveOperation("deposit", ResultOK)
	m.ObserveOperation("claim-withdrawal", ResultRejected)
	m.ObserveVault(Snapshot{
		Vault:         "abc",
		TotalDeposits: 1650,
		TotalShares:   1500,
		Rate:          1_100_000_000,
		CurrentEpoch:  2,
	})

	path := filepath.Join(t.TempDir(), "metrics", "vault.prom")
	require.NoError(m.WriteTextfile(path))

	b, err := os.ReadFile(path)
	require.NoError(err)
	out := string(b)
	require.Contains(out, `vault_operations_total{op="deposit",result="ok"} 2`)
	require.Contains(out, `vault_operations_total{op="claim-withdrawal",result="rejected"} 1`)
	require.Contains(out, `vault_total_deposits{vault="abc"} 1650`)
	require.Contains(out, `vault_current_epoch{vault="abc"} 2`)
}

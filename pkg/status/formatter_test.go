// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package status

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/luxfi/vault/pkg/constants"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleResult() *AuditResult {
	return &AuditResult{
		DurationMS: 3,
		Vaults: []VaultReport{{
			Vault:           "vault-a",
			Rate:            "1.1000",
			TotalDeposits:   4_400,
			TotalShares:     3_000,
			CustodyBalance:  3_900,
			RequiredReserve: 4_400,
			Shortfall:       500,
			Issues:          []string{"custody holds 3900 but vault records 4400"},
		}},
	}
}

func TestFormatAuditTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf).FormatAudit(sampleResult(), OutputTable))
	out := buf.String()
	require.Contains(t, out, "vault-a")
	require.Contains(t, out, "NO (short 500)")
	require.Contains(t, out, "4_400")
	require.Contains(t, out, "audited 1 vaults in 3ms")
}

func TestFormatAuditJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf).FormatAudit(sampleResult(), OutputJSON))

	var decoded AuditResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, uint64(500), decoded.Vaults[0].Shortfall)
	require.False(t, decoded.Vaults[0].Solvent)
}

func TestFormatAuditYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf).FormatAudit(sampleResult(), OutputYAML))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	vaults, ok := decoded["vaults"].([]any)
	require.True(t, ok)
	require.Len(t, vaults, 1)
}

func TestFormatAuditUnknownOutput(t *testing.T) {
	err := NewFormatter(&bytes.Buffer{}).FormatAudit(sampleResult(), "xml")
	require.ErrorIs(t, err, constants.ErrInvalidOutput)
}

// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package status

import "time"

// VaultReport is the audited balance sheet of one vault.
type VaultReport struct {
	Vault              string `json:"vault" yaml:"vault"`
	Authority          string `json:"authority" yaml:"authority"`
	DepositAsset       string `json:"depositAsset" yaml:"depositAsset"`
	Rate               string `json:"rate" yaml:"rate"`
	TotalDeposits      uint64 `json:"totalDeposits" yaml:"totalDeposits"`
	TotalShares        uint64 `json:"totalShares" yaml:"totalShares"`
	PendingWithdrawals uint64 `json:"pendingWithdrawals" yaml:"pendingWithdrawals"`
	CurrentEpoch       uint64 `json:"currentEpoch" yaml:"currentEpoch"`
	CustodyBalance     uint64 `json:"custodyBalance" yaml:"custodyBalance"`
	RequiredReserve    uint64 `json:"requiredReserve" yaml:"requiredReserve"`
	ShareSupply        uint64 `json:"shareSupply" yaml:"shareSupply"`
	// Shortfall is how far custody is below the required reserve.
	Shortfall uint64   `json:"shortfall" yaml:"shortfall"`
	Solvent   bool     `json:"solvent" yaml:"solvent"`
	Issues    []string `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// AuditResult is the outcome of one audit run.
type AuditResult struct {
	Timestamp  time.Time     `json:"timestamp" yaml:"timestamp"`
	DurationMS int           `json:"durationMs" yaml:"durationMs"`
	Vaults     []VaultReport `json:"vaults" yaml:"vaults"`
}

// Healthy reports whether every audited vault passed every check.
func (r *AuditResult) Healthy() bool {
	for _, v := range r.Vaults {
		if !v.Solvent || len(v.Issues) > 0 {
			return false
		}
	}
	return true
}

// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package status audits vault balance sheets against the ledgers that
// hold their assets and shares.
package status

import (
	"context"
	"fmt"
	"time"

	"github.com/luxfi/ids"
	"github.com/luxfi/math/set"
	"github.com/luxfi/vault/pkg/monitoring"
	"github.com/luxfi/vault/pkg/vault"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// VaultReader reads vault records and custody balances.
type VaultReader interface {
	ListVaults(ctx context.Context) ([]vault.Vault, error)
	Vault(ctx context.Context, id ids.ID) (vault.Vault, error)
	CustodyBalance(ctx context.Context, v vault.Vault) (uint64, error)
}

// SupplyReader reports the issued supply of an asset.
type SupplyReader interface {
	Supply(ctx context.Context, asset ids.ID) (uint64, error)
}

// AuditService audits vaults concurrently.
type AuditService struct {
	vaults           VaultReader
	supply           SupplyReader
	metrics          *monitoring.Metrics
	concurrencyLimit int
}

// NewAuditService creates an audit service. metrics may be nil.
func NewAuditService(vaults VaultReader, supply SupplyReader, metrics *monitoring.Metrics, concurrencyLimit int) *AuditService {
	if concurrencyLimit < 1 {
		concurrencyLimit = 1
	}
	return &AuditService{
		vaults:           vaults,
		supply:           supply,
		metrics:          metrics,
		concurrencyLimit: concurrencyLimit,
	}
}

// Audit checks the given vaults, or every vault when none are given.
// Duplicate ids are audited once.
func (s *AuditService) Audit(ctx context.Context, vaultIDs ...ids.ID) (*AuditResult, error) {
	startTime := time.Now()

	var targets []vault.Vault
	if len(vaultIDs) == 0 {
		all, err := s.vaults.ListVaults(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list vaults: %w", err)
		}
		targets = all
	} else {
		seen := set.Of[ids.ID]()
		for _, id := range vaultIDs {
			if seen.Contains(id) {
				continue
			}
			seen.Add(id)
			v, err := s.vaults.Vault(ctx, id)
			if err != nil {
				return nil, err
			}
			targets = append(targets, v)
		}
	}

	sem := semaphore.NewWeighted(int64(s.concurrencyLimit))
	errGroup, ctx := errgroup.WithContext(ctx)

	result := &AuditResult{Vaults: make([]VaultReport, len(targets))}
	for i, v := range targets {
		errGroup.Go(func() error {
			if err := sem.Acquire(ctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			report, err := s.auditVault(ctx, v)
			if err != nil {
				return fmt.Errorf("auditing vault %s: %w", v.ID, err)
			}
			result.Vaults[i] = report
			return nil
		})
	}
	if err := errGroup.Wait(); err != nil {
		return nil, err
	}

	result.Timestamp = time.Now()
	result.DurationMS = int(time.Since(startTime).Milliseconds())
	return result, nil
}

func (s *AuditService) auditVault(ctx context.Context, v vault.Vault) (VaultReport, error) {
	custody, err := s.vaults.CustodyBalance(ctx, v)
	if err != nil {
		return VaultReport{}, err
	}
	supply, err := s.supply.Supply(ctx, v.ShareAsset)
	if err != nil {
		return VaultReport{}, err
	}

	report := VaultReport{
		Vault:              v.ID.String(),
		Authority:          v.Authority.String(),
		DepositAsset:       v.DepositAsset.String(),
		Rate:               vault.FormatRate(v.Rate),
		TotalDeposits:      v.TotalDeposits,
		TotalShares:        v.TotalShares,
		PendingWithdrawals: v.PendingWithdrawals,
		CurrentEpoch:       v.CurrentEpoch,
		CustodyBalance:     custody,
		ShareSupply:        supply,
	}

	reserve, err := v.RequiredReserve()
	if err != nil {
		report.Issues = append(report.Issues, fmt.Sprintf("reserve: %v", err))
	} else {
		report.RequiredReserve = reserve
		report.Solvent = custody >= reserve
		if !report.Solvent {
			report.Shortfall = reserve - custody
		}
	}
	if v.Rate < vault.RatePrecision {
		report.Issues = append(report.Issues, fmt.Sprintf("rate %s is below 1.0000", report.Rate))
	}
	if v.PendingWithdrawals > v.TotalDeposits {
		report.Issues = append(report.Issues,
			fmt.Sprintf("pending withdrawals %d exceed deposits %d", v.PendingWithdrawals, v.TotalDeposits))
	}
	if custody != v.TotalDeposits {
		report.Issues = append(report.Issues,
			fmt.Sprintf("custody holds %d but vault records %d", custody, v.TotalDeposits))
	}
	if supply != v.TotalShares {
		report.Issues = append(report.Issues,
			fmt.Sprintf("share supply %d but vault records %d", supply, v.TotalShares))
	}

	s.metrics.ObserveVault(monitoring.Snapshot{
		Vault:              report.Vault,
		TotalDeposits:      v.TotalDeposits,
		TotalShares:        v.TotalShares,
		PendingWithdrawals: v.PendingWithdrawals,
		Rate:               v.Rate,
		CurrentEpoch:       v.CurrentEpoch,
	})
	s.metrics.ObserveShortfall(report.Vault, report.Shortfall)
	return report, nil
}

// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"context"

	"github.com/luxfi/ids"
	"github.com/luxfi/vault/pkg/statemachine"
)

// Position is what one user holds in one vault.
type Position struct {
	Vault  ids.ID      `json:"vault" yaml:"vault"`
	User   ids.ShortID `json:"user" yaml:"user"`
	Shares uint64      `json:"shares" yaml:"shares"`
	// Value is Shares priced at the current rate.
	Value   uint64                 `json:"value" yaml:"value"`
	Slot    statemachine.SlotState `json:"slot" yaml:"slot"`
	Request *WithdrawalRequest     `json:"request,omitempty" yaml:"request,omitempty"`
}

func (m *Manager) Vault(ctx context.Context, vaultID ids.ID) (Vault, error) {
	if err := ctx.Err(); err != nil {
		return Vault{}, err
	}
	return m.cfg.Store.GetVault(vaultID)
}

// WithdrawalRequest returns the user's slot, nil when it is empty.
func (m *Manager) WithdrawalRequest(ctx context.Context, vaultID ids.ID, user ids.ShortID) (*WithdrawalRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := m.cfg.Store.GetVault(vaultID); err != nil {
		return nil, err
	}
	return m.cfg.Store.GetRequest(vaultID, user)
}

func (m *Manager) ListVaults(ctx context.Context) ([]Vault, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.cfg.Store.ListVaults()
}

func (m *Manager) Position(ctx context.Context, vaultID ids.ID, user ids.ShortID) (Position, error) {
	v, request, err := m.load(vaultID, user)
	if err != nil {
		return Position{}, err
	}
	shares, err := m.cfg.Shares.BalanceOf(ctx, v.ShareAsset, user)
	if err != nil {
		return Position{}, err
	}
	value, err := AmountForShares(shares, v.Rate)
	if err != nil {
		return Position{}, err
	}
	return Position{
		Vault:   vaultID,
		User:    user,
		Shares:  shares,
		Value:   value,
		Slot:    request.State(),
		Request: request,
	}, nil
}

// PreviewDeposit returns the shares a deposit of amount would mint now.
func (m *Manager) PreviewDeposit(ctx context.Context, vaultID ids.ID, amount uint64) (uint64, error) {
	v, err := m.Vault(ctx, vaultID)
	if err != nil {
		return 0, err
	}
	return SharesForAmount(amount, v.Rate)
}

// PreviewRedeem returns the asset units a withdrawal request for shares
// would lock now.
func (m *Manager) PreviewRedeem(ctx context.Context, vaultID ids.ID, shares uint64) (uint64, error) {
	v, err := m.Vault(ctx, vaultID)
	if err != nil {
		return 0, err
	}
	return AmountForShares(shares, v.Rate)
}

func (m *Manager) EpochStatus(ctx context.Context, vaultID ids.ID) (EpochStatus, error) {
	v, err := m.Vault(ctx, vaultID)
	if err != nil {
		return EpochStatus{}, err
	}
	return Status(v, unixNow(m.cfg.Clock)), nil
}

// CustodyBalance returns what the vault's custody account holds of its
// deposit asset.
func (m *Manager) CustodyBalance(ctx context.Context, v Vault) (uint64, error) {
	return m.cfg.Assets.BalanceOf(ctx, v.DepositAsset, v.CustodyAccount)
}

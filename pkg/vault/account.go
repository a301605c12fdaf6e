// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"fmt"

	"github.com/luxfi/ids"
)

// NewVault builds the initial record of the vault owned by authority for
// depositAsset. now is the unix time of creation and starts epoch 0.
func NewVault(authority ids.ShortID, depositAsset ids.ID, decimals uint8, epochDuration uint64, now uint64) (Vault, error) {
	if epochDuration == 0 {
		return Vault{}, ErrInvalidEpochDuration
	}
	id := VaultID(authority, depositAsset)
	return Vault{
		ID:                 id,
		Authority:          authority,
		DepositAsset:       depositAsset,
		ShareAsset:         ShareAssetID(id),
		CustodyAccount:     CustodyAccountID(id),
		Decimals:           decimals,
		Rate:               InitialRate,
		EpochDuration:      epochDuration,
		LastEpochTimestamp: now,
		CreatedAt:          now,
	}, nil
}

// Deposit moves amount into custody and mints shares at the current rate.
// A deposit worth less than one share unit mints nothing but is kept.
func (v Vault) Deposit(user ids.ShortID, amount uint64) (Transition, error) {
	if amount == 0 {
		return Transition{}, fmt.Errorf("%w: deposit must be positive", ErrInvalidAmount)
	}
	shares, err := SharesForAmount(amount, v.Rate)
	if err != nil {
		return Transition{}, err
	}

	next := v
	if next.TotalDeposits, err = safeAdd(v.TotalDeposits, amount); err != nil {
		return Transition{}, err
	}
	if next.TotalShares, err = safeAdd(v.TotalShares, shares); err != nil {
		return Transition{}, err
	}

	effects := []Effect{{
		Kind:   EffectTransfer,
		Asset:  v.DepositAsset,
		From:   user,
		To:     v.CustodyAccount,
		Amount: amount,
	}}
	if shares > 0 {
		effects = append(effects, Effect{Kind: EffectMint, Asset: v.ShareAsset, To: user, Amount: shares})
	}
	return Transition{Vault: next, Effects: effects, Result: shares}, nil
}

// IncreaseRate adds yield from the authority and recomputes the rate from
// the assets backing outstanding shares. Shares are neither minted nor burned.
func (v Vault) IncreaseRate(caller ids.ShortID, additional uint64) (Transition, error) {
	if caller != v.Authority {
		return Transition{}, fmt.Errorf("%w: %s is not the vault authority", ErrUnauthorized, caller)
	}
	if additional == 0 {
		return Transition{}, fmt.Errorf("%w: yield must be positive", ErrInvalidAmount)
	}
	if v.TotalShares == 0 {
		return Transition{}, ErrNoShares
	}

	next := v
	var err error
	if next.TotalDeposits, err = safeAdd(v.TotalDeposits, additional); err != nil {
		return Transition{}, err
	}
	if next.Rate, err = RateFor(next.BackingAssets(), next.TotalShares); err != nil {
		return Transition{}, err
	}
	if next.Rate < v.Rate {
		return Transition{}, fmt.Errorf("%w: rate would decrease from %d to %d", ErrInsolvent, v.Rate, next.Rate)
	}

	return Transition{
		Vault: next,
		Effects: []Effect{{
			Kind:   EffectTransfer,
			Asset:  v.DepositAsset,
			From:   caller,
			To:     v.CustodyAccount,
			Amount: additional,
		}},
		Result: next.Rate,
	}, nil
}

// RequestWithdrawal burns shares and locks their value at the current rate
// into the user's slot. The locked amount stays in TotalDeposits until claimed.
func (v Vault) RequestWithdrawal(user ids.ShortID, shares uint64, existing *WithdrawalRequest, now uint64) (Transition, error) {
	if shares == 0 {
		return Transition{}, fmt.Errorf("%w: shares must be positive", ErrInvalidAmount)
	}
	tokens, err := AmountForShares(shares, v.Rate)
	if err != nil {
		return Transition{}, err
	}
	request, err := OpenRequest(existing, user, v.ID, shares, tokens, v.CurrentEpoch, now)
	if err != nil {
		return Transition{}, err
	}
	if shares > v.TotalShares {
		return Transition{}, fmt.Errorf("%w: %d shares requested, %d outstanding", ErrInsufficientFunds, shares, v.TotalShares)
	}

	next := v
	next.TotalShares = v.TotalShares - shares
	if next.PendingWithdrawals, err = safeAdd(v.PendingWithdrawals, tokens); err != nil {
		return Transition{}, err
	}
	if next.PendingWithdrawals > next.TotalDeposits {
		return Transition{}, fmt.Errorf("%w: %d locked against %d deposited", ErrInsolvent, next.PendingWithdrawals, next.TotalDeposits)
	}

	return Transition{
		Vault:   next,
		Request: request,
		Effects: []Effect{{Kind: EffectBurn, Asset: v.ShareAsset, From: user, Amount: shares}},
		Result:  tokens,
	}, nil
}

// ClaimWithdrawal pays out a pending request once its epoch has been reached.
func (v Vault) ClaimWithdrawal(existing *WithdrawalRequest, now uint64) (Transition, error) {
	claimed, err := MarkClaimed(existing, now)
	if err != nil {
		return Transition{}, err
	}
	if err := ClaimGate(v, existing); err != nil {
		return Transition{}, err
	}

	tokens := existing.TokensToReceive
	next := v
	if next.TotalDeposits, err = safeSub(v.TotalDeposits, tokens); err != nil {
		return Transition{}, err
	}
	if next.PendingWithdrawals, err = safeSub(v.PendingWithdrawals, tokens); err != nil {
		return Transition{}, err
	}

	var effects []Effect
	if tokens > 0 {
		effects = append(effects, Effect{
			Kind:   EffectTransfer,
			Asset:  v.DepositAsset,
			From:   v.CustodyAccount,
			To:     existing.User,
			Amount: tokens,
		})
	}
	return Transition{Vault: next, Request: claimed, Effects: effects, Result: tokens}, nil
}

// AdvanceEpoch moves to the next epoch once EpochDuration has elapsed.
func (v Vault) AdvanceEpoch(now uint64) (Transition, error) {
	if !CanAdvance(v, now) {
		return Transition{}, fmt.Errorf("%w: next epoch at %d, now %d", ErrEpochNotElapsed, NextEpochAt(v), now)
	}
	return v.nextEpoch(now)
}

// ForceAdvanceEpoch lets the authority advance without waiting out the timer.
func (v Vault) ForceAdvanceEpoch(caller ids.ShortID, now uint64) (Transition, error) {
	if caller != v.Authority {
		return Transition{}, fmt.Errorf("%w: %s is not the vault authority", ErrUnauthorized, caller)
	}
	return v.nextEpoch(now)
}

func (v Vault) nextEpoch(now uint64) (Transition, error) {
	next := v
	var err error
	if next.CurrentEpoch, err = safeAdd(v.CurrentEpoch, 1); err != nil {
		return Transition{}, err
	}
	next.LastEpochTimestamp = now
	return Transition{Vault: next, Result: next.CurrentEpoch}, nil
}

// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"context"
	"fmt"

	"github.com/luxfi/ids"
)

// EffectKind is the kind of external side effect an operation requests.
type EffectKind int

const (
	EffectTransfer EffectKind = iota
	EffectMint
	EffectBurn
)

func (k EffectKind) String() string {
	switch k {
	case EffectTransfer:
		return "transfer"
	case EffectMint:
		return "mint"
	case EffectBurn:
		return "burn"
	default:
		return fmt.Sprintf("effect(%d)", int(k))
	}
}

// Effect is one call into the asset transfer or share token capability.
// Mint uses To, Burn uses From.
type Effect struct {
	Kind   EffectKind
	Asset  ids.ID
	From   ids.ShortID
	To     ids.ShortID
	Amount uint64
}

// inverse returns the effect that undoes e.
func (e Effect) inverse() Effect {
	switch e.Kind {
	case EffectMint:
		return Effect{Kind: EffectBurn, Asset: e.Asset, From: e.To, Amount: e.Amount}
	case EffectBurn:
		return Effect{Kind: EffectMint, Asset: e.Asset, To: e.From, Amount: e.Amount}
	default:
		return Effect{Kind: EffectTransfer, Asset: e.Asset, From: e.To, To: e.From, Amount: e.Amount}
	}
}

// Transition is the outcome of a pure vault operation: the next vault
// record, the next slot (nil when untouched), and the side effects that
// must succeed before either is committed.
type Transition struct {
	Vault   Vault
	Request *WithdrawalRequest
	Effects []Effect
	// Result is the operation's return value: shares minted, tokens locked
	// or paid out, the new rate, or the new epoch.
	Result uint64
}

// debits returns the total amount the transition moves out of account.
func (t Transition) debits(asset ids.ID, account ids.ShortID) (uint64, error) {
	var total uint64
	for _, e := range t.Effects {
		if e.Kind != EffectTransfer || e.Asset != asset || e.From != account {
			continue
		}
		var err error
		if total, err = safeAdd(total, e.Amount); err != nil {
			return 0, err
		}
	}
	return total, nil
}

func applyEffect(ctx context.Context, assets AssetTransfer, shares ShareToken, e Effect) error {
	switch e.Kind {
	case EffectMint:
		return shares.Mint(ctx, e.Asset, e.To, e.Amount)
	case EffectBurn:
		return shares.Burn(ctx, e.Asset, e.From, e.Amount)
	default:
		return assets.Transfer(ctx, e.Asset, e.From, e.To, e.Amount)
	}
}

// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"crypto/sha256"

	"github.com/luxfi/ids"
	"github.com/luxfi/vault/pkg/statemachine"
)

// Vault is the aggregate record of one authority/asset custody relationship.
type Vault struct {
	ID             ids.ID      `cbor:"id" json:"id" yaml:"id"`
	Authority      ids.ShortID `cbor:"authority" json:"authority" yaml:"authority"`
	DepositAsset   ids.ID      `cbor:"depositAsset" json:"depositAsset" yaml:"depositAsset"`
	ShareAsset     ids.ID      `cbor:"shareAsset" json:"shareAsset" yaml:"shareAsset"`
	CustodyAccount ids.ShortID `cbor:"custodyAccount" json:"custodyAccount" yaml:"custodyAccount"`
	Decimals       uint8       `cbor:"decimals" json:"decimals" yaml:"decimals"`

	// TotalDeposits counts asset units still held for the vault, including
	// those locked into unclaimed withdrawal requests.
	TotalDeposits uint64 `cbor:"totalDeposits" json:"totalDeposits" yaml:"totalDeposits"`
	TotalShares   uint64 `cbor:"totalShares" json:"totalShares" yaml:"totalShares"`
	// Rate is assets per share scaled by RatePrecision. It never decreases.
	Rate uint64 `cbor:"rate" json:"rate" yaml:"rate"`
	// PendingWithdrawals is the sum of TokensToReceive over unclaimed requests.
	PendingWithdrawals uint64 `cbor:"pendingWithdrawals" json:"pendingWithdrawals" yaml:"pendingWithdrawals"`

	CurrentEpoch       uint64 `cbor:"currentEpoch" json:"currentEpoch" yaml:"currentEpoch"`
	EpochDuration      uint64 `cbor:"epochDuration" json:"epochDuration" yaml:"epochDuration"`
	LastEpochTimestamp uint64 `cbor:"lastEpochTimestamp" json:"lastEpochTimestamp" yaml:"lastEpochTimestamp"`
	CreatedAt          uint64 `cbor:"createdAt" json:"createdAt" yaml:"createdAt"`
}

// BackingAssets is the portion of TotalDeposits that backs outstanding shares.
func (v Vault) BackingAssets() uint64 {
	if v.PendingWithdrawals > v.TotalDeposits {
		return 0
	}
	return v.TotalDeposits - v.PendingWithdrawals
}

// RequiredReserve is the minimum custody balance that keeps the vault solvent:
// the value of every outstanding share at the current rate plus every
// unclaimed withdrawal.
func (v Vault) RequiredReserve() (uint64, error) {
	shareValue, err := AmountForShares(v.TotalShares, v.Rate)
	if err != nil {
		return 0, err
	}
	return safeAdd(shareValue, v.PendingWithdrawals)
}

// WithdrawalRequest is the single reusable withdrawal slot of a user in a vault.
type WithdrawalRequest struct {
	User            ids.ShortID `cbor:"user" json:"user" yaml:"user"`
	Vault           ids.ID      `cbor:"vault" json:"vault" yaml:"vault"`
	SharesAmount    uint64      `cbor:"sharesAmount" json:"sharesAmount" yaml:"sharesAmount"`
	TokensToReceive uint64      `cbor:"tokensToReceive" json:"tokensToReceive" yaml:"tokensToReceive"`
	RequestEpoch    uint64      `cbor:"requestEpoch" json:"requestEpoch" yaml:"requestEpoch"`
	ClaimableEpoch  uint64      `cbor:"claimableEpoch" json:"claimableEpoch" yaml:"claimableEpoch"`
	Claimed         bool        `cbor:"claimed" json:"claimed" yaml:"claimed"`
	RequestedAt     uint64      `cbor:"requestedAt" json:"requestedAt" yaml:"requestedAt"`
	ClaimedAt       uint64      `cbor:"claimedAt,omitempty" json:"claimedAt,omitempty" yaml:"claimedAt,omitempty"`
}

// State returns the slot state; a nil request is an empty slot.
func (r *WithdrawalRequest) State() statemachine.SlotState {
	switch {
	case r == nil:
		return statemachine.StateEmpty
	case r.Claimed:
		return statemachine.StateClaimed
	default:
		return statemachine.StatePending
	}
}

// VaultID derives the id of the vault owned by authority for depositAsset.
// A second initialize for the same pair maps onto the same id.
func VaultID(authority ids.ShortID, depositAsset ids.ID) ids.ID {
	h := sha256.New()
	h.Write([]byte("vault"))
	h.Write(authority[:])
	h.Write(depositAsset[:])
	var id ids.ID
	copy(id[:], h.Sum(nil))
	return id
}

// ShareAssetID derives the share (IOU) asset minted by a vault.
func ShareAssetID(vaultID ids.ID) ids.ID {
	h := sha256.New()
	h.Write([]byte("share"))
	h.Write(vaultID[:])
	var id ids.ID
	copy(id[:], h.Sum(nil))
	return id
}

// CustodyAccountID derives the account holding a vault's deposits.
func CustodyAccountID(vaultID ids.ID) ids.ShortID {
	h := sha256.New()
	h.Write([]byte("custody"))
	h.Write(vaultID[:])
	var account ids.ShortID
	copy(account[:], h.Sum(nil))
	return account
}

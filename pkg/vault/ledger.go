// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"github.com/luxfi/ids"
	"github.com/luxfi/vault/pkg/statemachine"
)

// OpenRequest writes a new pending request into the (vault, user) slot.
// The slot must be empty or hold a claimed request, which is overwritten.
func OpenRequest(
	existing *WithdrawalRequest,
	user ids.ShortID,
	vaultID ids.ID,
	shares uint64,
	tokens uint64,
	epoch uint64,
	now uint64,
) (*WithdrawalRequest, error) {
	if !statemachine.CanTransition(existing.State(), statemachine.StatePending) {
		return nil, ErrPendingWithdrawalExists
	}
	claimable, err := safeAdd(epoch, 1)
	if err != nil {
		return nil, err
	}
	return &WithdrawalRequest{
		User:            user,
		Vault:           vaultID,
		SharesAmount:    shares,
		TokensToReceive: tokens,
		RequestEpoch:    epoch,
		ClaimableEpoch:  claimable,
		RequestedAt:     now,
	}, nil
}

// MarkClaimed returns a copy of request flagged as settled. The record is
// kept so the next OpenRequest can overwrite it.
func MarkClaimed(request *WithdrawalRequest, now uint64) (*WithdrawalRequest, error) {
	state := request.State()
	switch {
	case state == statemachine.StateEmpty:
		return nil, ErrNoWithdrawalRequest
	case !statemachine.CanTransition(state, statemachine.StateClaimed):
		return nil, ErrAlreadyClaimed
	}
	claimed := *request
	claimed.Claimed = true
	claimed.ClaimedAt = now
	return &claimed, nil
}

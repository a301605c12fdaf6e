// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import "fmt"

// EpochStatus summarizes the epoch clock of a vault at a point in time.
type EpochStatus struct {
	CurrentEpoch uint64 `json:"currentEpoch" yaml:"currentEpoch"`
	// NextEpochAt is the earliest unix time an unforced advance succeeds.
	NextEpochAt uint64 `json:"nextEpochAt" yaml:"nextEpochAt"`
	// SecondsRemaining is zero once an advance is allowed.
	SecondsRemaining uint64 `json:"secondsRemaining" yaml:"secondsRemaining"`
}

// elapsedSince treats a clock reading before last as no time passed.
func elapsedSince(last, now uint64) uint64 {
	if now < last {
		return 0
	}
	return now - last
}

// NextEpochAt returns the earliest unix time at which AdvanceEpoch succeeds.
func NextEpochAt(v Vault) uint64 {
	next, err := safeAdd(v.LastEpochTimestamp, v.EpochDuration)
	if err != nil {
		return ^uint64(0)
	}
	return next
}

// CanAdvance reports whether the epoch duration has elapsed at now.
func CanAdvance(v Vault, now uint64) bool {
	return elapsedSince(v.LastEpochTimestamp, now) >= v.EpochDuration
}

// Status reports the epoch clock of v at now.
func Status(v Vault, now uint64) EpochStatus {
	status := EpochStatus{
		CurrentEpoch: v.CurrentEpoch,
		NextEpochAt:  NextEpochAt(v),
	}
	if status.NextEpochAt > now {
		status.SecondsRemaining = status.NextEpochAt - now
	}
	return status
}

// ClaimGate rejects a claim made before the request's claimable epoch.
func ClaimGate(v Vault, request *WithdrawalRequest) error {
	if v.CurrentEpoch < request.ClaimableEpoch {
		return fmt.Errorf("%w: current epoch %d, claimable at %d",
			ErrEpochNotReached, v.CurrentEpoch, request.ClaimableEpoch)
	}
	return nil
}

// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package statemachine

import "fmt"

// SlotState represents the state of a withdrawal request slot
type SlotState int

const (
	// StateEmpty is a slot that has never held a request
	StateEmpty SlotState = iota
	// StatePending is a slot holding an unclaimed request
	StatePending
	// StateClaimed is a slot whose request has been settled
	StateClaimed
)

func (s SlotState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePending:
		return "pending"
	case StateClaimed:
		return "claimed"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// MarshalText renders the state by name in JSON and YAML output.
func (s SlotState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// transitions lists every permitted slot transition. Pending -> Pending is
// absent: a user holds at most one outstanding request per vault.
var transitions = map[SlotState][]SlotState{
	StateEmpty:   {StatePending},
	StatePending: {StateClaimed},
	StateClaimed: {StatePending},
}

// CanTransition reports whether a slot may move from one state to another
func CanTransition(from, to SlotState) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

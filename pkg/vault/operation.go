// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"context"
	"fmt"

	"github.com/luxfi/ids"
	"github.com/luxfi/vault/pkg/codec"
)

// OpKind names a mutating vault operation.
type OpKind string

const (
	OpInitialize        OpKind = "initialize"
	OpDeposit           OpKind = "deposit"
	OpIncreaseRate      OpKind = "increase-rate"
	OpRequestWithdrawal OpKind = "request-withdrawal"
	OpClaimWithdrawal   OpKind = "claim-withdrawal"
	OpAdvanceEpoch      OpKind = "advance-epoch"
	OpForceAdvanceEpoch OpKind = "force-advance-epoch"
)

// Operation is what an Authorizer is asked to approve. Amount is zero for
// operations that take none.
type Operation struct {
	Kind   OpKind      `cbor:"kind"`
	Vault  ids.ID      `cbor:"vault"`
	Caller ids.ShortID `cbor:"caller"`
	Amount uint64      `cbor:"amount"`
}

func (op Operation) String() string {
	return fmt.Sprintf("%s(vault=%s caller=%s amount=%d)", op.Kind, op.Vault, op.Caller, op.Amount)
}

// Digest is the message a caller signs to authorize op.
func (op Operation) Digest() ([32]byte, error) {
	return codec.Digest(op)
}

type signatureKey struct{}

// WithSignature attaches the caller's signature over an operation digest.
func WithSignature(ctx context.Context, sig []byte) context.Context {
	return context.WithValue(ctx, signatureKey{}, sig)
}

// SignatureFrom returns the signature attached by WithSignature.
func SignatureFrom(ctx context.Context) ([]byte, bool) {
	sig, ok := ctx.Value(signatureKey{}).([]byte)
	return sig, ok && len(sig) > 0
}

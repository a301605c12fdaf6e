// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package key

import (
	"context"
	"fmt"

	"github.com/luxfi/crypto/secp256k1"
	"github.com/luxfi/vault/pkg/vault"
)

var _ vault.Authorizer = SignatureAuthorizer{}

// SignatureAuthorizer accepts an operation when the signature attached to
// the context was made by the key of op.Caller over op's digest.
type SignatureAuthorizer struct{}

func (SignatureAuthorizer) Authorize(ctx context.Context, op vault.Operation) error {
	sig, _ := vault.SignatureFrom(ctx)
	return Verify(op, sig)
}

// Verify checks sig against op.
func Verify(op vault.Operation, sig []byte) error {
	if len(sig) == 0 {
		return fmt.Errorf("%w: %s is not signed", vault.ErrUnauthorized, op.Kind)
	}
	digest, err := op.Digest()
	if err != nil {
		return err
	}
	pub, err := secp256k1.RecoverPublicKey(digest[:], sig)
	if err != nil {
		return fmt.Errorf("%w: %w", vault.ErrUnauthorized, err)
	}
	if signer := pub.Address(); signer != op.Caller {
		return fmt.Errorf("%w: signed by %s, not %s", vault.ErrUnauthorized, signer, op.Caller)
	}
	return nil
}

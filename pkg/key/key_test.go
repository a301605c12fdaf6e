// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package key

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/luxfi/crypto/cb58"
	"github.com/luxfi/crypto/secp256k1"
	"github.com/luxfi/ids"
	"github.com/luxfi/vault/pkg/vault"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestNewKeyGenerated(t *testing.T) {
	t.Parallel()

	m, err := NewSoft()
	if err != nil {
		t.Fatal(err)
	}
	if m.Address() == ids.ShortEmpty {
		t.Fatal("expected a non-empty address")
	}

	keyPath := filepath.Join(t.TempDir(), "key.pk")
	if err := m.Save(keyPath); err != nil {
		t.Fatal(err)
	}

	m2, err := LoadSoft(keyPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(m.Raw(), m2.Raw()) {
		t.Fatalf("loaded key unexpected %v, expected %v", m2.Raw(), m.Raw())
	}
	if m.Address() != m2.Address() {
		t.Fatalf("loaded address %s, expected %s", m2.Address(), m.Address())
	}
}

func TestLoadHexKeyFile(t *testing.T) {
	t.Parallel()

	privKey, err := secp256k1.NewPrivateKey()
	if err != nil {
		t.Fatal(err)
	}
	keyPath := filepath.Join(t.TempDir(), "hex.pk")
	if err := os.WriteFile(keyPath, []byte(hex.EncodeToString(privKey.Bytes())+"\n"), fsModeWrite); err != nil {
		t.Fatal(err)
	}
	m, err := LoadSoft(keyPath)
	if err != nil {
		t.Fatal(err)
	}
	if m.Address() != privKey.PublicKey().Address() {
		t.Fatal("hex key file loaded a different key")
	}

	bad := filepath.Join(t.TempDir(), "short.pk")
	if err := os.WriteFile(bad, []byte("abcd"), fsModeWrite); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSoft(bad); !errors.Is(err, ErrInvalidPrivateKeyLen) {
		t.Fatalf("unexpected error %v, expected %v", err, ErrInvalidPrivateKeyLen)
	}
}

func TestNewKeyWithOptions(t *testing.T) {
	t.Parallel()

	privKey1, err := secp256k1.NewPrivateKey()
	if err != nil {
		t.Fatal(err)
	}
	privKey2, err := secp256k1.NewPrivateKey()
	if err != nil {
		t.Fatal(err)
	}
	encoded, err := cb58.Encode(privKey1.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	encodedWithPrefix := "PrivateKey-" + encoded

	tt := []struct {
		name   string
		opts   []SOpOption
		expErr error
	}{
		{
			name: "test no opts",
		},
		{
			name: "with WithPrivateKey",
			opts: []SOpOption{WithPrivateKey(privKey1)},
		},
		{
			name: "with WithPrivateKeyEncoded",
			opts: []SOpOption{WithPrivateKeyEncoded(encodedWithPrefix)},
		},
		{
			name: "with WithPrivateKey and WithPrivateKeyEncoded matching",
			opts: []SOpOption{
				WithPrivateKey(privKey1),
				WithPrivateKeyEncoded(encodedWithPrefix),
			},
		},
		{
			name: "with invalid mismatched keys",
			opts: []SOpOption{
				WithPrivateKey(privKey2),
				WithPrivateKeyEncoded(encodedWithPrefix),
			},
			expErr: ErrInvalidPrivateKey,
		},
		{
			name:   "with invalid mnemonic",
			opts:   []SOpOption{WithMnemonic("not a mnemonic", 0)},
			expErr: ErrInvalidMnemonic,
		},
	}
	for i, tv := range tt {
		_, err := NewSoft(tv.opts...)
		if !errors.Is(err, tv.expErr) {
			t.Fatalf("#%d(%s): unexpected error %v, expected %v", i, tv.name, err, tv.expErr)
		}
	}
}

func TestMnemonicDerivation(t *testing.T) {
	t.Parallel()

	a, err := NewSoft(WithMnemonic(testMnemonic, 0))
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewSoft(WithMnemonic(testMnemonic, 0))
	if err != nil {
		t.Fatal(err)
	}
	c, err := NewSoft(WithMnemonic(testMnemonic, 1))
	if err != nil {
		t.Fatal(err)
	}
	if a.Address() != b.Address() {
		t.Fatal("same mnemonic and index derived different keys")
	}
	if a.Address() == c.Address() {
		t.Fatal("different account indexes derived the same key")
	}

	mnemonic, err := NewMnemonic()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewSoft(WithMnemonic(mnemonic, 0)); err != nil {
		t.Fatal(err)
	}
}

func TestAddressFormat(t *testing.T) {
	t.Parallel()

	m, err := NewSoft()
	if err != nil {
		t.Fatal(err)
	}
	bech, err := m.Bech32()
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{bech, m.Address().String()} {
		addr, err := ParseAddress(s)
		if err != nil {
			t.Fatal(err)
		}
		if addr != m.Address() {
			t.Fatalf("parsed %s from %q, expected %s", addr, s, m.Address())
		}
	}
}

func TestSignatureAuthorizer(t *testing.T) {
	t.Parallel()

	signer, err := NewSoft()
	if err != nil {
		t.Fatal(err)
	}
	other, err := NewSoft()
	if err != nil {
		t.Fatal(err)
	}
	op := vault.Operation{
		Kind:   vault.OpDeposit,
		Vault:  ids.GenerateTestID(),
		Caller: signer.Address(),
		Amount: 1000,
	}
	sig, err := signer.Sign(op)
	if err != nil {
		t.Fatal(err)
	}

	auth := SignatureAuthorizer{}
	if err := auth.Authorize(vault.WithSignature(context.Background(), sig), op); err != nil {
		t.Fatal(err)
	}

	// unsigned
	if err := auth.Authorize(context.Background(), op); !errors.Is(err, vault.ErrUnauthorized) {
		t.Fatalf("unexpected error %v, expected %v", err, vault.ErrUnauthorized)
	}

	// signed by someone else
	forged, err := other.Sign(op)
	if err != nil {
		t.Fatal(err)
	}
	if err := auth.Authorize(vault.WithSignature(context.Background(), forged), op); !errors.Is(err, vault.ErrUnauthorized) {
		t.Fatalf("unexpected error %v, expected %v", err, vault.ErrUnauthorized)
	}

	// signature over a different amount
	tampered := op
	tampered.Amount = 1001
	if err := auth.Authorize(vault.WithSignature(context.Background(), sig), tampered); !errors.Is(err, vault.ErrUnauthorized) {
		t.Fatalf("unexpected error %v, expected %v", err, vault.ErrUnauthorized)
	}
}

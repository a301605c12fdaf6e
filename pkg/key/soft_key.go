// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package key manages the secp256k1 keys that identify vault principals
// and sign vault operations.
package key

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/luxfi/address"
	"github.com/luxfi/crypto/cb58"
	"github.com/luxfi/crypto/secp256k1"
	"github.com/luxfi/ids"
	"github.com/luxfi/vault/pkg/vault"
)

var (
	ErrInvalidPrivateKey         = errors.New("invalid private key")
	ErrInvalidPrivateKeyLen      = errors.New("invalid private key length (expect 64 bytes in hex)")
	ErrInvalidPrivateKeyEnding   = errors.New("invalid private key ending")
	ErrInvalidPrivateKeyEncoding = errors.New("invalid private key encoding")
)

const (
	// EncodedPrefix starts every encoded private key.
	EncodedPrefix = "PrivateKey-"
	privKeySize   = 64

	// ChainAlias and HRP format account addresses as L-vault1...
	ChainAlias = "L"
	HRP        = "vault"

	fsModeWrite = 0o600
)

// SoftKey is a private key held in memory and stored as a file.
type SoftKey struct {
	privKey        *secp256k1.PrivateKey
	privKeyEncoded string
	addr           ids.ShortID
}

type SOp struct {
	privKey        *secp256k1.PrivateKey
	privKeyEncoded string
	mnemonic       string
	accountIndex   uint32
}

type SOpOption func(*SOp)

func (sop *SOp) applyOpts(opts []SOpOption) {
	for _, opt := range opts {
		opt(sop)
	}
}

// WithPrivateKey uses an already loaded private key.
func WithPrivateKey(privKey *secp256k1.PrivateKey) SOpOption {
	return func(sop *SOp) {
		sop.privKey = privKey
	}
}

// WithPrivateKeyEncoded uses a "PrivateKey-" prefixed CB58 key.
func WithPrivateKeyEncoded(privKey string) SOpOption {
	return func(sop *SOp) {
		sop.privKeyEncoded = privKey
	}
}

// WithMnemonic derives the key at m/44'/9000'/0'/0/{accountIndex}.
func WithMnemonic(mnemonic string, accountIndex uint32) SOpOption {
	return func(sop *SOp) {
		sop.mnemonic = mnemonic
		sop.accountIndex = accountIndex
	}
}

// NewSoft builds a key from the options, generating a fresh one when none
// is given.
func NewSoft(opts ...SOpOption) (*SoftKey, error) {
	ret := &SOp{}
	ret.applyOpts(opts)

	if ret.mnemonic != "" {
		raw, err := deriveMnemonicKey(ret.mnemonic, ret.accountIndex)
		if err != nil {
			return nil, err
		}
		privKey, err := secp256k1.ToPrivateKey(raw)
		if err != nil {
			return nil, err
		}
		ret.privKey = privKey
	}

	if len(ret.privKeyEncoded) > 0 {
		privKey, err := decodePrivateKey(ret.privKeyEncoded)
		if err != nil {
			return nil, err
		}
		// to not overwrite
		if ret.privKey != nil &&
			!bytes.Equal(ret.privKey.Bytes(), privKey.Bytes()) {
			return nil, ErrInvalidPrivateKey
		}
		ret.privKey = privKey
	}

	if ret.privKey == nil {
		var err error
		ret.privKey, err = secp256k1.NewPrivateKey()
		if err != nil {
			return nil, err
		}
	}

	privKeyEncoded, err := encodePrivateKey(ret.privKey)
	if err != nil {
		return nil, err
	}
	if ret.privKeyEncoded != "" && strings.TrimSpace(ret.privKeyEncoded) != privKeyEncoded {
		return nil, ErrInvalidPrivateKeyEncoding
	}

	return &SoftKey{
		privKey:        ret.privKey,
		privKeyEncoded: privKeyEncoded,
		addr:           ret.privKey.PublicKey().Address(),
	}, nil
}

// LoadSoft reads a key file holding either the encoded key or 64 hex chars.
func LoadSoft(keyPath string) (*SoftKey, error) {
	kb, err := os.ReadFile(keyPath) //nolint:gosec // G304: Reading user-specified key file
	if err != nil {
		return nil, err
	}

	// in case, it's already encoded
	if strings.HasPrefix(string(kb), EncodedPrefix) {
		return NewSoft(WithPrivateKeyEncoded(strings.TrimSpace(string(kb))))
	}

	r := bufio.NewReader(bytes.NewBuffer(kb))
	buf := make([]byte, privKeySize)
	n, err := readASCII(buf, r)
	if err != nil {
		return nil, err
	}
	if n != len(buf) {
		return nil, ErrInvalidPrivateKeyLen
	}
	if err := checkKeyFileEnd(r); err != nil {
		return nil, err
	}

	skBytes, err := hex.DecodeString(string(buf))
	if err != nil {
		return nil, err
	}
	privKey, err := secp256k1.ToPrivateKey(skBytes)
	if err != nil {
		return nil, err
	}
	return NewSoft(WithPrivateKey(privKey))
}

// readASCII reads into 'buf', stopping when the buffer is full or
// when a non-printable control character is encountered.
func readASCII(buf []byte, r io.ByteReader) (n int, err error) {
	for ; n < len(buf); n++ {
		buf[n], err = r.ReadByte()
		switch {
		case errors.Is(err, io.EOF) || buf[n] < '!':
			return n, nil
		case err != nil:
			return n, err
		}
	}
	return n, nil
}

const fileEndLimit = 1

// checkKeyFileEnd skips over additional newlines at the end of a key file.
func checkKeyFileEnd(r io.ByteReader) error {
	for idx := 0; ; idx++ {
		b, err := r.ReadByte()
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		case b != '\n' && b != '\r':
			return ErrInvalidPrivateKeyEnding
		case idx > fileEndLimit:
			return ErrInvalidPrivateKeyLen
		}
	}
}

func encodePrivateKey(pk *secp256k1.PrivateKey) (string, error) {
	enc, err := cb58.Encode(pk.Bytes())
	if err != nil {
		return "", err
	}
	return EncodedPrefix + enc, nil
}

func decodePrivateKey(enc string) (*secp256k1.PrivateKey, error) {
	rawPk := strings.TrimPrefix(strings.TrimSpace(enc), EncodedPrefix)
	skBytes, err := cb58.Decode(rawPk)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPrivateKeyEncoding, err)
	}
	return secp256k1.ToPrivateKey(skBytes)
}

// Address is the account id of the key.
func (m *SoftKey) Address() ids.ShortID {
	return m.addr
}

// Bech32 returns the address formatted as L-vault1...
func (m *SoftKey) Bech32() (string, error) {
	return FormatAddress(m.addr)
}

// Returns the private key encoded in CB58 and "PrivateKey-" prefix.
func (m *SoftKey) Encode() string {
	return m.privKeyEncoded
}

func (m *SoftKey) Raw() []byte {
	return m.privKey.Bytes()
}

// Save writes the encoded key to p, readable by the owner only.
func (m *SoftKey) Save(p string) error {
	return os.WriteFile(p, []byte(m.privKeyEncoded), fsModeWrite)
}

// Sign signs the digest of op.
func (m *SoftKey) Sign(op vault.Operation) ([]byte, error) {
	digest, err := op.Digest()
	if err != nil {
		return nil, err
	}
	return m.privKey.Sign(digest[:])
}

// FormatAddress renders an account id as L-vault1...
func FormatAddress(addr ids.ShortID) (string, error) {
	return address.Format(ChainAlias, HRP, addr.Bytes())
}

// ParseAddress accepts either a bech32 address or a CB58 short id.
func ParseAddress(s string) (ids.ShortID, error) {
	if strings.HasPrefix(s, ChainAlias+"-") {
		return address.ParseToID(s)
	}
	return ids.ShortFromString(s)
}

// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package key

import (
	"errors"
	"fmt"

	"github.com/luxfi/go-bip32"
	"github.com/luxfi/go-bip39"
)

// LUXCoinType is the BIP-44 coin type for LUX (9000')
const LUXCoinType = 9000

var ErrInvalidMnemonic = errors.New("invalid mnemonic phrase")

// NewMnemonic generates a 24 word BIP-39 mnemonic.
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return "", err
	}
	return bip39.NewMnemonic(entropy)
}

// deriveMnemonicKey derives the private key at m/44'/9000'/0'/0/{accountIndex}.
func deriveMnemonicKey(mnemonic string, accountIndex uint32) ([]byte, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}
	key, err := bip32.NewMasterKey(bip39.NewSeed(mnemonic, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create master key: %w", err)
	}
	path := []uint32{
		bip32.FirstHardenedChild + 44,
		bip32.FirstHardenedChild + LUXCoinType,
		bip32.FirstHardenedChild,
		0,
		accountIndex,
	}
	for _, child := range path {
		if key, err = key.NewChildKey(child); err != nil {
			return nil, fmt.Errorf("failed to derive child %d: %w", child, err)
		}
	}
	return key.Key, nil
}

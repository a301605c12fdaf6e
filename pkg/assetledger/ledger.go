// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package assetledger is a local fungible asset ledger. It settles vault
// transfers and mints and burns vault shares when no external chain is
// attached.
package assetledger

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/luxfi/database"
	"github.com/luxfi/ids"
	"github.com/luxfi/vault/pkg/vault"
)

var (
	balancePrefix = []byte("balance/")
	supplyPrefix  = []byte("supply/")

	errCorruptAmount = errors.New("stored amount is not 8 bytes")

	_ vault.AssetTransfer = (*Ledger)(nil)
	_ vault.ShareToken    = (*Ledger)(nil)
)

// Ledger stores one big-endian balance per (asset, account) and one supply
// per asset. Every mutation is written in a single batch.
type Ledger struct {
	lock sync.Mutex
	db   database.Database
}

func New(db database.Database) *Ledger {
	return &Ledger{db: db}
}

func balanceKey(asset ids.ID, account ids.ShortID) []byte {
	key := append(append([]byte{}, balancePrefix...), asset[:]...)
	return append(key, account[:]...)
}

func supplyKey(asset ids.ID) []byte {
	return append(append([]byte{}, supplyPrefix...), asset[:]...)
}

func (l *Ledger) get(key []byte) (uint64, error) {
	b, err := l.db.Get(key)
	if errors.Is(err, database.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if len(b) != 8 {
		return 0, errCorruptAmount
	}
	return binary.BigEndian.Uint64(b), nil
}

func put(batch database.Batch, key []byte, amount uint64) error {
	return batch.Put(key, binary.BigEndian.AppendUint64(nil, amount))
}

func (l *Ledger) BalanceOf(ctx context.Context, asset ids.ID, account ids.ShortID) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.get(balanceKey(asset, account))
}

// Supply returns the total issued amount of asset.
func (l *Ledger) Supply(ctx context.Context, asset ids.ID) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.get(supplyKey(asset))
}

func (l *Ledger) Transfer(ctx context.Context, asset ids.ID, from, to ids.ShortID, amount uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if amount == 0 || from == to {
		return nil
	}
	l.lock.Lock()
	defer l.lock.Unlock()

	fromKey, toKey := balanceKey(asset, from), balanceKey(asset, to)
	fromBalance, err := l.get(fromKey)
	if err != nil {
		return err
	}
	if fromBalance < amount {
		return fmt.Errorf("%w: %s holds %d, transfer of %d", vault.ErrInsufficientFunds, from, fromBalance, amount)
	}
	toBalance, err := l.get(toKey)
	if err != nil {
		return err
	}
	if toBalance > ^uint64(0)-amount {
		return fmt.Errorf("%w: balance of %s", vault.ErrMathOverflow, to)
	}

	batch := l.db.NewBatch()
	if err := put(batch, fromKey, fromBalance-amount); err != nil {
		return err
	}
	if err := put(batch, toKey, toBalance+amount); err != nil {
		return err
	}
	return batch.Write()
}

// Mint issues amount of asset to account.
func (l *Ledger) Mint(ctx context.Context, asset ids.ID, to ids.ShortID, amount uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.adjust(asset, to, amount, true)
}

// Burn destroys amount of asset held by account.
func (l *Ledger) Burn(ctx context.Context, asset ids.ID, from ids.ShortID, amount uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.adjust(asset, from, amount, false)
}

// Fund mints deposit-asset units to an account; the development faucet.
func (l *Ledger) Fund(ctx context.Context, asset ids.ID, to ids.ShortID, amount uint64) error {
	if amount == 0 {
		return fmt.Errorf("%w: fund amount must be positive", vault.ErrInvalidAmount)
	}
	return l.Mint(ctx, asset, to, amount)
}

func (l *Ledger) adjust(asset ids.ID, account ids.ShortID, amount uint64, credit bool) error {
	if amount == 0 {
		return nil
	}
	bKey, sKey := balanceKey(asset, account), supplyKey(asset)
	balance, err := l.get(bKey)
	if err != nil {
		return err
	}
	supply, err := l.get(sKey)
	if err != nil {
		return err
	}

	if credit {
		if supply > ^uint64(0)-amount {
			return fmt.Errorf("%w: supply of %s", vault.ErrMathOverflow, asset)
		}
		balance += amount
		supply += amount
	} else {
		if balance < amount {
			return fmt.Errorf("%w: %s holds %d, burn of %d", vault.ErrInsufficientFunds, account, balance, amount)
		}
		balance -= amount
		supply -= amount
	}

	batch := l.db.NewBatch()
	if err := put(batch, bKey, balance); err != nil {
		return err
	}
	if err := put(batch, sKey, supply); err != nil {
		return err
	}
	return batch.Write()
}

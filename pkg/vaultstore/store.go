// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vaultstore persists vault records and withdrawal slots in a
// key-value database.
package vaultstore

import (
	"errors"
	"fmt"

	"github.com/luxfi/database"
	"github.com/luxfi/ids"
	"github.com/luxfi/vault/pkg/codec"
	"github.com/luxfi/vault/pkg/vault"
)

var (
	vaultPrefix   = []byte("vault/")
	requestPrefix = []byte("request/")
)

var _ vault.Store = (*Store)(nil)

// Store keeps one CBOR record per vault under vault/<id> and one per slot
// under request/<vault id><user>.
type Store struct {
	db database.Database
}

func New(db database.Database) *Store {
	return &Store{db: db}
}

func vaultKey(id ids.ID) []byte {
	return append(append([]byte{}, vaultPrefix...), id[:]...)
}

func requestKey(vaultID ids.ID, user ids.ShortID) []byte {
	key := append(append([]byte{}, requestPrefix...), vaultID[:]...)
	return append(key, user[:]...)
}

func (s *Store) GetVault(id ids.ID) (vault.Vault, error) {
	b, err := s.db.Get(vaultKey(id))
	if errors.Is(err, database.ErrNotFound) {
		return vault.Vault{}, fmt.Errorf("%w: %s", vault.ErrVaultNotFound, id)
	}
	if err != nil {
		return vault.Vault{}, err
	}
	var v vault.Vault
	if err := codec.Unmarshal(b, &v); err != nil {
		return vault.Vault{}, err
	}
	return v, nil
}

func (s *Store) GetRequest(vaultID ids.ID, user ids.ShortID) (*vault.WithdrawalRequest, error) {
	b, err := s.db.Get(requestKey(vaultID, user))
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	request := &vault.WithdrawalRequest{}
	if err := codec.Unmarshal(b, request); err != nil {
		return nil, err
	}
	return request, nil
}

// Commit writes v and request in a single batch.
func (s *Store) Commit(v vault.Vault, request *vault.WithdrawalRequest) error {
	batch := s.db.NewBatch()
	b, err := codec.Marshal(v)
	if err != nil {
		return err
	}
	if err := batch.Put(vaultKey(v.ID), b); err != nil {
		return err
	}
	if request != nil {
		b, err := codec.Marshal(request)
		if err != nil {
			return err
		}
		if err := batch.Put(requestKey(request.Vault, request.User), b); err != nil {
			return err
		}
	}
	return batch.Write()
}

// ListVaults returns every vault ordered by id.
func (s *Store) ListVaults() ([]vault.Vault, error) {
	it := s.db.NewIteratorWithPrefix(vaultPrefix)
	defer it.Release()

	var vaults []vault.Vault
	for it.Next() {
		var v vault.Vault
		if err := codec.Unmarshal(it.Value(), &v); err != nil {
			return nil, err
		}
		vaults = append(vaults, v)
	}
	return vaults, it.Error()
}

// ListRequests returns every withdrawal slot of a vault ordered by user.
func (s *Store) ListRequests(vaultID ids.ID) ([]vault.WithdrawalRequest, error) {
	prefix := append(append([]byte{}, requestPrefix...), vaultID[:]...)
	it := s.db.NewIteratorWithPrefix(prefix)
	defer it.Release()

	var requests []vault.WithdrawalRequest
	for it.Next() {
		var r vault.WithdrawalRequest
		if err := codec.Unmarshal(it.Value(), &r); err != nil {
			return nil, err
		}
		requests = append(requests, r)
	}
	return requests, it.Error()
}

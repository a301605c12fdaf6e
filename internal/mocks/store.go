// Code generated manually for testing. DO NOT EDIT.

package mocks

import (
	"github.com/luxfi/ids"
	"github.com/luxfi/vault/pkg/vault"
	"github.com/stretchr/testify/mock"
)

// Store is a mock implementation of vault.Store
type Store struct {
	mock.Mock
}

func (m *Store) GetVault(id ids.ID) (vault.Vault, error) {
	args := m.Called(id)
	return args.Get(0).(vault.Vault), args.Error(1)
}

func (m *Store) GetRequest(vaultID ids.ID, user ids.ShortID) (*vault.WithdrawalRequest, error) {
	args := m.Called(vaultID, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vault.WithdrawalRequest), args.Error(1)
}

func (m *Store) Commit(v vault.Vault, request *vault.WithdrawalRequest) error {
	args := m.Called(v, request)
	return args.Error(0)
}

func (m *Store) ListVaults() ([]vault.Vault, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]vault.Vault), args.Error(1)
}

// Code generated manually for testing. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/mock"
)

// ShareToken is a mock implementation of vault.ShareToken
type ShareToken struct {
	mock.Mock
}

func (m *ShareToken) Mint(ctx context.Context, asset ids.ID, to ids.ShortID, amount uint64) error {
	args := m.Called(ctx, asset, to, amount)
	return args.Error(0)
}

func (m *ShareToken) Burn(ctx context.Context, asset ids.ID, from ids.ShortID, amount uint64) error {
	args := m.Called(ctx, asset, from, amount)
	return args.Error(0)
}

func (m *ShareToken) BalanceOf(ctx context.Context, asset ids.ID, account ids.ShortID) (uint64, error) {
	args := m.Called(ctx, asset, account)
	return args.Get(0).(uint64), args.Error(1)
}

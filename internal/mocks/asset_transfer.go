// Code generated manually for testing. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/mock"
)

// AssetTransfer is a mock implementation of vault.AssetTransfer
type AssetTransfer struct {
	mock.Mock
}

func (m *AssetTransfer) Transfer(ctx context.Context, asset ids.ID, from, to ids.ShortID, amount uint64) error {
	args := m.Called(ctx, asset, from, to, amount)
	return args.Error(0)
}

func (m *AssetTransfer) BalanceOf(ctx context.Context, asset ids.ID, account ids.ShortID) (uint64, error) {
	args := m.Called(ctx, asset, account)
	return args.Get(0).(uint64), args.Error(1)
}

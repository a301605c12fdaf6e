// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledgercmd

import (
	"github.com/luxfi/vault/cmd/flags"
	"github.com/luxfi/vault/pkg/ux"
	"github.com/spf13/cobra"
)

var (
	balanceAccount flags.AccountFlags
	balanceAsset   string
)

func newBalanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Print the balance of an account and the asset's supply",
		Args:  cobra.NoArgs,
		RunE:  runBalance,
	}
	flags.AddAccountFlags(cmd, &balanceAccount)
	flags.AddAssetFlag(cmd, &balanceAsset)
	return cmd
}

func runBalance(cmd *cobra.Command, _ []string) error {
	account, err := balanceAccount.Resolve(app)
	if err != nil {
		return err
	}
	asset, err := flags.ParseID("asset", balanceAsset)
	if err != nil {
		return err
	}
	ledger, err := app.Ledger()
	if err != nil {
		return err
	}
	balance, err := ledger.BalanceOf(cmd.Context(), asset, account)
	if err != nil {
		return err
	}
	supply, err := ledger.Supply(cmd.Context(), asset)
	if err != nil {
		return err
	}
	return ux.Logger.PrintKeyValueTable([][2]string{
		{"Account", account.String()},
		{"Asset", asset.String()},
		{"Balance", ux.ConvertToStringWithThousandSeparator(balance)},
		{"Supply", ux.ConvertToStringWithThousandSeparator(supply)},
	})
}

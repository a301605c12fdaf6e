// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledgercmd

import (
	"github.com/luxfi/vault/cmd/flags"
	"github.com/luxfi/vault/pkg/ux"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	fundAccount flags.AccountFlags
	fundAsset   string
	fundAmount  uint64
)

func newFundCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fund",
		Short: "Credit an account with asset units",
		Long: `Credit an account in the local asset ledger.

Examples:
  vault ledger fund --key alice --asset <asset-id> --amount 1000000000
  vault ledger fund --account L-vault1... --asset <asset-id> --amount 5`,
		Args: cobra.NoArgs,
		RunE: runFund,
	}
	flags.AddAccountFlags(cmd, &fundAccount)
	flags.AddAssetFlag(cmd, &fundAsset)
	flags.AddAmountFlag(cmd, &fundAmount, "asset units to credit")
	return cmd
}

func runFund(cmd *cobra.Command, _ []string) error {
	account, err := fundAccount.Resolve(app)
	if err != nil {
		return err
	}
	asset, err := flags.ParseID("asset", fundAsset)
	if err != nil {
		return err
	}
	ledger, err := app.Ledger()
	if err != nil {
		return err
	}
	if err := ledger.Fund(cmd.Context(), asset, account, fundAmount); err != nil {
		return err
	}
	app.Log.Info("funded account",
		zap.Stringer("asset", asset),
		zap.Stringer("account", account),
		zap.Uint64("amount", fundAmount),
	)
	ux.Logger.GreenCheckmarkToUser("Funded %s with %s units of %s",
		account, ux.ConvertToStringWithThousandSeparator(fundAmount), asset)
	return nil
}

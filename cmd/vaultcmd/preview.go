// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vaultcmd

import (
	"fmt"

	"github.com/luxfi/vault/cmd/flags"
	"github.com/luxfi/vault/pkg/ux"
	"github.com/spf13/cobra"
)

var (
	previewAmount uint64
	previewShares uint64
)

// vault preview
func newPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Price deposits and withdrawals at the current rate",
		Run: func(cmd *cobra.Command, args []string) {
			err := cmd.Help()
			if err != nil {
				fmt.Println(err)
			}
		},
	}

	depositCmd := &cobra.Command{
		Use:   "deposit <vault-id>",
		Short: "Shares a deposit would mint now",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vaultID, err := vaultIDArg(args)
			if err != nil {
				return err
			}
			manager, err := app.Manager()
			if err != nil {
				return err
			}
			shares, err := manager.PreviewDeposit(cmd.Context(), vaultID, previewAmount)
			if err != nil {
				return err
			}
			ux.Logger.PrintToUser("%s units mint %s shares",
				ux.ConvertToStringWithThousandSeparator(previewAmount), ux.ConvertToStringWithThousandSeparator(shares))
			return nil
		},
	}
	flags.AddAmountFlag(depositCmd, &previewAmount, "asset units to deposit")

	redeemCmd := &cobra.Command{
		Use:   "redeem <vault-id>",
		Short: "Asset units a withdrawal request would lock now",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vaultID, err := vaultIDArg(args)
			if err != nil {
				return err
			}
			manager, err := app.Manager()
			if err != nil {
				return err
			}
			tokens, err := manager.PreviewRedeem(cmd.Context(), vaultID, previewShares)
			if err != nil {
				return err
			}
			ux.Logger.PrintToUser("%s shares redeem for %s units",
				ux.ConvertToStringWithThousandSeparator(previewShares), ux.ConvertToStringWithThousandSeparator(tokens))
			return nil
		},
	}
	redeemCmd.Flags().Uint64Var(&previewShares, "shares", 0, "shares to redeem")
	_ = redeemCmd.MarkFlagRequired("shares")

	cmd.AddCommand(depositCmd, redeemCmd)
	return cmd
}

// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vaultcmd

import (
	"github.com/luxfi/vault/cmd/flags"
	"github.com/luxfi/vault/pkg/ux"
	"github.com/luxfi/vault/pkg/vault"
	"github.com/spf13/cobra"
)

var (
	rateKey    string
	rateAmount uint64
)

// vault increase-rate
func newIncreaseRateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "increase-rate <vault-id>",
		Short: "Add yield to a vault, raising the value of every share",
		Long: `Transfer yield from the vault authority into custody. No shares are minted, so
the exchange rate rises for every holder. Only the vault authority may sign.`,
		Args: cobra.ExactArgs(1),
		RunE: runIncreaseRate,
	}
	flags.AddSignerFlag(cmd, &rateKey)
	flags.AddAmountFlag(cmd, &rateAmount, "asset units of yield to add")
	return cmd
}

func runIncreaseRate(cmd *cobra.Command, args []string) error {
	vaultID, err := vaultIDArg(args)
	if err != nil {
		return err
	}
	s, err := sign(cmd.Context(), rateKey, vault.OpIncreaseRate, vaultID, rateAmount)
	if err != nil {
		return err
	}
	manager, err := app.Manager()
	if err != nil {
		return err
	}
	rate, err := manager.IncreaseRate(s.ctx, vaultID, s.caller, rateAmount)
	if err != nil {
		return err
	}
	ux.Logger.GreenCheckmarkToUser("Rate is now %s", vault.FormatRate(rate))
	return nil
}

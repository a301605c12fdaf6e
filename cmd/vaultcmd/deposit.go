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
	depositKey    string
	depositAmount uint64
)

// vault deposit
func newDepositCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deposit <vault-id>",
		Short: "Deposit assets into a vault and receive shares",
		Args:  cobra.ExactArgs(1),
		RunE:  runDeposit,
	}
	flags.AddSignerFlag(cmd, &depositKey)
	flags.AddAmountFlag(cmd, &depositAmount, "asset units to deposit")
	return cmd
}

func runDeposit(cmd *cobra.Command, args []string) error {
	vaultID, err := vaultIDArg(args)
	if err != nil {
		return err
	}
	s, err := sign(cmd.Context(), depositKey, vault.OpDeposit, vaultID, depositAmount)
	if err != nil {
		return err
	}
	manager, err := app.Manager()
	if err != nil {
		return err
	}
	shares, err := manager.Deposit(s.ctx, vaultID, s.caller, depositAmount)
	if err != nil {
		return err
	}
	ux.Logger.GreenCheckmarkToUser("Deposited %s units, minted %s shares",
		ux.ConvertToStringWithThousandSeparator(depositAmount), ux.ConvertToStringWithThousandSeparator(shares))
	return nil
}

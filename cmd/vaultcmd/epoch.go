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
	advanceKey string
	forceKey   string
)

// vault advance-epoch
func newAdvanceEpochCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advance-epoch <vault-id>",
		Short: "Move a vault to its next epoch once the epoch duration has elapsed",
		Long:  `Any key may advance the epoch once the epoch duration has elapsed.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdvance(cmd, args, advanceKey, vault.OpAdvanceEpoch)
		},
	}
	flags.AddSignerFlag(cmd, &advanceKey)
	return cmd
}

// vault force-advance-epoch
func newForceAdvanceEpochCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "force-advance-epoch <vault-id>",
		Short: "Move a vault to its next epoch immediately",
		Long:  `Only the vault authority may force an epoch.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdvance(cmd, args, forceKey, vault.OpForceAdvanceEpoch)
		},
	}
	flags.AddSignerFlag(cmd, &forceKey)
	return cmd
}

func runAdvance(cmd *cobra.Command, args []string, keyName string, kind vault.OpKind) error {
	vaultID, err := vaultIDArg(args)
	if err != nil {
		return err
	}
	s, err := sign(cmd.Context(), keyName, kind, vaultID, 0)
	if err != nil {
		return err
	}
	manager, err := app.Manager()
	if err != nil {
		return err
	}
	var epoch uint64
	if kind == vault.OpForceAdvanceEpoch {
		epoch, err = manager.ForceAdvanceEpoch(s.ctx, vaultID, s.caller)
	} else {
		epoch, err = manager.AdvanceEpoch(s.ctx, vaultID, s.caller)
	}
	if err != nil {
		return err
	}
	ux.Logger.GreenCheckmarkToUser("Vault is now in epoch %d", epoch)
	return nil
}

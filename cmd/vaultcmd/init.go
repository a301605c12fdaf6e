// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vaultcmd

import (
	"fmt"
	"math"

	"github.com/luxfi/vault/cmd/flags"
	"github.com/luxfi/vault/pkg/constants"
	"github.com/luxfi/vault/pkg/ux"
	"github.com/luxfi/vault/pkg/vault"
	"github.com/spf13/cobra"
)

var (
	initKey           string
	initAsset         string
	initDecimals      uint
	initEpochDuration uint64
)

// vault init
func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a vault owned by the signing key",
		Long: `Create a vault for an asset. The signing key becomes the vault authority, the
only account allowed to add yield and force epochs. The vault id is derived
from the authority and the asset, so each pair has exactly one vault.

Example:
  vault init --key operator --asset <asset-id> --epoch-duration 86400`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}
	flags.AddSignerFlag(cmd, &initKey)
	flags.AddAssetFlag(cmd, &initAsset)
	cmd.Flags().UintVar(&initDecimals, "decimals", constants.DefaultDecimals, "decimals of the deposit asset, for display")
	cmd.Flags().Uint64Var(&initEpochDuration, "epoch-duration", 0,
		"epoch length in seconds (default from the epoch-duration setting)")
	return cmd
}

func runInit(cmd *cobra.Command, _ []string) error {
	asset, err := flags.ParseID("asset", initAsset)
	if err != nil {
		return err
	}
	if initDecimals > math.MaxUint8 {
		return fmt.Errorf("%w: decimals must be at most %d", vault.ErrInvalidAmount, math.MaxUint8)
	}
	epochDuration := initEpochDuration
	if !cmd.Flags().Changed("epoch-duration") {
		epochDuration = app.Conf.EpochDuration()
	}

	k, err := app.LoadKey(initKey)
	if err != nil {
		return err
	}
	vaultID := vault.VaultID(k.Address(), asset)
	s, err := sign(cmd.Context(), initKey, vault.OpInitialize, vaultID, epochDuration)
	if err != nil {
		return err
	}
	manager, err := app.Manager()
	if err != nil {
		return err
	}
	if _, err := manager.Initialize(s.ctx, s.caller, asset, uint8(initDecimals), epochDuration); err != nil {
		return err
	}

	ux.Logger.GreenCheckmarkToUser("Vault created")
	ux.Logger.PrintToUser("Vault ID: %s", vaultID)
	return nil
}

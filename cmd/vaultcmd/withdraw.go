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
	withdrawKey    string
	withdrawShares uint64
	claimKey       string
)

// vault request-withdrawal
func newRequestWithdrawalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "request-withdrawal <vault-id>",
		Short: "Burn shares and lock their value for a later claim",
		Long: `Burn shares at the current rate and lock the resulting asset amount. The amount
can be claimed once the vault reaches the next epoch. Each account has a single
withdrawal slot per vault, so a pending request must be claimed before a new
one is made.`,
		Args: cobra.ExactArgs(1),
		RunE: runRequestWithdrawal,
	}
	flags.AddSignerFlag(cmd, &withdrawKey)
	cmd.Flags().Uint64Var(&withdrawShares, "shares", 0, "shares to redeem")
	_ = cmd.MarkFlagRequired("shares")
	return cmd
}

func runRequestWithdrawal(cmd *cobra.Command, args []string) error {
	vaultID, err := vaultIDArg(args)
	if err != nil {
		return err
	}
	s, err := sign(cmd.Context(), withdrawKey, vault.OpRequestWithdrawal, vaultID, withdrawShares)
	if err != nil {
		return err
	}
	manager, err := app.Manager()
	if err != nil {
		return err
	}
	tokens, err := manager.RequestWithdrawal(s.ctx, vaultID, s.caller, withdrawShares)
	if err != nil {
		return err
	}
	request, err := manager.WithdrawalRequest(cmd.Context(), vaultID, s.caller)
	if err != nil {
		return err
	}
	ux.Logger.GreenCheckmarkToUser("Burned %s shares, locked %s units",
		ux.ConvertToStringWithThousandSeparator(withdrawShares), ux.ConvertToStringWithThousandSeparator(tokens))
	ux.Logger.PrintToUser("Claimable from epoch %d", request.ClaimableEpoch)
	return nil
}

// vault claim
func newClaimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claim <vault-id>",
		Short: "Claim a matured withdrawal",
		Args:  cobra.ExactArgs(1),
		RunE:  runClaim,
	}
	flags.AddSignerFlag(cmd, &claimKey)
	return cmd
}

func runClaim(cmd *cobra.Command, args []string) error {
	vaultID, err := vaultIDArg(args)
	if err != nil {
		return err
	}
	s, err := sign(cmd.Context(), claimKey, vault.OpClaimWithdrawal, vaultID, 0)
	if err != nil {
		return err
	}
	manager, err := app.Manager()
	if err != nil {
		return err
	}
	paid, err := manager.ClaimWithdrawal(s.ctx, vaultID, s.caller)
	if err != nil {
		return err
	}
	ux.Logger.GreenCheckmarkToUser("Claimed %s units", ux.ConvertToStringWithThousandSeparator(paid))
	return nil
}

// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vaultcmd

import (
	"fmt"
	"time"

	"github.com/luxfi/vault/cmd/flags"
	"github.com/luxfi/vault/pkg/status"
	"github.com/luxfi/vault/pkg/ux"
	"github.com/luxfi/vault/pkg/vault"
	"github.com/spf13/cobra"
)

var (
	showOutput     string
	positionOutput string
	positionOf     flags.AccountFlags
	listOutput     string
)

// Details is the output of vault show.
type Details struct {
	Vault           vault.Vault       `json:"vault" yaml:"vault"`
	Rate            string            `json:"rateDisplay" yaml:"rateDisplay"`
	RequiredReserve uint64            `json:"requiredReserve" yaml:"requiredReserve"`
	CustodyBalance  uint64            `json:"custodyBalance" yaml:"custodyBalance"`
	Epoch           vault.EpochStatus `json:"epoch" yaml:"epoch"`
}

// vault show
func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <vault-id>",
		Short: "Show the state of a vault",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
	flags.AddOutputFlag(cmd, &showOutput)
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	vaultID, err := vaultIDArg(args)
	if err != nil {
		return err
	}
	manager, err := app.Manager()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	v, err := manager.Vault(ctx, vaultID)
	if err != nil {
		return err
	}
	reserve, err := v.RequiredReserve()
	if err != nil {
		return err
	}
	custody, err := manager.CustodyBalance(ctx, v)
	if err != nil {
		return err
	}
	epoch, err := manager.EpochStatus(ctx, vaultID)
	if err != nil {
		return err
	}
	details := Details{
		Vault:           v,
		Rate:            vault.FormatRate(v.Rate),
		RequiredReserve: reserve,
		CustodyBalance:  custody,
		Epoch:           epoch,
	}

	return write(showOutput, details, func() error {
		return ux.Logger.PrintKeyValueTable([][2]string{
			{"Vault ID", v.ID.String()},
			{"Authority", v.Authority.String()},
			{"Deposit Asset", v.DepositAsset.String()},
			{"Share Asset", v.ShareAsset.String()},
			{"Custody Account", v.CustodyAccount.String()},
			{"Rate", details.Rate},
			{"Total Deposits", ux.FormatAmount(v.TotalDeposits, v.Decimals)},
			{"Total Shares", ux.FormatAmount(v.TotalShares, v.Decimals)},
			{"Pending Withdrawals", ux.FormatAmount(v.PendingWithdrawals, v.Decimals)},
			{"Required Reserve", ux.FormatAmount(reserve, v.Decimals)},
			{"Custody Balance", ux.FormatAmount(custody, v.Decimals)},
			{"Current Epoch", fmt.Sprintf("%d", v.CurrentEpoch)},
			{"Epoch Duration", (time.Duration(v.EpochDuration) * time.Second).String()},
			{"Next Epoch At", time.Unix(int64(epoch.NextEpochAt), 0).UTC().Format(time.RFC3339)},
		})
	})
}

// vault position
func newPositionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "position <vault-id>",
		Short: "Show an account's shares and withdrawal slot in a vault",
		Args:  cobra.ExactArgs(1),
		RunE:  runPosition,
	}
	flags.AddAccountFlags(cmd, &positionOf)
	flags.AddOutputFlag(cmd, &positionOutput)
	return cmd
}

func runPosition(cmd *cobra.Command, args []string) error {
	vaultID, err := vaultIDArg(args)
	if err != nil {
		return err
	}
	user, err := positionOf.Resolve(app)
	if err != nil {
		return err
	}
	manager, err := app.Manager()
	if err != nil {
		return err
	}
	pos, err := manager.Position(cmd.Context(), vaultID, user)
	if err != nil {
		return err
	}

	return write(positionOutput, pos, func() error {
		rows := [][2]string{
			{"Account", pos.User.String()},
			{"Shares", ux.ConvertToStringWithThousandSeparator(pos.Shares)},
			{"Value", ux.ConvertToStringWithThousandSeparator(pos.Value)},
			{"Withdrawal Slot", pos.Slot.String()},
		}
		if r := pos.Request; r != nil {
			rows = append(rows,
				[2]string{"Locked Shares", ux.ConvertToStringWithThousandSeparator(r.SharesAmount)},
				[2]string{"Locked Amount", ux.ConvertToStringWithThousandSeparator(r.TokensToReceive)},
				[2]string{"Claimable Epoch", fmt.Sprintf("%d", r.ClaimableEpoch)},
			)
		}
		return ux.Logger.PrintKeyValueTable(rows)
	})
}

// vault list
func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all vaults",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
	flags.AddOutputFlag(cmd, &listOutput)
	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	manager, err := app.Manager()
	if err != nil {
		return err
	}
	vaults, err := manager.ListVaults(cmd.Context())
	if err != nil {
		return err
	}
	if len(vaults) == 0 && listOutput == status.OutputTable {
		ux.Logger.PrintToUser("No vaults found. Create one with 'vault init'.")
		return nil
	}

	return write(listOutput, vaults, func() error {
		table := ux.NewTable(ux.Logger.Writer(), "Vault ID", "Asset", "Rate", "Deposits", "Shares", "Pending", "Epoch")
		for _, v := range vaults {
			if err := table.Append([]string{
				v.ID.String(),
				v.DepositAsset.String(),
				vault.FormatRate(v.Rate),
				ux.FormatAmount(v.TotalDeposits, v.Decimals),
				ux.FormatAmount(v.TotalShares, v.Decimals),
				ux.FormatAmount(v.PendingWithdrawals, v.Decimals),
				fmt.Sprintf("%d", v.CurrentEpoch),
			}); err != nil {
				return err
			}
		}
		return table.Render()
	})
}

// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package flags

import (
	"fmt"

	"github.com/luxfi/ids"
	"github.com/luxfi/vault/pkg/application"
	"github.com/luxfi/vault/pkg/constants"
	"github.com/luxfi/vault/pkg/key"
	"github.com/luxfi/vault/pkg/status"
	"github.com/spf13/cobra"
)

const (
	KeyFlag     = "key"
	AccountFlag = "account"
	AssetFlag   = "asset"
	AmountFlag  = "amount"
	OutputFlag  = "output"
)

// AccountFlags selects an account either by stored key name or by address.
type AccountFlags struct {
	KeyName string
	Address string
}

func AddAccountFlags(cmd *cobra.Command, f *AccountFlags) {
	cmd.Flags().StringVarP(&f.KeyName, KeyFlag, "k", "", "name of a stored key")
	cmd.Flags().StringVar(&f.Address, AccountFlag, "", "account address (L-vault1... or short id)")
	cmd.MarkFlagsMutuallyExclusive(KeyFlag, AccountFlag)
}

// Resolve returns the selected account.
func (f *AccountFlags) Resolve(app *application.App) (ids.ShortID, error) {
	switch {
	case f.KeyName != "":
		k, err := app.LoadKey(f.KeyName)
		if err != nil {
			return ids.ShortEmpty, err
		}
		return k.Address(), nil
	case f.Address != "":
		addr, err := key.ParseAddress(f.Address)
		if err != nil {
			return ids.ShortEmpty, fmt.Errorf("invalid account %q: %w", f.Address, err)
		}
		return addr, nil
	default:
		return ids.ShortEmpty, constants.ErrMissingAccount
	}
}

// AddSignerFlag adds the required --key flag naming the signing key.
func AddSignerFlag(cmd *cobra.Command, keyName *string) {
	cmd.Flags().StringVarP(keyName, KeyFlag, "k", "", "name of the stored key that signs the operation")
	_ = cmd.MarkFlagRequired(KeyFlag)
}

func AddAssetFlag(cmd *cobra.Command, asset *string) {
	cmd.Flags().StringVar(asset, AssetFlag, "", "asset id")
	_ = cmd.MarkFlagRequired(AssetFlag)
}

func AddAmountFlag(cmd *cobra.Command, amount *uint64, usage string) {
	cmd.Flags().Uint64Var(amount, AmountFlag, 0, usage)
	_ = cmd.MarkFlagRequired(AmountFlag)
}

func AddOutputFlag(cmd *cobra.Command, output *string) {
	cmd.Flags().StringVarP(output, OutputFlag, "o", status.OutputTable, "output format (table, json or yaml)")
	cmd.PreRunE = chainPreRun(cmd.PreRunE, func(*cobra.Command, []string) error {
		return ValidateOutput(*output)
	})
}

func ValidateOutput(output string) error {
	switch output {
	case status.OutputTable, status.OutputJSON, status.OutputYAML:
		return nil
	default:
		return fmt.Errorf("%w: %q", constants.ErrInvalidOutput, output)
	}
}

// ParseID parses a CB58 vault or asset id named what.
func ParseID(what, s string) (ids.ID, error) {
	id, err := ids.FromString(s)
	if err != nil {
		return ids.Empty, fmt.Errorf("invalid %s id %q: %w", what, s, err)
	}
	return id, nil
}

func chainPreRun(existing, next func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if existing != nil {
			if err := existing(cmd, args); err != nil {
				return err
			}
		}
		return next(cmd, args)
	}
}

// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vaultcmd holds the vault operation and query commands.
package vaultcmd

import (
	"context"

	"github.com/luxfi/ids"
	"github.com/luxfi/vault/cmd/flags"
	"github.com/luxfi/vault/pkg/application"
	"github.com/luxfi/vault/pkg/status"
	"github.com/luxfi/vault/pkg/ux"
	"github.com/luxfi/vault/pkg/vault"
	"github.com/spf13/cobra"
)

var app *application.App

// NewCmds returns the top-level vault commands.
func NewCmds(injectedApp *application.App) []*cobra.Command {
	app = injectedApp

	return []*cobra.Command{
		newInitCmd(),
		newDepositCmd(),
		newIncreaseRateCmd(),
		newRequestWithdrawalCmd(),
		newClaimCmd(),
		newAdvanceEpochCmd(),
		newForceAdvanceEpochCmd(),
		newShowCmd(),
		newPositionCmd(),
		newListCmd(),
		newPreviewCmd(),
		newAuditCmd(),
	}
}

// signer is the caller of a mutating command.
type signer struct {
	ctx    context.Context
	caller ids.ShortID
}

// sign loads keyName and returns a context carrying its signature over the
// operation the manager will run for it.
func sign(ctx context.Context, keyName string, kind vault.OpKind, vaultID ids.ID, amount uint64) (signer, error) {
	k, err := app.LoadKey(keyName)
	if err != nil {
		return signer{}, err
	}
	op := vault.Operation{Kind: kind, Vault: vaultID, Caller: k.Address(), Amount: amount}
	signed, err := app.Signed(ctx, k, op)
	if err != nil {
		return signer{}, err
	}
	return signer{ctx: signed, caller: k.Address()}, nil
}

func vaultIDArg(args []string) (ids.ID, error) {
	return flags.ParseID("vault", args[0])
}

// write renders v as JSON or YAML, or calls table for table output.
func write(output string, v any, table func() error) error {
	f := status.NewFormatter(ux.Logger.Writer())
	switch output {
	case status.OutputJSON:
		return f.FormatJSON(v)
	case status.OutputYAML:
		return f.FormatYAML(v)
	default:
		return table()
	}
}

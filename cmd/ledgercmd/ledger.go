// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package ledgercmd

import (
	"fmt"

	"github.com/luxfi/vault/pkg/application"
	"github.com/spf13/cobra"
)

var app *application.App

func NewCmd(injectedApp *application.App) *cobra.Command {
	app = injectedApp

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Inspect and fund the local asset ledger",
		Long: `The ledger command suite works on the local asset ledger that backs vault
deposits and share tokens. Funding mints asset units out of thin air and is
intended for development and testing only.`,
		Run: func(cmd *cobra.Command, args []string) {
			err := cmd.Help()
			if err != nil {
				fmt.Println(err)
			}
		},
	}

	// vault ledger fund
	cmd.AddCommand(newFundCmd())

	// vault ledger balance
	cmd.AddCommand(newBalanceCmd())

	return cmd
}

// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package keycmd

import (
	"fmt"

	"github.com/luxfi/vault/pkg/application"
	"github.com/spf13/cobra"
)

var app *application.App

func NewCmd(injectedApp *application.App) *cobra.Command {
	app = injectedApp

	cmd := &cobra.Command{
		Use:   "key",
		Short: "Create and manage vault signing keys",
		Long: `The key command suite creates and lists the secp256k1 keys that sign vault
operations. Keys are stored unencrypted under the vault base directory and are
meant for operators and local development.

To get started, use the key create command.`,
		Run: func(cmd *cobra.Command, args []string) {
			err := cmd.Help()
			if err != nil {
				fmt.Println(err)
			}
		},
	}

	// vault key create
	cmd.AddCommand(newCreateCmd())

	// vault key list
	cmd.AddCommand(newListCmd())

	// vault key address
	cmd.AddCommand(newAddressCmd())

	return cmd
}

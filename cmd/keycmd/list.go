// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package keycmd

import (
	"github.com/luxfi/vault/pkg/ux"
	"github.com/spf13/cobra"
)

// vault key list
func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored signing keys",
		Long:  `The key list command prints the name and address of every stored key.`,
		Args:  cobra.NoArgs,
		RunE:  listKeys,
	}
}

func listKeys(*cobra.Command, []string) error {
	names, err := app.ListKeys()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		ux.Logger.PrintToUser("No keys found. Create one with 'vault key create <name>'.")
		return nil
	}

	table := ux.NewTable(ux.Logger.Writer(), "Name", "Address", "Short ID")
	for _, name := range names {
		k, err := app.LoadKey(name)
		if err != nil {
			return err
		}
		addr, err := k.Bech32()
		if err != nil {
			return err
		}
		if err := table.Append([]string{name, addr, k.Address().String()}); err != nil {
			return err
		}
	}
	return table.Render()
}

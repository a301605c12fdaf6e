// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package keycmd

import (
	"github.com/luxfi/vault/pkg/ux"
	"github.com/spf13/cobra"
)

func newAddressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "address <name>",
		Short: "Print the address of a stored key",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			k, err := app.LoadKey(args[0])
			if err != nil {
				return err
			}
			addr, err := k.Bech32()
			if err != nil {
				return err
			}
			ux.Logger.PrintToUser("%s", addr)
			return nil
		},
	}
}

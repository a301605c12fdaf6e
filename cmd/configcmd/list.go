// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package configcmd

import (
	"github.com/luxfi/vault/pkg/config"
	"github.com/luxfi/vault/pkg/ux"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all settings and their effective values",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			rows := make([][2]string, 0, len(config.Keys))
			for _, key := range config.Keys {
				rows = append(rows, [2]string{key, app.Conf.GetConfigStringValue(key)})
			}
			return ux.Logger.PrintKeyValueTable(rows)
		},
	}
}

// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package configcmd

import (
	"fmt"

	"github.com/luxfi/vault/pkg/config"
	"github.com/luxfi/vault/pkg/ux"
	"github.com/spf13/cobra"
)

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Long: `Get the effective value of a setting after merging flags, VAULT_* environment
variables, the config file and defaults.

Examples:
  vault config get epoch-duration
  vault config get db-type`,
		Args: cobra.ExactArgs(1),
		RunE: runGet,
	}
}

func runGet(_ *cobra.Command, args []string) error {
	key := args[0]
	if !config.IsKnown(key) {
		return fmt.Errorf("unknown setting %q", key)
	}
	ux.Logger.PrintToUser("%s = %s", key, app.Conf.GetConfigStringValue(key))
	return nil
}

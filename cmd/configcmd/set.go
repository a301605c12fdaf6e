// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package configcmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/luxfi/vault/pkg/config"
	"github.com/luxfi/vault/pkg/constants"
	"github.com/luxfi/vault/pkg/ux"
	"github.com/spf13/cobra"
)

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Persist a setting in the config file.

Settings:
  db-type               badgerdb or memdb
  db-dir                database directory (default <base-dir>/db)
  epoch-duration        default epoch length in seconds for vault init
  reject-dust-deposits  reject deposits worth less than one share unit
  audit-concurrency     vaults audited in parallel
  metrics-file          Prometheus textfile written on exit

Examples:
  vault config set epoch-duration 3600
  vault config set reject-dust-deposits true`,
		Args: cobra.ExactArgs(2),
		RunE: runSet,
	}
}

func runSet(_ *cobra.Command, args []string) error {
	key, raw := args[0], args[1]
	if !config.IsKnown(key) {
		return fmt.Errorf("unknown setting %q", key)
	}
	value, err := parseValue(key, raw)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := app.Conf.SetConfigValue(key, value); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	ux.Logger.GreenCheckmarkToUser("%s set to %v", key, value)
	return nil
}

func parseValue(key, raw string) (interface{}, error) {
	switch key {
	case constants.ConfigDBType:
		if raw != constants.BadgerDB && raw != constants.MemDB {
			return nil, fmt.Errorf("%w: %s", constants.ErrUnsupportedDBType, raw)
		}
		return raw, nil
	case constants.ConfigEpochDuration:
		n, err := strconv.ParseUint(raw, 10, 64)
		if err == nil && n == 0 {
			err = errors.New("must be positive")
		}
		return n, err
	case constants.ConfigAuditConcurrency:
		n, err := strconv.Atoi(raw)
		if err == nil && n < 1 {
			err = errors.New("must be at least 1")
		}
		return n, err
	case constants.ConfigRejectDustDeposits:
		return strconv.ParseBool(raw)
	default:
		return raw, nil
	}
}

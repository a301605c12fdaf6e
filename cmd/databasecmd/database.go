// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package databasecmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/luxfi/vault/pkg/application"
	"github.com/luxfi/vault/pkg/constants"
	"github.com/luxfi/vault/pkg/ux"
	"github.com/spf13/cobra"
)

var app *application.App

// NewCmd returns the database command
func NewCmd(injectedApp *application.App) *cobra.Command {
	app = injectedApp

	cmd := &cobra.Command{
		Use:   "database",
		Short: "Inspect and maintain the vault database",
		Long: `The database command reports what the vault database holds and compacts it.
Records are grouped by key prefix: vault records, withdrawal slots, ledger
balances and asset supplies.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		Args: cobra.NoArgs,
	}

	// Add subcommands
	cmd.AddCommand(newStatsCmd())
	cmd.AddCommand(newCompactCmd())

	return cmd
}

// newStatsCmd creates the stats subcommand
func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show database statistics",
		Long:  "Count records and their sizes per key prefix",
		RunE: func(*cobra.Command, []string) error {
			return showDatabaseStats()
		},
		Args: cobra.NoArgs,
	}
}

// newCompactCmd creates the compact subcommand
func newCompactCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compact",
		Short: "Compact database to reclaim space",
		RunE: func(*cobra.Command, []string) error {
			return compactDatabase()
		},
		Args: cobra.NoArgs,
	}
}

type prefixStats struct {
	count      int64
	keyBytes   int64
	valueBytes int64
}

// showDatabaseStats displays database statistics
func showDatabaseStats() error {
	db, err := app.DB()
	if err != nil {
		return err
	}

	stats := map[string]*prefixStats{}
	iterator := db.NewIterator()
	defer iterator.Release()
	for iterator.Next() {
		key := iterator.Key()
		prefix := "(none)"
		if i := bytes.IndexByte(key, '/'); i > 0 {
			prefix = string(key[:i+1])
		}
		s, ok := stats[prefix]
		if !ok {
			s = &prefixStats{}
			stats[prefix] = s
		}
		s.count++
		s.keyBytes += int64(len(key))
		s.valueBytes += int64(len(iterator.Value()))
	}
	if err := iterator.Error(); err != nil {
		return fmt.Errorf("iterator error: %w", err)
	}

	prefixes := make([]string, 0, len(stats))
	for p := range stats {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)

	ux.Logger.PrintToUser("Type: %s", app.Conf.DBType())
	if app.Conf.DBType() == constants.BadgerDB {
		size, err := getDirSize(app.GetDBDir())
		if err != nil {
			return fmt.Errorf("failed to get size: %w", err)
		}
		ux.Logger.PrintToUser("Path: %s (%s)", app.GetDBDir(), formatBytes(size))
	}

	table := ux.NewTable(ux.Logger.Writer(), "Prefix", "Entries", "Key Bytes", "Value Bytes")
	for _, p := range prefixes {
		s := stats[p]
		if err := table.Append([]string{
			p,
			ux.ConvertToStringWithThousandSeparator(uint64(s.count)),
			formatBytes(s.keyBytes),
			formatBytes(s.valueBytes),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

// compactDatabase runs compaction on the database
func compactDatabase() error {
	db, err := app.DB()
	if err != nil {
		return err
	}
	ux.Logger.PrintToUser("Running compaction...")
	if err := db.Compact(nil, nil); err != nil {
		return fmt.Errorf("compaction failed: %w", err)
	}
	ux.Logger.GreenCheckmarkToUser("Compaction completed")
	return nil
}

// getDirSize calculates the total size of a directory
func getDirSize(path string) (int64, error) {
	var size int64
	err := filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	return size, err
}

// formatBytes formats bytes in human-readable format
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

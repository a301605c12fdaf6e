// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vaultcmd

import (
	"fmt"

	"github.com/luxfi/ids"
	"github.com/luxfi/vault/cmd/flags"
	"github.com/luxfi/vault/pkg/constants"
	"github.com/luxfi/vault/pkg/status"
	"github.com/luxfi/vault/pkg/ux"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var auditOutput string

// vault audit
func newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit [vault-id...]",
		Short: "Check vault balance sheets against the asset ledger",
		Long: `Audit every vault, or the given ones, in parallel. For each vault the custody
balance is compared with the reserve its shares and pending withdrawals
require, and the share supply with the vault's share count. Metrics for every
audited vault are written to the metrics textfile on exit.

The command fails when any vault is insolvent or inconsistent.`,
		RunE: runAudit,
	}
	flags.AddOutputFlag(cmd, &auditOutput)
	cmd.Flags().String(constants.ConfigMetricsFile, "", "Prometheus textfile to write metrics to")
	_ = viper.BindPFlag(constants.ConfigMetricsFile, cmd.Flags().Lookup(constants.ConfigMetricsFile))
	return cmd
}

func runAudit(cmd *cobra.Command, args []string) error {
	vaultIDs := make([]ids.ID, 0, len(args))
	for _, arg := range args {
		id, err := flags.ParseID("vault", arg)
		if err != nil {
			return err
		}
		vaultIDs = append(vaultIDs, id)
	}

	manager, err := app.Manager()
	if err != nil {
		return err
	}
	ledger, err := app.Ledger()
	if err != nil {
		return err
	}
	metrics, err := app.Metrics()
	if err != nil {
		return err
	}

	svc := status.NewAuditService(manager, ledger, metrics, app.Conf.AuditConcurrency())
	result, err := svc.Audit(cmd.Context(), vaultIDs...)
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}
	app.Log.Info("audit complete",
		zap.Int("vaults", len(result.Vaults)),
		zap.Bool("healthy", result.Healthy()),
		zap.Int("durationMs", result.DurationMS),
	)

	if err := status.NewFormatter(ux.Logger.Writer()).FormatAudit(result, auditOutput); err != nil {
		return err
	}
	if !result.Healthy() {
		failed := 0
		for _, v := range result.Vaults {
			if !v.Solvent || len(v.Issues) > 0 {
				failed++
			}
		}
		ux.Logger.RedXToUser("%d of %d vaults failed the audit", failed, len(result.Vaults))
		return constants.ErrAuditFailed
	}
	return nil
}

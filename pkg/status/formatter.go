// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package status

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/luxfi/vault/pkg/constants"
	"github.com/luxfi/vault/pkg/ux"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by Format.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// Formatter writes audit results and other command output.
type Formatter struct {
	writer io.Writer
}

func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{writer: writer}
}

// FormatAudit writes result as a table, JSON or YAML.
func (f *Formatter) FormatAudit(result *AuditResult, output string) error {
	switch output {
	case OutputJSON:
		return f.FormatJSON(result)
	case OutputYAML:
		return f.FormatYAML(result)
	case OutputTable, "":
		return f.formatAuditTable(result)
	default:
		return fmt.Errorf("%w: %q", constants.ErrInvalidOutput, output)
	}
}

func (f *Formatter) formatAuditTable(result *AuditResult) error {
	table := ux.NewTable(f.writer, "Vault", "Rate", "Deposits", "Shares", "Pending", "Custody", "Reserve", "Solvent", "Issues")
	for _, v := range result.Vaults {
		solvent := "yes"
		if !v.Solvent {
			solvent = fmt.Sprintf("NO (short %d)", v.Shortfall)
		}
		issues := "-"
		if len(v.Issues) > 0 {
			issues = strings.Join(v.Issues, "; ")
		}
		if err := table.Append([]string{
			v.Vault,
			v.Rate,
			ux.ConvertToStringWithThousandSeparator(v.TotalDeposits),
			ux.ConvertToStringWithThousandSeparator(v.TotalShares),
			ux.ConvertToStringWithThousandSeparator(v.PendingWithdrawals),
			ux.ConvertToStringWithThousandSeparator(v.CustodyBalance),
			ux.ConvertToStringWithThousandSeparator(v.RequiredReserve),
			solvent,
			issues,
		}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(f.writer, "audited %d vaults in %dms\n", len(result.Vaults), result.DurationMS)
	return err
}

// FormatJSON writes v as indented JSON.
func (f *Formatter) FormatJSON(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// FormatYAML writes v as YAML.
func (f *Formatter) FormatYAML(v any) error {
	encoder := yaml.NewEncoder(f.writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}

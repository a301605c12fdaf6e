// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ux

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// NewTable creates a table writing to w with the given header row.
func NewTable(w io.Writer, headers ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	if len(headers) > 0 {
		anyHeaders := make([]any, len(headers))
		for i, h := range headers {
			anyHeaders[i] = h
		}
		table.Header(anyHeaders...)
	}
	return table
}

// PrintKeyValueTable renders rows of two cells under a Field/Value header.
func (ul *UserLog) PrintKeyValueTable(rows [][2]string) error {
	table := NewTable(ul.writer, "Field", "Value")
	for _, row := range rows {
		if err := table.Append([]string{row[0], row[1]}); err != nil {
			return err
		}
	}
	return table.Render()
}

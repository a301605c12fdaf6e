// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ux

import (
	"bytes"
	"testing"

	luxlog "github.com/luxfi/log"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount   uint64
		decimals uint8
		want     string
	}{
		{0, 0, "0"},
		{1_500_000, 0, "1_500_000"},
		{1_500_000, 6, "1.500000"},
		{1_234_567_890, 6, "1_234.567890"},
		{5, 9, "0.000000005"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, FormatAmount(tt.amount, tt.decimals))
	}
}

func TestUserLogOutput(t *testing.T) {
	require := require.New(t)

	var buf bytes.Buffer
	NewUserLog(luxlog.NewNoOpLogger(), &buf)
	Logger.PrintToUser("vault %s", "ready")
	Logger.GreenCheckmarkToUser("deposited %d", 10)
	require.NoError(Logger.PrintKeyValueTable([][2]string{{"Rate", "1.1000"}}))

	out := buf.String()
	require.Contains(out, "vault ready\n")
	require.Contains(out, "✓ deposited 10")
	require.Contains(out, "1.1000")
}

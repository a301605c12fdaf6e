// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package constants

import "errors"

var (
	ErrKeyNotFound       = errors.New("key not found, create it with 'vault key create'")
	ErrKeyExists         = errors.New("key already exists")
	ErrUnsupportedDBType = errors.New("unsupported database type")
	ErrInvalidOutput     = errors.New("output must be one of table, json or yaml")
	ErrMissingAccount    = errors.New("one of --key or --account is required")
	ErrAuditFailed       = errors.New("audit found unhealthy vaults")
)

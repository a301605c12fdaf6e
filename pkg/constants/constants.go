// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package constants

const (
	DefaultPerms755        = 0o755
	WriteReadReadPerms     = 0o644
	WriteReadUserOnlyPerms = 0o600

	BaseDirName = ".vault"
	LogDir      = "logs"
	KeyDir      = "keys"
	DBDir       = "db"
	MetricsDir  = "metrics"

	KeySuffix      = ".pk"
	MetricsFile    = "vault.prom"
	LoggerName     = "vault"
	EnvPrefix      = "VAULT"
	UXPackagePath  = "github.com/luxfi/vault/pkg/ux"
	ConfigFileType = "json"
	ConfigFileName = "config"

	MaxLogFileSize   = 4
	MaxNumOfLogFiles = 5
	RetainOldFiles   = 0 // retain all old log files

	// Config keys, also readable from VAULT_<KEY> with dashes as underscores.
	ConfigDBType             = "db-type"
	ConfigDBDir              = "db-dir"
	ConfigEpochDuration      = "epoch-duration"
	ConfigRejectDustDeposits = "reject-dust-deposits"
	ConfigAuditConcurrency   = "audit-concurrency"
	ConfigMetricsFile        = "metrics-file"

	BadgerDB = "badgerdb"
	MemDB    = "memdb"

	DefaultDBType           = BadgerDB
	DefaultEpochDuration    = 86_400
	DefaultAuditConcurrency = 4
	DefaultDecimals         = 9
)

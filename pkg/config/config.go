// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"os"
	"slices"
	"strings"

	"github.com/luxfi/vault/pkg/constants"
	"github.com/spf13/viper"
)

// Keys lists every setting the vault reads, in display order.
var Keys = []string{
	constants.ConfigDBType,
	constants.ConfigDBDir,
	constants.ConfigEpochDuration,
	constants.ConfigRejectDustDeposits,
	constants.ConfigAuditConcurrency,
	constants.ConfigMetricsFile,
}

// IsKnown reports whether key is one of Keys.
func IsKnown(key string) bool {
	return slices.Contains(Keys, key)
}

type Config struct {
	v *viper.Viper
}

// New wraps the process-wide viper instance.
func New() *Config {
	return FromViper(viper.GetViper())
}

// FromViper wraps v and installs the vault defaults on it.
func FromViper(v *viper.Viper) *Config {
	v.SetDefault(constants.ConfigDBType, constants.DefaultDBType)
	v.SetDefault(constants.ConfigEpochDuration, constants.DefaultEpochDuration)
	v.SetDefault(constants.ConfigRejectDustDeposits, false)
	v.SetDefault(constants.ConfigAuditConcurrency, constants.DefaultAuditConcurrency)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return &Config{v: v}
}

func (c *Config) GetConfigStringValue(key string) string {
	return c.v.GetString(key)
}

func (c *Config) GetConfigBoolValue(key string) bool {
	return c.v.GetBool(key)
}

func (c *Config) GetConfigUint64Value(key string) uint64 {
	return c.v.GetUint64(key)
}

func (c *Config) GetConfigIntValue(key string) int {
	return c.v.GetInt(key)
}

func (c *Config) ConfigValueIsSet(key string) bool {
	return c.v.IsSet(key)
}

func (c *Config) ConfigFileExists() bool {
	path := c.v.ConfigFileUsed()
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// SetConfigValue sets key and persists it to the config file, which is
// created if it does not exist yet.
func (c *Config) SetConfigValue(key string, value interface{}) error {
	c.v.Set(key, value)
	return c.v.WriteConfig()
}

// GetConfigPath returns the path to the configuration file
func (c *Config) GetConfigPath() string {
	return c.v.ConfigFileUsed()
}

func (c *Config) DBType() string {
	return c.GetConfigStringValue(constants.ConfigDBType)
}

func (c *Config) DBDir() string {
	return c.GetConfigStringValue(constants.ConfigDBDir)
}

func (c *Config) EpochDuration() uint64 {
	return c.GetConfigUint64Value(constants.ConfigEpochDuration)
}

func (c *Config) RejectDustDeposits() bool {
	return c.GetConfigBoolValue(constants.ConfigRejectDustDeposits)
}

func (c *Config) AuditConcurrency() int {
	if n := c.GetConfigIntValue(constants.ConfigAuditConcurrency); n > 0 {
		return n
	}
	return constants.DefaultAuditConcurrency
}

func (c *Config) MetricsFile() string {
	return c.GetConfigStringValue(constants.ConfigMetricsFile)
}

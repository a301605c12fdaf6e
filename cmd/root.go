// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/luxfi/filesystem/perms"
	luxlog "github.com/luxfi/log"
	"github.com/luxfi/log/level"
	"github.com/luxfi/vault/cmd/configcmd"
	"github.com/luxfi/vault/cmd/databasecmd"
	"github.com/luxfi/vault/cmd/keycmd"
	"github.com/luxfi/vault/cmd/ledgercmd"
	"github.com/luxfi/vault/cmd/vaultcmd"
	"github.com/luxfi/vault/internal/migrations"
	"github.com/luxfi/vault/pkg/application"
	"github.com/luxfi/vault/pkg/config"
	"github.com/luxfi/vault/pkg/constants"
	"github.com/luxfi/vault/pkg/ux"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	app        *application.App
	logFactory luxlog.Factory

	logLevel string
	Version  = "0.1.0"
	cfgFile  string
	baseDir  string
)

func NewRootCmd() *cobra.Command {
	app = application.New()

	// rootCmd represents the base command when called without any subcommands
	rootCmd := &cobra.Command{
		Use: "vault",
		Long: `vault - operator tool for share-based custodial vaults.

A vault holds deposits of one asset for one authority. Depositors receive
shares at the current exchange rate; the authority adds yield, which raises
the rate for every holder. Withdrawals burn shares into a locked amount that
can be claimed from the next epoch.

COMMAND OVERVIEW:

  key         Signing key management
  ledger      Local asset ledger (fund, balance)
  init        Create a vault
  deposit     Deposit assets for shares
  audit       Check every vault is solvent
  config      CLI configuration
  database    Database statistics and compaction

QUICK START:

  vault key create operator
  vault key create alice
  vault ledger fund --key alice --asset <asset-id> --amount 1000
  vault init --key operator --asset <asset-id>
  vault deposit <vault-id> --key alice --amount 1000
  vault show <vault-id>

For detailed command help, use: vault <command> --help`,
		PersistentPreRunE:  createApp,
		PersistentPostRunE: closeApp,
		Version:            Version,
		SilenceUsage:       true,
		SilenceErrors:      true,
	}

	// Disable printing the completion command
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	// accept --db_type as well as --db-type, matching the VAULT_DB_TYPE spelling
	rootCmd.SetGlobalNormalizationFunc(normalizeFlagName)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.vault/config.json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "ERROR", "log level for the application")
	rootCmd.PersistentFlags().Bool("verbose", false, "Show verbose output (info level logs)")
	rootCmd.PersistentFlags().Bool("debug", false, "Show debug output (debug level logs)")
	rootCmd.PersistentFlags().Bool("quiet", false, "Show only errors (quiet mode)")
	rootCmd.PersistentFlags().String(constants.ConfigDBType, "", "database backend (badgerdb or memdb)")
	_ = viper.BindPFlag(constants.ConfigDBType, rootCmd.PersistentFlags().Lookup(constants.ConfigDBType))
	rootCmd.PersistentFlags().StringVar(&baseDir, "base-dir", "", "base directory (default is $HOME/.vault)")
	_ = rootCmd.PersistentFlags().MarkHidden("base-dir")

	// add key management command
	rootCmd.AddCommand(keycmd.NewCmd(app))

	// add local ledger command
	rootCmd.AddCommand(ledgercmd.NewCmd(app))

	// add vault operations and queries
	rootCmd.AddCommand(vaultcmd.NewCmds(app)...)

	// add config command
	rootCmd.AddCommand(configcmd.NewCmd(app))

	// add database maintenance command
	rootCmd.AddCommand(databasecmd.NewCmd(app))

	return rootCmd
}

func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func createApp(cmd *cobra.Command, _ []string) error {
	dir, err := setupEnv()
	if err != nil {
		return err
	}
	log, err := setupLogging(dir, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	// Adjust log level based on flags BEFORE any logging happens
	if cmd.Flags().Changed("debug") {
		logFactory.SetLogLevel(constants.LoggerName, luxlog.Level(level.Debug))
		logFactory.SetDisplayLevel(constants.LoggerName, luxlog.Level(level.Debug))
	} else if cmd.Flags().Changed("verbose") {
		logFactory.SetLogLevel(constants.LoggerName, luxlog.Level(level.Info))
		logFactory.SetDisplayLevel(constants.LoggerName, luxlog.Level(level.Info))
	} else if cmd.Flags().Changed("quiet") {
		logFactory.SetLogLevel(constants.LoggerName, luxlog.Level(level.Error))
		logFactory.SetDisplayLevel(constants.LoggerName, luxlog.Level(level.Error))
	} else if logLevel != "" {
		level, err := luxlog.ToLevel(logLevel)
		if err == nil {
			logFactory.SetDisplayLevel(constants.LoggerName, level)
		}
	}

	initConfig(dir, log)
	app.Setup(dir, log, config.New())

	return migrations.RunMigrations(app)
}

func closeApp(*cobra.Command, []string) error {
	return app.Close()
}

func setupEnv() (string, error) {
	dir := baseDir
	if dir == "" {
		usr, err := user.Current()
		if err != nil {
			// no logger here yet
			fmt.Printf("unable to get system user %s\n", err)
			return "", err
		}
		dir = filepath.Join(usr.HomeDir, constants.BaseDirName)
	}

	// Create base dir if it doesn't exist
	if err := os.MkdirAll(dir, perms.ReadWriteExecute); err != nil {
		// no logger here yet
		fmt.Printf("failed creating the basedir %s: %s\n", dir, err)
		return "", err
	}

	// Create key dir if it doesn't exist
	keyDir := filepath.Join(dir, constants.KeyDir)
	if err := os.MkdirAll(keyDir, perms.ReadWriteExecute); err != nil {
		fmt.Printf("failed creating the key dir %s: %s\n", keyDir, err)
		return "", err
	}

	return dir, nil
}

func setupLogging(dir string, userOutput io.Writer) (luxlog.Logger, error) {
	config := luxlog.Config{}
	config.LogLevel = luxlog.Level(level.Info)

	// Set default display level to WARN (quiet by default)
	config.DisplayLevel, _ = luxlog.ToLevel("WARN")

	config.Directory = filepath.Join(dir, constants.LogDir)
	if err := os.MkdirAll(config.Directory, perms.ReadWriteExecute); err != nil {
		return nil, fmt.Errorf("failed creating log directory: %w", err)
	}

	// some logging config params
	config.LogFormat = luxlog.Colors
	config.MaxSize = constants.MaxLogFileSize
	config.MaxFiles = constants.MaxNumOfLogFiles
	config.MaxAge = constants.RetainOldFiles

	// Register ux package as internal so caller tracking shows actual source, not the wrapper
	luxlog.RegisterInternalPackages(constants.UXPackagePath)

	factory := luxlog.NewFactoryWithConfig(config)
	log, err := factory.Make(constants.LoggerName)
	if err != nil {
		factory.Close()
		return nil, fmt.Errorf("failed setting up logging, exiting: %w", err)
	}
	// Store factory globally so we can adjust levels later
	logFactory = factory
	// create the user facing logger as a global var
	ux.NewUserLog(log, userOutput)
	return log, nil
}

// initConfig points viper at the config file and reads it if present.
// Priority: flags > env vars > config file > defaults
func initConfig(dir string, log luxlog.Logger) {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigFile(filepath.Join(dir, constants.ConfigFileName+"."+constants.ConfigFileType))
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Debug("using config file", zap.String("config-file", viper.ConfigFileUsed()))
	}
	// No config file is normal - most users don't have one, so we silently continue
}

// Run executes the vault CLI with args, writing command output to out. The
// application is closed even when the command fails.
func Run(ctx context.Context, args []string, out io.Writer) error {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		// PersistentPostRunE does not run after a failed command
		err = errors.Join(err, app.Close())
	}
	return err
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := Run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "\nERROR: %s\n", err)
		os.Exit(1)
	}
}

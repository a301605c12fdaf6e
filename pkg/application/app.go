// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/luxfi/database"
	"github.com/luxfi/database/badgerdb"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/filesystem/perms"
	luxlog "github.com/luxfi/log"
	"github.com/luxfi/vault/pkg/assetledger"
	"github.com/luxfi/vault/pkg/config"
	"github.com/luxfi/vault/pkg/constants"
	"github.com/luxfi/vault/pkg/key"
	"github.com/luxfi/vault/pkg/monitoring"
	"github.com/luxfi/vault/pkg/vault"
	"github.com/luxfi/vault/pkg/vaultstore"
	"go.uber.org/zap"
)

type App struct {
	Log     luxlog.Logger
	baseDir string
	Conf    *config.Config

	db      database.Database
	ledger  *assetledger.Ledger
	store   *vaultstore.Store
	manager *vault.Manager
	metrics *monitoring.Metrics
}

func New() *App {
	return &App{}
}

func (app *App) Setup(baseDir string, log luxlog.Logger, conf *config.Config) {
	app.baseDir = baseDir
	app.Log = log
	app.Conf = conf
}

func (app *App) GetBaseDir() string {
	return app.baseDir
}

func (app *App) GetKeyDir() string {
	return filepath.Join(app.baseDir, constants.KeyDir)
}

func (app *App) GetKeyPath(keyName string) string {
	return filepath.Join(app.GetKeyDir(), keyName+constants.KeySuffix)
}

func (app *App) GetLogDir() string {
	return filepath.Join(app.baseDir, constants.LogDir)
}

// GetDBDir returns the configured database directory, or db/ under the
// base dir.
func (app *App) GetDBDir() string {
	if dir := app.Conf.DBDir(); dir != "" {
		return dir
	}
	return filepath.Join(app.baseDir, constants.DBDir)
}

// GetMetricsFile returns the configured metrics textfile, or
// metrics/vault.prom under the base dir.
func (app *App) GetMetricsFile() string {
	if f := app.Conf.MetricsFile(); f != "" {
		return f
	}
	return filepath.Join(app.baseDir, constants.MetricsDir, constants.MetricsFile)
}

func (app *App) KeyExists(keyName string) bool {
	_, err := os.Stat(app.GetKeyPath(keyName))
	return err == nil
}

func (app *App) LoadKey(keyName string) (*key.SoftKey, error) {
	if !app.KeyExists(keyName) {
		return nil, fmt.Errorf("%w: %s", constants.ErrKeyNotFound, keyName)
	}
	return key.LoadSoft(app.GetKeyPath(keyName))
}

func (app *App) SaveKey(keyName string, k *key.SoftKey) error {
	if app.KeyExists(keyName) {
		return fmt.Errorf("%w: %s", constants.ErrKeyExists, keyName)
	}
	if err := os.MkdirAll(app.GetKeyDir(), perms.ReadWriteExecute); err != nil {
		return err
	}
	return k.Save(app.GetKeyPath(keyName))
}

// ListKeys returns the names of stored keys, sorted.
func (app *App) ListKeys() ([]string, error) {
	entries, err := os.ReadDir(app.GetKeyDir())
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), constants.KeySuffix) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), constants.KeySuffix))
	}
	sort.Strings(names)
	return names, nil
}

func (app *App) openDB() (database.Database, error) {
	if app.db != nil {
		return app.db, nil
	}
	switch dbType := app.Conf.DBType(); dbType {
	case constants.MemDB:
		app.db = memdb.New()
	case constants.BadgerDB:
		dir := app.GetDBDir()
		if err := os.MkdirAll(dir, perms.ReadWriteExecute); err != nil {
			return nil, err
		}
		db, err := badgerdb.New(dir, nil, "", nil)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		app.db = db
	default:
		return nil, fmt.Errorf("%w: %s", constants.ErrUnsupportedDBType, dbType)
	}
	app.Log.Debug("opened vault database", zap.String("type", app.Conf.DBType()), zap.String("dir", app.GetDBDir()))
	return app.db, nil
}

// DB returns the vault database, opening it on first use.
func (app *App) DB() (database.Database, error) {
	return app.openDB()
}

// Ledger returns the local asset ledger, opening the database on first use.
func (app *App) Ledger() (*assetledger.Ledger, error) {
	if app.ledger == nil {
		db, err := app.openDB()
		if err != nil {
			return nil, err
		}
		app.ledger = assetledger.New(db)
	}
	return app.ledger, nil
}

func (app *App) Store() (*vaultstore.Store, error) {
	if app.store == nil {
		db, err := app.openDB()
		if err != nil {
			return nil, err
		}
		app.store = vaultstore.New(db)
	}
	return app.store, nil
}

func (app *App) Metrics() (*monitoring.Metrics, error) {
	if app.metrics == nil {
		m, err := monitoring.New()
		if err != nil {
			return nil, err
		}
		app.metrics = m
	}
	return app.metrics, nil
}

// Manager returns the vault manager wired to the local database. Every
// mutation must carry a signature from the caller's key.
func (app *App) Manager() (*vault.Manager, error) {
	if app.manager != nil {
		return app.manager, nil
	}
	ledger, err := app.Ledger()
	if err != nil {
		return nil, err
	}
	store, err := app.Store()
	if err != nil {
		return nil, err
	}
	metrics, err := app.Metrics()
	if err != nil {
		return nil, err
	}
	app.manager, err = vault.NewManager(vault.Config{
		Store:              store,
		Assets:             ledger,
		Shares:             ledger,
		Clock:              vault.SystemClock{},
		Authorizer:         key.SignatureAuthorizer{},
		Log:                app.Log,
		Metrics:            metrics,
		RejectDustDeposits: app.Conf.RejectDustDeposits(),
	})
	return app.manager, err
}

// Signed returns ctx carrying signer's signature over op.
func (*App) Signed(ctx context.Context, signer *key.SoftKey, op vault.Operation) (context.Context, error) {
	sig, err := signer.Sign(op)
	if err != nil {
		return nil, err
	}
	return vault.WithSignature(ctx, sig), nil
}

// Close flushes metrics and closes the database.
func (app *App) Close() error {
	var errs []error
	if app.metrics != nil {
		if err := app.metrics.WriteTextfile(app.GetMetricsFile()); err != nil {
			errs = append(errs, fmt.Errorf("writing metrics: %w", err))
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	app.db, app.ledger, app.store, app.manager, app.metrics = nil, nil, nil, nil, nil
	return errors.Join(errs...)
}

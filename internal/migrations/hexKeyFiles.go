// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package migrations

import (
	"bytes"
	"os"

	"github.com/luxfi/vault/pkg/application"
	"github.com/luxfi/vault/pkg/key"
	"go.uber.org/zap"
)

// migrateHexKeyFiles rewrites key files holding a raw hex private key in
// the PrivateKey- CB58 form written by key create.
func migrateHexKeyFiles(app *application.App, runner *migrationRunner) error {
	names, err := app.ListKeys()
	if err != nil {
		return err
	}
	for _, name := range names {
		path := app.GetKeyPath(name)
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if bytes.HasPrefix(bytes.TrimSpace(raw), []byte(key.EncodedPrefix)) {
			continue
		}
		k, err := key.LoadSoft(path)
		if err != nil {
			return err
		}
		runner.printMigrationMessage()
		if err := k.Save(path); err != nil {
			return err
		}
		app.Log.Info("re-encoded key file", zap.String("key", name))
	}
	return nil
}

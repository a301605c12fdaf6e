// Copyright (C) 2022, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package migrations

import (
	"github.com/luxfi/vault/pkg/application"
	"github.com/luxfi/vault/pkg/ux"
)

const (
	runMessage       = "The vault data directory needs to be updated. Running migrations..."
	endMessage       = "Migrations completed successfully."
	failedEndMessage = "Migrations failed, check the logs for details."
)

type migrationFunc func(*application.App, *migrationRunner) error

// migrationRunner applies migrations in index order. Migrations are
// idempotent and run on every invocation.
type migrationRunner struct {
	showMsg    bool
	running    bool
	migrations map[int]migrationFunc
}

// add new migrations with the next index
var migrations = map[int]migrationFunc{
	0: migrateHexKeyFiles,
}

// RunMigrations brings the base directory up to date.
func RunMigrations(app *application.App) error {
	runner := &migrationRunner{
		showMsg:    true,
		running:    false,
		migrations: migrations,
	}
	return runner.run(app)
}

func (m *migrationRunner) run(app *application.App) error {
	for i := 0; i < len(m.migrations); i++ {
		if err := m.migrations[i](app, m); err != nil {
			if m.running {
				ux.Logger.PrintToUser(failedEndMessage)
			}
			app.Log.Error("migration failed")
			return err
		}
	}
	if m.running {
		ux.Logger.PrintToUser(endMessage)
	}
	return nil
}

// printMigrationMessage is called by a migration that has work to do, so
// the run message is printed once and only when something changes.
func (m *migrationRunner) printMigrationMessage() {
	if m.showMsg {
		ux.Logger.PrintToUser(runMessage)
	}
	m.showMsg = false
	m.running = true
}

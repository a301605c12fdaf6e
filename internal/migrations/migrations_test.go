// Copyright (C) 2022, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package migrations

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	luxlog "github.com/luxfi/log"
	"github.com/luxfi/vault/pkg/application"
	"github.com/luxfi/vault/pkg/config"
	"github.com/luxfi/vault/pkg/constants"
	"github.com/luxfi/vault/pkg/key"
	"github.com/luxfi/vault/pkg/ux"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestRunMigrations(t *testing.T) {
	buffer := make([]byte, 0, 100)
	bufWriter := bytes.NewBuffer(buffer)
	ux.NewUserLog(luxlog.NewNoOpLogger(), bufWriter)
	require := require.New(t)
	testDir := t.TempDir()

	app := application.New()
	app.Setup(testDir, luxlog.NewNoOpLogger(), config.FromViper(viper.New()))

	type migTest struct {
		migs           map[int]migrationFunc
		name           string
		shouldErr      bool
		expectedOutput string
	}

	expectedIfRan := runMessage + "\n" + endMessage + "\n"
	expectedIfFailed := runMessage + "\n" + failedEndMessage + "\n"

	tests := []migTest{
		{
			name:           "no migrations",
			shouldErr:      false,
			migs:           map[int]migrationFunc{},
			expectedOutput: "",
		},
		{
			name:      "migration fail",
			shouldErr: true,
			migs: map[int]migrationFunc{
				0: func(app *application.App, r *migrationRunner) error {
					return errors.New("bogus fail")
				},
			},
			expectedOutput: "",
		},
		{
			name:      "1 mig, apply",
			shouldErr: false,
			migs: map[int]migrationFunc{
				0: func(app *application.App, r *migrationRunner) error {
					r.printMigrationMessage()
					return nil
				},
			},
			expectedOutput: expectedIfRan,
		},
		{
			name:      "2 mig, apply both",
			shouldErr: false,
			migs: map[int]migrationFunc{
				0: func(app *application.App, r *migrationRunner) error {
					r.printMigrationMessage()
					return nil
				},
				1: func(app *application.App, r *migrationRunner) error {
					r.printMigrationMessage()
					return nil
				},
			},
			expectedOutput: expectedIfRan,
		},
		{
			name:      "2 mig, apply 1",
			shouldErr: false,
			migs: map[int]migrationFunc{
				0: func(app *application.App, r *migrationRunner) error {
					return nil
				},
				1: func(app *application.App, r *migrationRunner) error {
					r.printMigrationMessage()
					return nil
				},
			},
			expectedOutput: expectedIfRan,
		},
		{
			name:      "2 mig, first one fails",
			shouldErr: true,
			migs: map[int]migrationFunc{
				0: func(app *application.App, r *migrationRunner) error {
					return errors.New("bogus fail")
				},
				1: func(app *application.App, r *migrationRunner) error {
					r.printMigrationMessage()
					return nil
				},
			},
			expectedOutput: "",
		},
		{
			name:      "2 mig, apply 1, second one fails",
			shouldErr: true,
			migs: map[int]migrationFunc{
				0: func(app *application.App, r *migrationRunner) error {
					r.printMigrationMessage()
					return nil
				},
				1: func(app *application.App, r *migrationRunner) error {
					return errors.New("bogus fail")
				},
			},
			expectedOutput: expectedIfFailed,
		},
	}

	for _, tt := range tests {
		// reset the buffer on each run to match expected output
		bufWriter.Reset()
		runner := &migrationRunner{
			showMsg:    true,
			running:    false,
			migrations: tt.migs,
		}
		err := runner.run(app)
		if tt.shouldErr {
			require.Error(err)
		} else {
			require.NoError(err)
		}
		require.Equal(tt.expectedOutput, bufWriter.String())
	}
}

func TestMigrateHexKeyFiles(t *testing.T) {
	require := require.New(t)
	var out bytes.Buffer
	ux.NewUserLog(luxlog.NewNoOpLogger(), &out)

	app := application.New()
	app.Setup(t.TempDir(), luxlog.NewNoOpLogger(), config.FromViper(viper.New()))

	legacy, err := key.NewSoft()
	require.NoError(err)
	encoded, err := key.NewSoft()
	require.NoError(err)
	require.NoError(os.MkdirAll(app.GetKeyDir(), 0o700))
	require.NoError(os.WriteFile(app.GetKeyPath("legacy"), []byte(fmt.Sprintf("%x", legacy.Raw())), 0o600))
	require.NoError(app.SaveKey("current", encoded))

	require.NoError(RunMigrations(app))
	require.Equal(runMessage+"\n"+endMessage+"\n", out.String())

	raw, err := os.ReadFile(filepath.Join(app.GetKeyDir(), "legacy"+constants.KeySuffix))
	require.NoError(err)
	require.Equal(legacy.Encode(), string(raw))
	loaded, err := app.LoadKey("legacy")
	require.NoError(err)
	require.Equal(legacy.Address(), loaded.Address())

	// a second run has nothing to do
	out.Reset()
	require.NoError(RunMigrations(app))
	require.Empty(out.String())
}

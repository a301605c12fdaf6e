// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package testutils

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"
	luxlog "github.com/luxfi/log"
	"github.com/luxfi/vault/pkg/assetledger"
	"github.com/luxfi/vault/pkg/monitoring"
	"github.com/luxfi/vault/pkg/ux"
	"github.com/luxfi/vault/pkg/vault"
	"github.com/luxfi/vault/pkg/vaultstore"
	"github.com/stretchr/testify/require"
)

// GenesisTime is the clock reading every test environment starts at.
const GenesisTime int64 = 1_700_000_000

func SetupTest(t *testing.T) *require.Assertions {
	// use io.Discard to not print anything
	ux.NewUserLog(luxlog.NewNoOpLogger(), io.Discard)
	return require.New(t)
}

// Clock is a settable vault.Clock.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(unix int64) *Clock {
	return &Clock{now: time.Unix(unix, 0)}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *Clock) Set(unix int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = time.Unix(unix, 0)
}

// Env is a Manager wired to in-memory collaborators.
type Env struct {
	Manager *vault.Manager
	Ledger  *assetledger.Ledger
	Store   *vaultstore.Store
	Clock   *Clock
	Metrics *monitoring.Metrics
}

// EnvOption adjusts the manager config before it is built.
type EnvOption func(*vault.Config)

func WithRejectDustDeposits() EnvOption {
	return func(c *vault.Config) { c.RejectDustDeposits = true }
}

func WithAuthorizer(a vault.Authorizer) EnvOption {
	return func(c *vault.Config) { c.Authorizer = a }
}

func NewEnv(t *testing.T, opts ...EnvOption) *Env {
	db := memdb.New()
	t.Cleanup(func() { _ = db.Close() })

	metrics, err := monitoring.New()
	require.NoError(t, err)

	env := &Env{
		Ledger:  assetledger.New(db),
		Store:   vaultstore.New(db),
		Clock:   NewClock(GenesisTime),
		Metrics: metrics,
	}
	cfg := vault.Config{
		Store:      env.Store,
		Assets:     env.Ledger,
		Shares:     env.Ledger,
		Clock:      env.Clock,
		Authorizer: vault.AllowAll{},
		Log:        luxlog.NewNoOpLogger(),
		Metrics:    metrics,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	env.Manager, err = vault.NewManager(cfg)
	require.NoError(t, err)
	return env
}

// Account returns a distinct test account for each n.
func Account(n byte) ids.ShortID {
	return ids.ShortID{n}
}

// Asset returns a distinct test asset for each n.
func Asset(n byte) ids.ID {
	return ids.ID{0xa5, n}
}

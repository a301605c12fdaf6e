// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/luxfi/ids"
	luxlog "github.com/luxfi/log"
	"github.com/luxfi/vault/pkg/monitoring"
	"go.uber.org/zap"
)

var errMissingCapability = errors.New("vault manager requires a store, an asset ledger, a share token and an authorizer")

// Config wires a Manager to its collaborators. Clock defaults to the system
// clock, Log to a no-op logger, and Metrics may be nil.
type Config struct {
	Store      Store
	Assets     AssetTransfer
	Shares     ShareToken
	Clock      Clock
	Authorizer Authorizer
	Log        luxlog.Logger
	Metrics    *monitoring.Metrics

	// RejectDustDeposits rejects deposits too small to mint a single share.
	RejectDustDeposits bool
}

// Manager is the only mutating entry point to vault state. Operations on the
// same vault run one at a time; operations on different vaults run
// concurrently.
type Manager struct {
	cfg Config

	locksMu sync.Mutex
	locks   map[ids.ID]*sync.Mutex
}

func NewManager(cfg Config) (*Manager, error) {
	if cfg.Store == nil || cfg.Assets == nil || cfg.Shares == nil || cfg.Authorizer == nil {
		return nil, errMissingCapability
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	if cfg.Log == nil {
		cfg.Log = luxlog.NewNoOpLogger()
	}
	return &Manager{
		cfg:   cfg,
		locks: make(map[ids.ID]*sync.Mutex),
	}, nil
}

func (m *Manager) lock(id ids.ID) func() {
	m.locksMu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = &sync.Mutex{}
		m.locks[id] = l
	}
	m.locksMu.Unlock()

	l.Lock()
	return l.Unlock
}

// Initialize creates the vault owned by authority for depositAsset and
// returns its id.
func (m *Manager) Initialize(
	ctx context.Context,
	authority ids.ShortID,
	depositAsset ids.ID,
	decimals uint8,
	epochDuration uint64,
) (ids.ID, error) {
	id := VaultID(authority, depositAsset)
	op := Operation{Kind: OpInitialize, Vault: id, Caller: authority, Amount: epochDuration}
	_, err := m.execute(ctx, op, func(now uint64) (Transition, error) {
		switch _, err := m.cfg.Store.GetVault(id); {
		case err == nil:
			return Transition{}, fmt.Errorf("%w: vault %s", ErrAlreadyInitialized, id)
		case !errors.Is(err, ErrVaultNotFound):
			return Transition{}, err
		}
		v, err := NewVault(authority, depositAsset, decimals, epochDuration, now)
		if err != nil {
			return Transition{}, err
		}
		return Transition{Vault: v}, nil
	})
	if err != nil {
		return ids.Empty, err
	}
	return id, nil
}

// Deposit moves amount from user into custody and returns the shares minted.
func (m *Manager) Deposit(ctx context.Context, vaultID ids.ID, user ids.ShortID, amount uint64) (uint64, error) {
	op := Operation{Kind: OpDeposit, Vault: vaultID, Caller: user, Amount: amount}
	t, err := m.execute(ctx, op, func(uint64) (Transition, error) {
		v, err := m.cfg.Store.GetVault(vaultID)
		if err != nil {
			return Transition{}, err
		}
		t, err := v.Deposit(user, amount)
		if err != nil {
			return Transition{}, err
		}
		if t.Result == 0 && m.cfg.RejectDustDeposits {
			return Transition{}, fmt.Errorf("%w: %d units is worth no shares at rate %s",
				ErrInvalidAmount, amount, FormatRate(v.Rate))
		}
		return t, nil
	})
	return t.Result, err
}

// IncreaseRate adds yield from the authority and returns the new rate.
func (m *Manager) IncreaseRate(ctx context.Context, vaultID ids.ID, caller ids.ShortID, additional uint64) (uint64, error) {
	op := Operation{Kind: OpIncreaseRate, Vault: vaultID, Caller: caller, Amount: additional}
	t, err := m.execute(ctx, op, func(uint64) (Transition, error) {
		v, err := m.cfg.Store.GetVault(vaultID)
		if err != nil {
			return Transition{}, err
		}
		return v.IncreaseRate(caller, additional)
	})
	return t.Result, err
}

// RequestWithdrawal burns shares and returns the asset units locked for
// the user.
func (m *Manager) RequestWithdrawal(ctx context.Context, vaultID ids.ID, user ids.ShortID, shares uint64) (uint64, error) {
	op := Operation{Kind: OpRequestWithdrawal, Vault: vaultID, Caller: user, Amount: shares}
	t, err := m.execute(ctx, op, func(now uint64) (Transition, error) {
		v, existing, err := m.load(vaultID, user)
		if err != nil {
			return Transition{}, err
		}
		return v.RequestWithdrawal(user, shares, existing, now)
	})
	return t.Result, err
}

// ClaimWithdrawal pays out the user's matured request and returns the
// amount paid.
func (m *Manager) ClaimWithdrawal(ctx context.Context, vaultID ids.ID, user ids.ShortID) (uint64, error) {
	op := Operation{Kind: OpClaimWithdrawal, Vault: vaultID, Caller: user}
	t, err := m.execute(ctx, op, func(now uint64) (Transition, error) {
		v, existing, err := m.load(vaultID, user)
		if err != nil {
			return Transition{}, err
		}
		return v.ClaimWithdrawal(existing, now)
	})
	return t.Result, err
}

// AdvanceEpoch moves the vault to its next epoch once the epoch duration has
// elapsed. Anyone may call it.
func (m *Manager) AdvanceEpoch(ctx context.Context, vaultID ids.ID, caller ids.ShortID) (uint64, error) {
	op := Operation{Kind: OpAdvanceEpoch, Vault: vaultID, Caller: caller}
	t, err := m.execute(ctx, op, func(now uint64) (Transition, error) {
		v, err := m.cfg.Store.GetVault(vaultID)
		if err != nil {
			return Transition{}, err
		}
		return v.AdvanceEpoch(now)
	})
	return t.Result, err
}

// ForceAdvanceEpoch moves the vault to its next epoch immediately.
func (m *Manager) ForceAdvanceEpoch(ctx context.Context, vaultID ids.ID, caller ids.ShortID) (uint64, error) {
	op := Operation{Kind: OpForceAdvanceEpoch, Vault: vaultID, Caller: caller}
	t, err := m.execute(ctx, op, func(now uint64) (Transition, error) {
		v, err := m.cfg.Store.GetVault(vaultID)
		if err != nil {
			return Transition{}, err
		}
		return v.ForceAdvanceEpoch(caller, now)
	})
	return t.Result, err
}

func (m *Manager) load(vaultID ids.ID, user ids.ShortID) (Vault, *WithdrawalRequest, error) {
	v, err := m.cfg.Store.GetVault(vaultID)
	if err != nil {
		return Vault{}, nil, err
	}
	existing, err := m.cfg.Store.GetRequest(vaultID, user)
	if err != nil {
		return Vault{}, nil, err
	}
	return v, existing, nil
}

// execute runs one operation: authorize, plan, check funds, apply effects,
// commit. Effects already applied are undone when a later step fails.
func (m *Manager) execute(ctx context.Context, op Operation, plan func(now uint64) (Transition, error)) (Transition, error) {
	if err := ctx.Err(); err != nil {
		return Transition{}, err
	}
	unlock := m.lock(op.Vault)
	defer unlock()

	if err := m.cfg.Authorizer.Authorize(ctx, op); err != nil {
		if !errors.Is(err, ErrUnauthorized) {
			err = fmt.Errorf("%w: %w", ErrUnauthorized, err)
		}
		return Transition{}, m.reject(op, err)
	}

	t, err := plan(unixNow(m.cfg.Clock))
	if err != nil {
		return Transition{}, m.reject(op, err)
	}
	if err := m.preflight(ctx, t); err != nil {
		return Transition{}, m.reject(op, err)
	}

	for i, e := range t.Effects {
		if err := applyEffect(ctx, m.cfg.Assets, m.cfg.Shares, e); err != nil {
			return Transition{}, m.rollback(ctx, op, t.Effects[:i], fmt.Errorf("%s failed: %w", e.Kind, err))
		}
	}
	if err := m.cfg.Store.Commit(t.Vault, t.Request); err != nil {
		return Transition{}, m.rollback(ctx, op, t.Effects, fmt.Errorf("committing vault state: %w", err))
	}

	m.cfg.Log.Info("vault operation applied",
		zap.String("op", string(op.Kind)),
		zap.Stringer("vault", op.Vault),
		zap.Stringer("caller", op.Caller),
		zap.Uint64("amount", op.Amount),
		zap.Uint64("result", t.Result),
		zap.Uint64("rate", t.Vault.Rate),
		zap.Uint64("epoch", t.Vault.CurrentEpoch),
	)
	m.cfg.Metrics.ObserveOperation(string(op.Kind), monitoring.ResultOK)
	m.cfg.Metrics.ObserveVault(snapshotOf(t.Vault))
	return t, nil
}

// preflight verifies every account debited by t can cover it, and that
// custody keeps its reserve after paying out.
func (m *Manager) preflight(ctx context.Context, t Transition) error {
	type source struct {
		kind    EffectKind
		asset   ids.ID
		account ids.ShortID
	}
	debits := make(map[source]uint64)
	var order []source
	for _, e := range t.Effects {
		if e.Kind == EffectMint {
			continue
		}
		s := source{kind: e.Kind, asset: e.Asset, account: e.From}
		if _, ok := debits[s]; !ok {
			order = append(order, s)
		}
		total, err := safeAdd(debits[s], e.Amount)
		if err != nil {
			return err
		}
		debits[s] = total
	}

	for _, s := range order {
		var (
			balance uint64
			err     error
		)
		if s.kind == EffectBurn {
			balance, err = m.cfg.Shares.BalanceOf(ctx, s.asset, s.account)
		} else {
			balance, err = m.cfg.Assets.BalanceOf(ctx, s.asset, s.account)
		}
		if err != nil {
			return err
		}
		debit := debits[s]

		if s.account == t.Vault.CustodyAccount && s.asset == t.Vault.DepositAsset {
			reserve, err := t.Vault.RequiredReserve()
			if err != nil {
				return err
			}
			if balance < debit || balance-debit < reserve {
				return fmt.Errorf("%w: custody holds %d, paying %d would leave less than the %d reserve",
					ErrInsolvent, balance, debit, reserve)
			}
			continue
		}
		if balance < debit {
			return fmt.Errorf("%w: %s holds %d of %s, needs %d", ErrInsufficientFunds, s.account, balance, s.asset, debit)
		}
	}
	return nil
}

// rollback undoes applied in reverse order. Compensation runs even if ctx
// has been cancelled.
func (m *Manager) rollback(ctx context.Context, op Operation, applied []Effect, cause error) error {
	ctx = context.WithoutCancel(ctx)
	var errs []error
	for i := len(applied) - 1; i >= 0; i-- {
		undo := applied[i].inverse()
		if err := applyEffect(ctx, m.cfg.Assets, m.cfg.Shares, undo); err != nil {
			errs = append(errs, fmt.Errorf("undoing %s of %d: %w", applied[i].Kind, applied[i].Amount, err))
		}
	}
	m.cfg.Metrics.ObserveOperation(string(op.Kind), monitoring.ResultRollback)
	if len(errs) > 0 {
		rollbackErr := errors.Join(errs...)
		m.cfg.Log.Error("vault operation rollback incomplete",
			zap.String("op", string(op.Kind)),
			zap.Stringer("vault", op.Vault),
			zap.NamedError("cause", cause),
			zap.Error(rollbackErr),
		)
		return errors.Join(cause, rollbackErr)
	}
	m.cfg.Log.Warn("vault operation rolled back",
		zap.String("op", string(op.Kind)),
		zap.Stringer("vault", op.Vault),
		zap.Int("effects", len(applied)),
		zap.Error(cause),
	)
	return cause
}

func (m *Manager) reject(op Operation, err error) error {
	m.cfg.Log.Debug("vault operation rejected",
		zap.String("op", string(op.Kind)),
		zap.Stringer("vault", op.Vault),
		zap.Stringer("caller", op.Caller),
		zap.Error(err),
	)
	m.cfg.Metrics.ObserveOperation(string(op.Kind), monitoring.ResultRejected)
	return err
}

func snapshotOf(v Vault) monitoring.Snapshot {
	return monitoring.Snapshot{
		Vault:              v.ID.String(),
		TotalDeposits:      v.TotalDeposits,
		TotalShares:        v.TotalShares,
		PendingWithdrawals: v.PendingWithdrawals,
		Rate:               v.Rate,
		CurrentEpoch:       v.CurrentEpoch,
	}
}

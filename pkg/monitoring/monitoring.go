// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package monitoring records vault operation and balance-sheet metrics.
package monitoring

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/luxfi/filesystem/perms"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "vault"

// Result labels for the operations counter.
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultRollback = "rollback"
)

// Metrics is safe to use as a nil pointer; every method is then a no-op.
type Metrics struct {
	registry *prometheus.Registry

	operations *prometheus.CounterVec
	deposits   *prometheus.GaugeVec
	shares     *prometheus.GaugeVec
	pending    *prometheus.GaugeVec
	rate       *prometheus.GaugeVec
	epoch      *prometheus.GaugeVec
	shortfall  *prometheus.GaugeVec
}

// Snapshot is the balance sheet of one vault as exported in gauges.
type Snapshot struct {
	Vault              string
	TotalDeposits      uint64
	TotalShares        uint64
	PendingWithdrawals uint64
	Rate               uint64
	CurrentEpoch       uint64
}

// New creates the vault metrics and registers them on a fresh registry.
func New() (*Metrics, error) {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Vault operations by kind and outcome.",
		}, []string{"op", "result"}),
		deposits: newGauge("total_deposits", "Asset units held for the vault, including locked withdrawals."),
		shares:   newGauge("total_shares", "Outstanding shares."),
		pending:  newGauge("pending_withdrawals", "Asset units locked in unclaimed withdrawal requests."),
		rate:     newGauge("rate", "Exchange rate scaled by 1e9."),
		epoch:    newGauge("current_epoch", "Current epoch."),
		shortfall: newGauge("reserve_shortfall",
			"Asset units the custody balance is short of the required reserve."),
	}
	err := errors.Join(
		m.registry.Register(m.operations),
		m.registry.Register(m.deposits),
		m.registry.Register(m.shares),
		m.registry.Register(m.pending),
		m.registry.Register(m.rate),
		m.registry.Register(m.epoch),
		m.registry.Register(m.shortfall),
	)
	if err != nil {
		return nil, fmt.Errorf("registering vault metrics: %w", err)
	}
	return m, nil
}

func newGauge(name, help string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, []string{"vault"})
}

// Registry exposes the underlying gatherer.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveOperation counts one operation outcome.
func (m *Metrics) ObserveOperation(op, result string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, result).Inc()
}

// ObserveVault publishes the balance sheet of a vault.
func (m *Metrics) ObserveVault(s Snapshot) {
	if m == nil {
		return
	}
	m.deposits.WithLabelValues(s.Vault).Set(float64(s.TotalDeposits))
	m.shares.WithLabelValues(s.Vault).Set(float64(s.TotalShares))
	m.pending.WithLabelValues(s.Vault).Set(float64(s.PendingWithdrawals))
	m.rate.WithLabelValues(s.Vault).Set(float64(s.Rate))
	m.epoch.WithLabelValues(s.Vault).Set(float64(s.CurrentEpoch))
}

// ObserveShortfall records how far below its reserve a vault's custody is.
func (m *Metrics) ObserveShortfall(vault string, shortfall uint64) {
	if m == nil {
		return
	}
	m.shortfall.WithLabelValues(vault).Set(float64(shortfall))
}

// WriteTextfile writes every metric in the Prometheus text format, for
// pickup by a node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), perms.ReadWriteExecute); err != nil {
		return err
	}
	return prometheus.WriteToTextfile(path, m.registry)
}

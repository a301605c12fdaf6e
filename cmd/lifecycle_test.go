// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"

	"github.com/luxfi/ids"
	"github.com/luxfi/vault/cmd"
	"github.com/luxfi/vault/pkg/constants"
	"github.com/luxfi/vault/pkg/vault"
	ginkgo "github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var vaultIDPattern = regexp.MustCompile(`Vault ID: (\S+)`)

var _ = ginkgo.Describe("[Vault lifecycle]", ginkgo.Ordered, func() {
	var (
		baseDir string
		asset   string
		vaultID string
	)

	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		err := cmd.Run(context.Background(), append([]string{"--base-dir", baseDir}, args...), &out)
		return out.String(), err
	}
	mustRun := func(args ...string) string {
		out, err := run(args...)
		gomega.Expect(err).ShouldNot(gomega.HaveOccurred(), out)
		return out
	}

	ginkgo.BeforeAll(func() {
		baseDir = ginkgo.GinkgoT().TempDir()
		asset = ids.GenerateTestID().String()
	})

	ginkgo.It("creates keys", func() {
		out := mustRun("key", "create", "operator")
		gomega.Expect(out).Should(gomega.ContainSubstring("Key operator created"))
		gomega.Expect(out).Should(gomega.ContainSubstring("L-vault1"))
		mustRun("key", "create", "alice")

		_, err := run("key", "create", "alice")
		gomega.Expect(err).Should(gomega.MatchError(constants.ErrKeyExists))

		out = mustRun("key", "list")
		gomega.Expect(out).Should(gomega.ContainSubstring("operator"))
		gomega.Expect(out).Should(gomega.ContainSubstring("alice"))
	})

	ginkgo.It("funds accounts", func() {
		mustRun("ledger", "fund", "--key", "alice", "--asset", asset, "--amount", "1000")
		mustRun("ledger", "fund", "--key", "operator", "--asset", asset, "--amount", "500")

		_, err := run("ledger", "fund", "--asset", asset, "--amount", "1")
		gomega.Expect(err).Should(gomega.MatchError(constants.ErrMissingAccount))
	})

	ginkgo.It("initializes a vault", func() {
		out := mustRun("init", "--key", "operator", "--asset", asset, "--epoch-duration", "3600")
		match := vaultIDPattern.FindStringSubmatch(out)
		gomega.Expect(match).Should(gomega.HaveLen(2))
		vaultID = match[1]

		_, err := run("init", "--key", "operator", "--asset", asset, "--epoch-duration", "3600")
		gomega.Expect(err).Should(gomega.MatchError(vault.ErrAlreadyInitialized))

		gomega.Expect(mustRun("list", "--output", "json")).Should(gomega.ContainSubstring(vaultID))
	})

	ginkgo.It("deposits and adds yield", func() {
		out := mustRun("deposit", vaultID, "--key", "alice", "--amount", "1000")
		gomega.Expect(out).Should(gomega.ContainSubstring("minted 1_000 shares"))

		_, err := run("increase-rate", vaultID, "--key", "alice", "--amount", "1")
		gomega.Expect(err).Should(gomega.MatchError(vault.ErrUnauthorized))

		out = mustRun("increase-rate", vaultID, "--key", "operator", "--amount", "100")
		gomega.Expect(out).Should(gomega.ContainSubstring("Rate is now 1.1000"))

		out = mustRun("preview", "deposit", vaultID, "--amount", "110")
		gomega.Expect(out).Should(gomega.ContainSubstring("110 units mint 100 shares"))
	})

	ginkgo.It("withdraws across an epoch", func() {
		out := mustRun("request-withdrawal", vaultID, "--key", "alice", "--shares", "500")
		gomega.Expect(out).Should(gomega.ContainSubstring("locked 550 units"))
		gomega.Expect(out).Should(gomega.ContainSubstring("Claimable from epoch 1"))

		_, err := run("claim", vaultID, "--key", "alice")
		gomega.Expect(err).Should(gomega.MatchError(vault.ErrEpochNotReached))

		_, err = run("advance-epoch", vaultID, "--key", "alice")
		gomega.Expect(err).Should(gomega.MatchError(vault.ErrEpochNotElapsed))

		_, err = run("force-advance-epoch", vaultID, "--key", "alice")
		gomega.Expect(err).Should(gomega.MatchError(vault.ErrUnauthorized))

		out = mustRun("force-advance-epoch", vaultID, "--key", "operator")
		gomega.Expect(out).Should(gomega.ContainSubstring("epoch 1"))

		out = mustRun("claim", vaultID, "--key", "alice")
		gomega.Expect(out).Should(gomega.ContainSubstring("Claimed 550 units"))

		_, err = run("claim", vaultID, "--key", "alice")
		gomega.Expect(err).Should(gomega.MatchError(vault.ErrAlreadyClaimed))
	})

	ginkgo.It("reports vault state", func() {
		out := mustRun("show", vaultID, "--output", "json")
		var details struct {
			Vault           vault.Vault `json:"vault"`
			RequiredReserve uint64      `json:"requiredReserve"`
			CustodyBalance  uint64      `json:"custodyBalance"`
		}
		gomega.Expect(json.Unmarshal([]byte(out), &details)).Should(gomega.Succeed())
		gomega.Expect(details.Vault.Rate).Should(gomega.Equal(uint64(1_100_000_000)))
		gomega.Expect(details.Vault.TotalShares).Should(gomega.Equal(uint64(500)))
		gomega.Expect(details.Vault.TotalDeposits).Should(gomega.Equal(uint64(550)))
		gomega.Expect(details.CustodyBalance).Should(gomega.Equal(details.RequiredReserve))

		out = mustRun("position", vaultID, "--key", "alice", "--output", "yaml")
		gomega.Expect(out).Should(gomega.ContainSubstring("slot: claimed"))
		gomega.Expect(out).Should(gomega.ContainSubstring("shares: 500"))

		out = mustRun("ledger", "balance", "--key", "alice", "--asset", asset)
		gomega.Expect(out).Should(gomega.ContainSubstring("550"))

		_, err := run("show", vaultID, "--output", "xml")
		gomega.Expect(err).Should(gomega.MatchError(constants.ErrInvalidOutput))
	})

	ginkgo.It("audits and writes metrics", func() {
		out := mustRun("audit")
		gomega.Expect(out).Should(gomega.ContainSubstring("audited 1 vaults"))

		out = mustRun("audit", vaultID, "--output", "json")
		gomega.Expect(out).Should(gomega.ContainSubstring(vaultID))
		gomega.Expect(out).Should(gomega.ContainSubstring(`"solvent": true`))

		metrics, err := os.ReadFile(filepath.Join(baseDir, constants.MetricsDir, constants.MetricsFile))
		gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
		gomega.Expect(string(metrics)).Should(gomega.ContainSubstring("vault_reserve_shortfall"))
		gomega.Expect(string(metrics)).Should(gomega.ContainSubstring("vault_total_deposits"))
	})

	ginkgo.It("reports database contents", func() {
		out := mustRun("database", "stats")
		gomega.Expect(out).Should(gomega.ContainSubstring("vault/"))
		gomega.Expect(out).Should(gomega.ContainSubstring("request/"))
		gomega.Expect(out).Should(gomega.ContainSubstring("balance/"))
		mustRun("database", "compact")
	})

	ginkgo.It("persists config", func() {
		mustRun("config", "set", constants.ConfigAuditConcurrency, "2")
		out := mustRun("config", "get", constants.ConfigAuditConcurrency)
		gomega.Expect(out).Should(gomega.ContainSubstring("audit-concurrency = 2"))

		_, err := run("config", "set", constants.ConfigDBType, "postgres")
		gomega.Expect(err).Should(gomega.MatchError(constants.ErrUnsupportedDBType))
	})
})

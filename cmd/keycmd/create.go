// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package keycmd

import (
	"strings"

	"github.com/luxfi/vault/pkg/key"
	"github.com/luxfi/vault/pkg/ux"
	"github.com/spf13/cobra"
)

var (
	useMnemonic    bool
	mnemonicPhrase string
	accountIndex   uint32
)

func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new signing key",
		Long: `Create a new secp256k1 signing key and store it as <name>.pk in the key directory.

By default a random key is generated. With --mnemonic a new 24-word phrase is
generated and the key derived from it at m/44'/9000'/0'/0/<account-index>; with
--phrase an existing phrase is used instead.

Examples:
  vault key create operator
  vault key create alice --mnemonic
  vault key create bob --phrase "word1 word2 ..." --account-index 1`,
		Args: cobra.ExactArgs(1),
		RunE: runCreate,
	}

	cmd.Flags().BoolVarP(&useMnemonic, "mnemonic", "m", false, "derive the key from a newly generated mnemonic")
	cmd.Flags().StringVar(&mnemonicPhrase, "phrase", "", "derive the key from this mnemonic phrase")
	cmd.Flags().Uint32Var(&accountIndex, "account-index", 0, "account index used for mnemonic derivation")
	cmd.MarkFlagsMutuallyExclusive("mnemonic", "phrase")

	return cmd
}

func runCreate(_ *cobra.Command, args []string) error {
	name := args[0]

	var opts []key.SOpOption
	switch {
	case mnemonicPhrase != "":
		opts = append(opts, key.WithMnemonic(strings.TrimSpace(mnemonicPhrase), accountIndex))
	case useMnemonic:
		mnemonic, err := key.NewMnemonic()
		if err != nil {
			return err
		}
		ux.Logger.PrintToUser("Generated new mnemonic phrase (SAVE THIS SECURELY!):")
		ux.Logger.PrintToUser("")
		ux.Logger.PrintToUser("  %s", mnemonic)
		ux.Logger.PrintToUser("")
		opts = append(opts, key.WithMnemonic(mnemonic, accountIndex))
	}

	k, err := key.NewSoft(opts...)
	if err != nil {
		return err
	}
	if err := app.SaveKey(name, k); err != nil {
		return err
	}
	addr, err := k.Bech32()
	if err != nil {
		return err
	}
	ux.Logger.GreenCheckmarkToUser("Key %s created", name)
	ux.Logger.PrintToUser("Address: %s", addr)
	return nil
}

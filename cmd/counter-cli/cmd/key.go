// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MuhKar1/Counter-dApp/auth"
	"github.com/MuhKar1/Counter-dApp/crypto/ed25519"
	"github.com/MuhKar1/Counter-dApp/utils"
)

const keyFileMode = 0o600

var keyCmd = &cobra.Command{
	Use: "key",
	RunE: func(*cobra.Command, []string) error {
		return ErrMissingSubcommand
	},
}

var genKeyCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a signing key and store it in --key-file",
	RunE: func(*cobra.Command, []string) error {
		if _, err := os.Stat(keyFile); err == nil {
			return fmt.Errorf("%w: %s already exists", ErrInvalidArgs, keyFile)
		}
		priv, err := ed25519.GeneratePrivateKey()
		if err != nil {
			return err
		}
		if err := os.WriteFile(keyFile, []byte(hex.EncodeToString(priv[:])), keyFileMode); err != nil {
			return err
		}
		utils.Outf("{{green}}created new key:{{/}} %s\n", auth.NewED25519Address(priv.PublicKey()))
		return nil
	},
}

var addressKeyCmd = &cobra.Command{
	Use:   "address",
	Short: "Print the address of the stored key",
	RunE: func(*cobra.Command, []string) error {
		factory, err := loadFactory()
		if err != nil {
			return err
		}
		utils.Outf("{{cyan}}address:{{/}} %s\n", factory.Address())
		return nil
	},
}

func loadFactory() (*auth.ED25519Factory, error) {
	raw, err := os.ReadFile(keyFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w (run \"key generate\")", ErrInvalidKeyFile, err)
	}
	decoded, err := hex.DecodeString(strings.TrimSpace(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKeyFile, err)
	}
	if len(decoded) != ed25519.PrivateKeyLen {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidKeyFile, ed25519.PrivateKeyLen, len(decoded))
	}
	return auth.NewED25519Factory(ed25519.PrivateKey(decoded)), nil
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"time"

	"github.com/spf13/cobra"
)

const requestTimeout = 30 * time.Second

var (
	endpoint string
	keyFile  string

	rootCmd = &cobra.Command{
		Use:        "counter-cli",
		Short:      "Counter relay CLI",
		SuggestFor: []string{"counter-cli", "countercli"},
	}
)

func init() {
	cobra.EnablePrefixMatching = true
	rootCmd.PersistentFlags().StringVar(
		&endpoint,
		"endpoint",
		"http://localhost:9650",
		"relay RPC endpoint",
	)
	rootCmd.PersistentFlags().StringVar(
		&keyFile,
		"key-file",
		".counter-cli.key",
		"path of the hex-encoded signing key",
	)

	rootCmd.AddCommand(
		pingCmd,
		keyCmd,

		createCmd,
		incrementCmd,
		decrementCmd,
		closeCmd,

		readCmd,
		balanceCmd,
		watchCmd,
	)

	// key
	keyCmd.AddCommand(
		genKeyCmd,
		addressKeyCmd,
	)
}

func Execute() error {
	return rootCmd.Execute()
}

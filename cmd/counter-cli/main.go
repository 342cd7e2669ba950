// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// "counter-cli" drives a counter relay from the command line.
package main

import (
	"os"

	"github.com/MuhKar1/Counter-dApp/cmd/counter-cli/cmd"
	"github.com/MuhKar1/Counter-dApp/utils"
)

func main() {
	if err := cmd.Execute(); err != nil {
		utils.Outf("{{red}}counter-cli exited with error:{{/}} %+v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}

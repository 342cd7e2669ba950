// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/MuhKar1/Counter-dApp/actions"
	"github.com/MuhKar1/Counter-dApp/api/jsonrpc"
	"github.com/MuhKar1/Counter-dApp/chain"
	"github.com/MuhKar1/Counter-dApp/codec"
	"github.com/MuhKar1/Counter-dApp/utils"
	"github.com/MuhKar1/Counter-dApp/vm"
)

var counterFlag string

func init() {
	for _, cmd := range []*cobra.Command{incrementCmd, decrementCmd, closeCmd} {
		cmd.PersistentFlags().StringVar(
			&counterFlag,
			"counter",
			"",
			"counter address to target (default: your own)",
		)
	}
}

func targetCounter() (codec.Address, error) {
	if counterFlag == "" {
		return codec.EmptyAddress, nil
	}
	return codec.StringToAddress(counterFlag)
}

// sendActions signs and submits a transaction, then prints each result.
func sendActions(acts ...chain.Action) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	factory, err := loadFactory()
	if err != nil {
		return err
	}
	actionRegistry, authRegistry, err := vm.NewRegistries()
	if err != nil {
		return err
	}
	cli := jsonrpc.NewJSONRPCClient(endpoint)
	tx, err := cli.GenerateTransaction(ctx, factory, actionRegistry, authRegistry, acts...)
	if err != nil {
		return err
	}
	txID, outputs, err := cli.SubmitTx(ctx, tx.Bytes())
	if err != nil {
		return err
	}
	utils.Outf("{{green}}accepted:{{/}} %s\n", txID)
	for _, output := range outputs {
		utils.Outf("%s\n", string(output))
	}
	return nil
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create your counter (locks the storage deposit)",
	RunE: func(*cobra.Command, []string) error {
		return sendActions(&actions.Initialize{})
	},
}

var incrementCmd = &cobra.Command{
	Use:   "increment [amount]",
	Short: "Increment a counter, once per repetition",
	PreRunE: func(_ *cobra.Command, args []string) error {
		if len(args) > 1 {
			return ErrInvalidArgs
		}
		return nil
	},
	RunE: func(_ *cobra.Command, args []string) error {
		counter, err := targetCounter()
		if err != nil {
			return err
		}
		reps, err := parseReps(args)
		if err != nil {
			return err
		}
		for i := 0; i < reps; i++ {
			if err := sendActions(&actions.Increment{Counter: counter}); err != nil {
				return err
			}
		}
		return nil
	},
}

var decrementCmd = &cobra.Command{
	Use:   "decrement [amount]",
	Short: "Decrement a counter, once per repetition",
	PreRunE: func(_ *cobra.Command, args []string) error {
		if len(args) > 1 {
			return ErrInvalidArgs
		}
		return nil
	},
	RunE: func(_ *cobra.Command, args []string) error {
		counter, err := targetCounter()
		if err != nil {
			return err
		}
		reps, err := parseReps(args)
		if err != nil {
			return err
		}
		for i := 0; i < reps; i++ {
			if err := sendActions(&actions.Decrement{Counter: counter}); err != nil {
				return err
			}
		}
		return nil
	},
}

var closeCmd = &cobra.Command{
	Use:   "close",
	Short: "Close a counter and reclaim its storage deposit",
	RunE: func(*cobra.Command, []string) error {
		counter, err := targetCounter()
		if err != nil {
			return err
		}
		prompt := promptui.Prompt{
			Label:     "close counter (final count is lost)",
			IsConfirm: true,
		}
		if _, err := prompt.Run(); err != nil {
			if errors.Is(err, promptui.ErrAbort) {
				utils.Outf("{{yellow}}close aborted{{/}}\n")
				return nil
			}
			return err
		}
		return sendActions(&actions.Close{Counter: counter})
	},
}

func parseReps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	var reps int
	if _, err := fmt.Sscanf(strings.TrimSpace(args[0]), "%d", &reps); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidArgs, err)
	}
	if reps < 1 {
		return 0, fmt.Errorf("%w: amount must be positive", ErrInvalidArgs)
	}
	return reps, nil
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/MuhKar1/Counter-dApp/api/jsonrpc"
	"github.com/MuhKar1/Counter-dApp/codec"
	"github.com/MuhKar1/Counter-dApp/consts"
	"github.com/MuhKar1/Counter-dApp/utils"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the relay is reachable",
	RunE: func(*cobra.Command, []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		cli := jsonrpc.NewJSONRPCClient(endpoint)
		start := time.Now()
		ok, err := cli.Ping(ctx)
		if err != nil {
			return err
		}
		utils.Outf("{{green}}ping ok:{{/}} %v {{cyan}}t:{{/}} %s\n", ok, time.Since(start))
		return nil
	},
}

// identityArg resolves the optional positional identity argument, falling
// back to the stored key's address.
func identityArg(args []string) (codec.Address, error) {
	if len(args) == 1 {
		return codec.StringToAddress(args[0])
	}
	factory, err := loadFactory()
	if err != nil {
		return codec.EmptyAddress, err
	}
	return factory.Address(), nil
}

var readCmd = &cobra.Command{
	Use:   "read [identity]",
	Short: "Read a counter (defaults to your own)",
	PreRunE: func(_ *cobra.Command, args []string) error {
		if len(args) > 1 {
			return ErrInvalidArgs
		}
		return nil
	},
	RunE: func(_ *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		identity, err := identityArg(args)
		if err != nil {
			return err
		}
		cli := jsonrpc.NewJSONRPCClient(endpoint)
		reply, err := cli.Counter(ctx, identity)
		if err != nil {
			return err
		}
		utils.Outf(
			"{{cyan}}counter:{{/}} %s {{cyan}}count:{{/}} %d {{cyan}}authority:{{/}} %s {{cyan}}bump:{{/}} %d\n",
			reply.Counter, reply.Count, reply.Authority, reply.Bump,
		)
		return nil
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Read a native balance (defaults to your own)",
	PreRunE: func(_ *cobra.Command, args []string) error {
		if len(args) > 1 {
			return ErrInvalidArgs
		}
		return nil
	},
	RunE: func(_ *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		addr, err := identityArg(args)
		if err != nil {
			return err
		}
		cli := jsonrpc.NewJSONRPCClient(endpoint)
		bal, err := cli.Balance(ctx, addr)
		if err != nil {
			return err
		}
		utils.Outf("{{cyan}}balance:{{/}} %s %s\n", utils.FormatBalance(bal), consts.Symbol)
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch [identity]",
	Short: "Poll a counter and print every change",
	PreRunE: func(_ *cobra.Command, args []string) error {
		if len(args) > 1 {
			return ErrInvalidArgs
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		identity, err := identityArg(args)
		if err != nil {
			return err
		}
		cli := jsonrpc.NewJSONRPCClient(endpoint)
		utils.Outf("{{yellow}}watching counter of{{/}} %s\n", identity)

		var (
			ctx      = cmd.Context()
			lastSeen uint64
			seen     bool
		)
		for {
			reply, err := cli.Counter(ctx, identity)
			if err == nil && (!seen || reply.Count != lastSeen) {
				utils.Outf("{{cyan}}count:{{/}} %d\n", reply.Count)
				lastSeen = reply.Count
				seen = true
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Second):
			}
		}
	},
}

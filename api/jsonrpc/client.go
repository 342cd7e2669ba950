// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/rpc"

	"github.com/MuhKar1/Counter-dApp/chain"
	"github.com/MuhKar1/Counter-dApp/codec"
	"github.com/MuhKar1/Counter-dApp/utils"
)

const defaultTxValidity = 45_000 // ms

type JSONRPCClient struct {
	requester rpc.EndpointRequester

	chainID ids.ID
}

func NewJSONRPCClient(uri string) *JSONRPCClient {
	uri = strings.TrimSuffix(uri, "/")
	uri += Endpoint
	return &JSONRPCClient{requester: rpc.NewEndpointRequester(uri)}
}

func (cli *JSONRPCClient) Ping(ctx context.Context) (bool, error) {
	resp := new(PingReply)
	err := cli.requester.SendRequest(ctx,
		Name+".ping",
		nil,
		resp,
	)
	return resp.Success, err
}

func (cli *JSONRPCClient) Network(ctx context.Context) (ids.ID, error) {
	if cli.chainID != ids.Empty {
		return cli.chainID, nil
	}
	resp := new(NetworkReply)
	err := cli.requester.SendRequest(ctx,
		Name+".network",
		nil,
		resp,
	)
	if err != nil {
		return ids.Empty, err
	}
	cli.chainID = resp.ChainID
	return resp.ChainID, nil
}

// BuildTx asks the relay for unsigned transaction bytes for [op], suitable
// for an external wallet to sign.
func (cli *JSONRPCClient) BuildTx(ctx context.Context, op string, counter codec.Address) ([]byte, error) {
	resp := new(BuildTxReply)
	err := cli.requester.SendRequest(ctx,
		Name+".buildTx",
		&BuildTxArgs{Op: op, Counter: counter},
		resp,
	)
	return resp.UnsignedTx, err
}

func (cli *JSONRPCClient) SubmitTx(ctx context.Context, txBytes []byte) (ids.ID, []json.RawMessage, error) {
	resp := new(SubmitTxReply)
	err := cli.requester.SendRequest(ctx,
		Name+".submitTx",
		&SubmitTxArgs{Tx: txBytes},
		resp,
	)
	return resp.TxID, resp.Outputs, err
}

func (cli *JSONRPCClient) Counter(ctx context.Context, identity codec.Address) (*CounterReply, error) {
	resp := new(CounterReply)
	err := cli.requester.SendRequest(ctx,
		Name+".counter",
		&CounterArgs{Identity: identity},
		resp,
	)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (cli *JSONRPCClient) Balance(ctx context.Context, addr codec.Address) (uint64, error) {
	resp := new(BalanceReply)
	err := cli.requester.SendRequest(ctx,
		Name+".balance",
		&BalanceArgs{Address: addr},
		resp,
	)
	return resp.Balance, err
}

// GenerateTransaction builds and signs a transaction locally. It only hits
// the relay to learn the chain ID (cached after the first call).
func (cli *JSONRPCClient) GenerateTransaction(
	ctx context.Context,
	factory chain.AuthFactory,
	actionRegistry *chain.ActionRegistry,
	authRegistry *chain.AuthRegistry,
	acts ...chain.Action,
) (*chain.Transaction, error) {
	chainID, err := cli.Network(ctx)
	if err != nil {
		return nil, err
	}
	tx := chain.NewTx(&chain.Base{
		Timestamp: utils.UnixRMilli(-1, defaultTxValidity),
		ChainID:   chainID,
		MaxFee:    DefaultMaxFee,
	}, acts)
	return tx.Sign(factory, actionRegistry, authRegistry)
}

// WaitForCount polls until [identity]'s counter reaches [target] or the
// context expires.
func (cli *JSONRPCClient) WaitForCount(ctx context.Context, identity codec.Address, target uint64) error {
	for {
		reply, err := cli.Counter(ctx, identity)
		if err == nil && reply.Count >= target {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(500 * time.Millisecond):
		}
	}
}

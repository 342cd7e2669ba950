// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MuhKar1/Counter-dApp/actions"
	"github.com/MuhKar1/Counter-dApp/api/jsonrpc"
	"github.com/MuhKar1/Counter-dApp/auth"
	"github.com/MuhKar1/Counter-dApp/chain"
	"github.com/MuhKar1/Counter-dApp/codec"
	"github.com/MuhKar1/Counter-dApp/consts"
	"github.com/MuhKar1/Counter-dApp/crypto/ed25519"
	"github.com/MuhKar1/Counter-dApp/genesis"
	"github.com/MuhKar1/Counter-dApp/server"
	"github.com/MuhKar1/Counter-dApp/storage"
	"github.com/MuhKar1/Counter-dApp/vm"
)

func newTestService(t *testing.T) (*vm.VM, *jsonrpc.JSONRPCClient, *auth.ED25519Factory) {
	t.Helper()
	require := require.New(t)

	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	factory := auth.NewED25519Factory(priv)

	gen := genesis.Default()
	gen.CustomAllocation = []*genesis.CustomAllocation{
		{Address: factory.Address(), Balance: 1_000_000},
	}
	v, err := vm.New(context.Background(), nil, gen, nil)
	require.NoError(err)
	t.Cleanup(func() { require.NoError(v.Close()) })

	handler, err := server.NewHandler(jsonrpc.NewJSONRPCServer(v), jsonrpc.Name)
	require.NoError(err)
	mux := http.NewServeMux()
	mux.Handle(jsonrpc.Endpoint, handler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return v, jsonrpc.NewJSONRPCClient(srv.URL), factory
}

func TestServicePing(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	_, cli, _ := newTestService(t)
	ok, err := cli.Ping(ctx)
	require.NoError(err)
	require.True(ok)

	chainID, err := cli.Network(ctx)
	require.NoError(err)
	require.Equal(consts.ID, chainID)
}

func TestServiceSubmitAndRead(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	v, cli, factory := newTestService(t)
	actionRegistry, authRegistry := v.Registries()

	// no counter yet
	_, err := cli.Counter(ctx, factory.Address())
	require.Error(err)

	tx, err := cli.GenerateTransaction(ctx, factory, actionRegistry, authRegistry,
		&actions.Initialize{},
		&actions.Increment{},
	)
	require.NoError(err)

	txID, outputs, err := cli.SubmitTx(ctx, tx.Bytes())
	require.NoError(err)
	require.Equal(tx.ID(), txID)
	require.Len(outputs, 2)

	var updateOut actions.UpdateResult
	require.NoError(json.Unmarshal(outputs[1], &updateOut))
	require.Equal(uint64(1), updateOut.NewCount)

	reply, err := cli.Counter(ctx, factory.Address())
	require.NoError(err)
	require.Equal(uint64(1), reply.Count)
	require.Equal(factory.Address(), reply.Authority)
	require.Equal(updateOut.Counter, reply.Counter)

	deposit := v.Rules().GetStorageDeposit(storage.CounterAccountSize)
	bal, err := cli.Balance(ctx, factory.Address())
	require.NoError(err)
	require.Equal(uint64(1_000_000)-deposit, bal)
}

// The wallet flow: fetch unsigned bytes from the relay, sign them locally,
// attach, submit.
func TestServiceBuildTx(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	v, cli, factory := newTestService(t)
	actionRegistry, authRegistry := v.Registries()

	unsigned, err := cli.BuildTx(ctx, "initialize", codec.EmptyAddress)
	require.NoError(err)
	require.NotEmpty(unsigned)

	p := codec.NewReader(unsigned, consts.MaxInt)
	tx, err := chain.UnmarshalTxData(p, actionRegistry)
	require.NoError(err)

	walletAuth, err := factory.Sign(unsigned)
	require.NoError(err)
	signed, err := tx.Attach(walletAuth, actionRegistry, authRegistry)
	require.NoError(err)

	_, outputs, err := cli.SubmitTx(ctx, signed.Bytes())
	require.NoError(err)
	require.Len(outputs, 1)

	reply, err := cli.Counter(ctx, factory.Address())
	require.NoError(err)
	require.Zero(reply.Count)

	// unknown ops are rejected before anything is built
	_, err = cli.BuildTx(ctx, "destroy", codec.EmptyAddress)
	require.Error(err)
}

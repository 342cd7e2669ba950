// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/MuhKar1/Counter-dApp/chain/chaintest"
	"github.com/MuhKar1/Counter-dApp/codec"
	"github.com/MuhKar1/Counter-dApp/consts"
	"github.com/MuhKar1/Counter-dApp/crypto/ed25519"
	"github.com/MuhKar1/Counter-dApp/genesis"
	"github.com/MuhKar1/Counter-dApp/pda"
	"github.com/MuhKar1/Counter-dApp/state"
	"github.com/MuhKar1/Counter-dApp/storage"

	authimpl "github.com/MuhKar1/Counter-dApp/auth"
)

func newActor(t *testing.T) codec.Address {
	t.Helper()
	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(t, err)
	return authimpl.NewED25519Address(priv.PublicKey())
}

func mustDerive(t *testing.T, identity codec.Address) (codec.Address, uint8) {
	t.Helper()
	addr, bump, err := pda.Derive([]byte(consts.Namespace), identity)
	require.NoError(t, err)
	return addr, bump
}

func TestInitialize(t *testing.T) {
	ctx := context.Background()
	rules := genesis.NewDefaultRules()
	deposit := rules.GetStorageDeposit(storage.CounterAccountSize)

	actor := newActor(t)
	counterAddr, bump := mustDerive(t, actor)

	fundedStore := func(balance uint64) *chaintest.InMemoryStore {
		store := chaintest.NewInMemoryStore()
		if balance > 0 {
			require.NoError(t, storage.SetBalance(ctx, store, actor, balance))
		}
		return store
	}

	occupiedStore := fundedStore(10 * deposit)
	require.NoError(t, storage.SetCounter(ctx, occupiedStore, counterAddr, &storage.CounterAccount{
		Authority: actor,
		Count:     3,
		Bump:      bump,
	}))

	tests := []chaintest.ActionTest{
		{
			Name:        "NoDeposit",
			Action:      &Initialize{},
			Rules:       rules,
			State:       fundedStore(deposit - 1),
			Actor:       actor,
			ExpectedErr: storage.ErrInsufficientBalance,
		},
		{
			Name:        "AlreadyExists",
			Action:      &Initialize{},
			Rules:       rules,
			State:       occupiedStore,
			Actor:       actor,
			ExpectedErr: ErrCounterExists,
		},
		{
			Name:   "FreshCounter",
			Action: &Initialize{},
			Rules:  rules,
			State:  fundedStore(deposit + 5),
			Actor:  actor,
			ExpectedOutput: &InitializeResult{
				Counter: counterAddr,
				Count:   0,
				Bump:    bump,
				Deposit: deposit,
			},
			Assertion: func(ctx context.Context, t *testing.T, mu state.Mutable) {
				account, err := storage.GetCounter(ctx, mu, counterAddr)
				require.NoError(t, err)
				require.Equal(t, actor, account.Authority)
				require.Zero(t, account.Count)
				require.Equal(t, bump, account.Bump)

				// deposit was debited
				bal, err := storage.GetBalance(ctx, mu, actor)
				require.NoError(t, err)
				require.Equal(t, uint64(5), bal)
			},
		},
	}

	for _, tt := range tests {
		tt.Run(ctx, t)
	}
}

func TestInitializeAfterClose(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	rules := genesis.NewDefaultRules()
	deposit := rules.GetStorageDeposit(storage.CounterAccountSize)

	actor := newActor(t)
	counterAddr, bump := mustDerive(t, actor)

	store := chaintest.NewInMemoryStore()
	require.NoError(storage.SetBalance(ctx, store, actor, deposit))

	// create, close, create again at the same address
	for cycle := 0; cycle < 3; cycle++ {
		out, err := (&Initialize{}).Execute(ctx, rules, store, 0, actor, ids.Empty)
		require.NoError(err)
		require.Equal(&InitializeResult{Counter: counterAddr, Bump: bump, Deposit: deposit}, out)

		raw, err := store.GetValue(ctx, storage.CounterKey(counterAddr))
		require.NoError(err)
		require.Len(raw, storage.CounterAccountSize)

		_, err = (&Close{}).Execute(ctx, rules, store, 0, actor, ids.Empty)
		require.NoError(err)
	}

	bal, err := storage.GetBalance(ctx, store, actor)
	require.NoError(err)
	require.Equal(deposit, bal)
}

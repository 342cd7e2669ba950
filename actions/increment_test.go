// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/MuhKar1/Counter-dApp/chain/chaintest"
	"github.com/MuhKar1/Counter-dApp/consts"
	"github.com/MuhKar1/Counter-dApp/genesis"
	"github.com/MuhKar1/Counter-dApp/state"
	"github.com/MuhKar1/Counter-dApp/storage"
)

func TestIncrement(t *testing.T) {
	ctx := context.Background()
	rules := genesis.NewDefaultRules()

	actor := newActor(t)
	intruder := newActor(t)
	counterAddr, bump := mustDerive(t, actor)

	storeWithCount := func(count uint64) *chaintest.InMemoryStore {
		store := chaintest.NewInMemoryStore()
		require.NoError(t, storage.SetCounter(ctx, store, counterAddr, &storage.CounterAccount{
			Authority: actor,
			Count:     count,
			Bump:      bump,
		}))
		return store
	}

	tests := []chaintest.ActionTest{
		{
			Name:        "MissingCounter",
			Action:      &Increment{},
			Rules:       rules,
			State:       chaintest.NewInMemoryStore(),
			Actor:       actor,
			ExpectedErr: database.ErrNotFound,
		},
		{
			Name:        "WrongAuthority",
			Action:      &Increment{Counter: counterAddr},
			Rules:       rules,
			State:       storeWithCount(7),
			Actor:       intruder,
			ExpectedErr: ErrUnauthorized,
		},
		{
			Name:        "AtMax",
			Action:      &Increment{},
			Rules:       rules,
			State:       storeWithCount(consts.MaxUint64),
			Actor:       actor,
			ExpectedErr: ErrCounterOverflow,
			Assertion: func(ctx context.Context, t *testing.T, mu state.Mutable) {
				account, err := storage.GetCounter(ctx, mu, counterAddr)
				require.NoError(t, err)
				require.Equal(t, consts.MaxUint64, account.Count)
			},
		},
		{
			Name:   "Simple",
			Action: &Increment{},
			Rules:  rules,
			State:  storeWithCount(7),
			Actor:  actor,
			ExpectedOutput: &UpdateResult{
				Counter:       counterAddr,
				PreviousCount: 7,
				NewCount:      8,
			},
			Assertion: func(ctx context.Context, t *testing.T, mu state.Mutable) {
				account, err := storage.GetCounter(ctx, mu, counterAddr)
				require.NoError(t, err)
				require.Equal(t, uint64(8), account.Count)
				require.Equal(t, actor, account.Authority)
				require.Equal(t, bump, account.Bump)
			},
		},
		{
			Name:   "ExplicitTarget",
			Action: &Increment{Counter: counterAddr},
			Rules:  rules,
			State:  storeWithCount(0),
			Actor:  actor,
			ExpectedOutput: &UpdateResult{
				Counter:       counterAddr,
				PreviousCount: 0,
				NewCount:      1,
			},
		},
	}

	for _, tt := range tests {
		tt.Run(ctx, t)
	}
}

func TestIncrementSequence(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	rules := genesis.NewDefaultRules()

	actor := newActor(t)
	counterAddr, bump := mustDerive(t, actor)

	store := chaintest.NewInMemoryStore()
	require.NoError(storage.SetCounter(ctx, store, counterAddr, &storage.CounterAccount{
		Authority: actor,
		Bump:      bump,
	}))

	for n := uint64(1); n <= 25; n++ {
		_, err := (&Increment{}).Execute(ctx, rules, store, 0, actor, ids.Empty)
		require.NoError(err)
		account, err := storage.GetCounter(ctx, store, counterAddr)
		require.NoError(err)
		require.Equal(n, account.Count)
	}
}

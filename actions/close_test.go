// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/stretchr/testify/require"

	"github.com/MuhKar1/Counter-dApp/chain/chaintest"
	"github.com/MuhKar1/Counter-dApp/genesis"
	"github.com/MuhKar1/Counter-dApp/state"
	"github.com/MuhKar1/Counter-dApp/storage"
)

func TestClose(t *testing.T) {
	ctx := context.Background()
	rules := genesis.NewDefaultRules()
	refund := rules.GetStorageDeposit(storage.CounterAccountSize)

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
			Action:      &Close{},
			Rules:       rules,
			State:       chaintest.NewInMemoryStore(),
			Actor:       actor,
			ExpectedErr: database.ErrNotFound,
		},
		{
			Name:        "WrongAuthority",
			Action:      &Close{Counter: counterAddr},
			Rules:       rules,
			State:       storeWithCount(4),
			Actor:       intruder,
			ExpectedErr: ErrUnauthorized,
			Assertion: func(ctx context.Context, t *testing.T, mu state.Mutable) {
				account, err := storage.GetCounter(ctx, mu, counterAddr)
				require.NoError(t, err)
				require.Equal(t, uint64(4), account.Count)
			},
		},
		{
			Name:   "RefundsAuthority",
			Action: &Close{},
			Rules:  rules,
			State:  storeWithCount(12),
			Actor:  actor,
			ExpectedOutput: &CloseResult{
				Counter:    counterAddr,
				FinalCount: 12,
				Refund:     refund,
			},
			Assertion: func(ctx context.Context, t *testing.T, mu state.Mutable) {
				_, err := storage.GetCounter(ctx, mu, counterAddr)
				require.ErrorIs(t, err, database.ErrNotFound)

				bal, err := storage.GetBalance(ctx, mu, actor)
				require.NoError(t, err)
				require.Equal(t, refund, bal)
			},
		},
		{
			Name:   "ExplicitTarget",
			Action: &Close{Counter: counterAddr},
			Rules:  rules,
			State:  storeWithCount(0),
			Actor:  actor,
			ExpectedOutput: &CloseResult{
				Counter:    counterAddr,
				FinalCount: 0,
				Refund:     refund,
			},
		},
	}

	for _, tt := range tests {
		tt.Run(ctx, t)
	}
}

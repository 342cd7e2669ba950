// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MuhKar1/Counter-dApp/chain/chaintest"
	"github.com/MuhKar1/Counter-dApp/codec"
	"github.com/MuhKar1/Counter-dApp/consts"
	"github.com/MuhKar1/Counter-dApp/genesis"
	"github.com/MuhKar1/Counter-dApp/storage"
)

func TestGenesisDefaults(t *testing.T) {
	require := require.New(t)

	g, err := genesis.New(nil)
	require.NoError(err)
	require.Equal(consts.ID, g.Rules.GetChainID())
	require.Empty(g.CustomAllocation)
}

func TestGenesisParseAndInitialize(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	addr := codec.CreateAddress(consts.ED25519ID, consts.ID)
	raw := []byte(`{
		"customAllocation": [
			{"address": "` + addr.String() + `", "balance": 42}
		],
		"initialRules": {
			"storageDepositPerByte": 7
		}
	}`)
	g, err := genesis.New(raw)
	require.NoError(err)
	require.Len(g.CustomAllocation, 1)
	require.Equal(uint64(7), g.Rules.GetStorageDeposit(1))

	store := chaintest.NewInMemoryStore()
	require.NoError(g.InitializeState(ctx, store))
	bal, err := storage.GetBalance(ctx, store, addr)
	require.NoError(err)
	require.Equal(uint64(42), bal)
}

func TestGenesisRejectsBadJSON(t *testing.T) {
	_, err := genesis.New([]byte("{"))
	require.Error(t, err)
}

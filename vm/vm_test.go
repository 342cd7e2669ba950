// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/stretchr/testify/require"

	"github.com/MuhKar1/Counter-dApp/actions"
	"github.com/MuhKar1/Counter-dApp/auth"
	"github.com/MuhKar1/Counter-dApp/chain"
	"github.com/MuhKar1/Counter-dApp/codec"
	"github.com/MuhKar1/Counter-dApp/crypto/ed25519"
	"github.com/MuhKar1/Counter-dApp/genesis"
	"github.com/MuhKar1/Counter-dApp/storage"
)

const testNow = int64(1_000_000)

type testWallet struct {
	factory *auth.ED25519Factory
	addr    codec.Address
}

func newTestWallet(t *testing.T) *testWallet {
	t.Helper()
	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(t, err)
	factory := auth.NewED25519Factory(priv)
	return &testWallet{factory: factory, addr: factory.Address()}
}

func newTestVM(t *testing.T, wallets ...*testWallet) *VM {
	t.Helper()
	gen := genesis.Default()
	for _, w := range wallets {
		gen.CustomAllocation = append(gen.CustomAllocation, &genesis.CustomAllocation{
			Address: w.addr,
			Balance: 10_000_000,
		})
	}
	v, err := New(context.Background(), nil, gen, nil)
	require.NoError(t, err)
	v.now = func() int64 { return testNow }
	t.Cleanup(func() { require.NoError(t, v.Close()) })
	return v
}

func (w *testWallet) submit(ctx context.Context, t *testing.T, v *VM, acts ...chain.Action) ([]codec.Typed, error) {
	t.Helper()
	actionRegistry, authRegistry := v.Registries()
	tx := chain.NewTx(&chain.Base{
		Timestamp: testNow + 30_000,
		ChainID:   v.Rules().GetChainID(),
		MaxFee:    1_000,
	}, acts)
	signed, err := tx.Sign(w.factory, actionRegistry, authRegistry)
	require.NoError(t, err)
	return v.Submit(ctx, signed)
}

// The full lifecycle: create, bump it twice, reject a foreign decrement,
// decrement, close, and observe the record gone.
func TestVMLifecycle(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	alice := newTestWallet(t)
	bob := newTestWallet(t)
	v := newTestVM(t, alice, bob)
	deposit := v.Rules().GetStorageDeposit(storage.CounterAccountSize)

	// no counter yet
	_, _, err := v.ReadCounter(ctx, alice.addr)
	require.ErrorIs(err, database.ErrNotFound)

	outputs, err := alice.submit(ctx, t, v, &actions.Initialize{})
	require.NoError(err)
	require.Len(outputs, 1)
	initOut := outputs[0].(*actions.InitializeResult)
	require.Zero(initOut.Count)
	require.Equal(deposit, initOut.Deposit)

	counterAddr, account, err := v.ReadCounter(ctx, alice.addr)
	require.NoError(err)
	require.Equal(initOut.Counter, counterAddr)
	require.Equal(alice.addr, account.Authority)
	require.Zero(account.Count)

	bal, err := v.ReadBalance(ctx, alice.addr)
	require.NoError(err)
	require.Equal(uint64(10_000_000)-deposit, bal)

	// two increments in one transaction
	outputs, err = alice.submit(ctx, t, v, &actions.Increment{}, &actions.Increment{})
	require.NoError(err)
	require.Len(outputs, 2)
	require.Equal(uint64(2), outputs[1].(*actions.UpdateResult).NewCount)

	// bob cannot touch alice's counter
	_, err = bob.submit(ctx, t, v, &actions.Decrement{Counter: counterAddr})
	require.ErrorIs(err, actions.ErrUnauthorized)

	_, account, err = v.ReadCounter(ctx, alice.addr)
	require.NoError(err)
	require.Equal(uint64(2), account.Count)

	outputs, err = alice.submit(ctx, t, v, &actions.Decrement{})
	require.NoError(err)
	require.Equal(uint64(1), outputs[0].(*actions.UpdateResult).NewCount)

	outputs, err = alice.submit(ctx, t, v, &actions.Close{})
	require.NoError(err)
	closeOut := outputs[0].(*actions.CloseResult)
	require.Equal(uint64(1), closeOut.FinalCount)
	require.Equal(deposit, closeOut.Refund)

	_, _, err = v.ReadCounter(ctx, alice.addr)
	require.ErrorIs(err, database.ErrNotFound)

	// deposit came back
	bal, err = v.ReadBalance(ctx, alice.addr)
	require.NoError(err)
	require.Equal(uint64(10_000_000), bal)
}

// A transaction whose second action fails must leave no trace of its first.
func TestVMTransactionAtomicity(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	alice := newTestWallet(t)
	v := newTestVM(t, alice)

	_, err := alice.submit(ctx, t, v, &actions.Initialize{})
	require.NoError(err)

	// increment succeeds, decrement-below-zero fails, so neither lands
	_, err = alice.submit(ctx, t, v,
		&actions.Increment{},
		&actions.Decrement{},
		&actions.Decrement{},
	)
	require.ErrorIs(err, actions.ErrCounterUnderflow)

	_, account, err := v.ReadCounter(ctx, alice.addr)
	require.NoError(err)
	require.Zero(account.Count)
}

func TestVMSubmitRaw(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	alice := newTestWallet(t)
	v := newTestVM(t, alice)
	actionRegistry, authRegistry := v.Registries()

	tx := chain.NewTx(&chain.Base{
		Timestamp: testNow + 30_000,
		ChainID:   v.Rules().GetChainID(),
		MaxFee:    1_000,
	}, []chain.Action{&actions.Initialize{}})
	signed, err := tx.Sign(alice.factory, actionRegistry, authRegistry)
	require.NoError(err)

	// tampered signature fails verification and nothing commits
	tampered := make([]byte, len(signed.Bytes()))
	copy(tampered, signed.Bytes())
	tampered[len(tampered)-1] ^= 0x01
	_, _, err = v.SubmitTx(ctx, tampered)
	require.ErrorIs(err, auth.ErrInvalidSignature)
	_, _, err = v.ReadCounter(ctx, alice.addr)
	require.ErrorIs(err, database.ErrNotFound)

	// the untouched bytes go through
	txID, outputs, err := v.SubmitTx(ctx, signed.Bytes())
	require.NoError(err)
	require.Equal(signed.ID(), txID)
	require.Len(outputs, 1)

	// garbage does not parse
	_, _, err = v.SubmitTx(ctx, []byte{0x01, 0x02, 0x03})
	require.Error(err)

	// trailing bytes are rejected
	_, _, err = v.SubmitTx(ctx, append(signed.Bytes(), 0x00))
	require.ErrorIs(err, ErrExtraBytes)
}

func TestVMRejectsExpired(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	alice := newTestWallet(t)
	v := newTestVM(t, alice)
	actionRegistry, authRegistry := v.Registries()

	tx := chain.NewTx(&chain.Base{
		Timestamp: testNow - 30_000,
		ChainID:   v.Rules().GetChainID(),
		MaxFee:    1_000,
	}, []chain.Action{&actions.Initialize{}})
	signed, err := tx.Sign(alice.factory, actionRegistry, authRegistry)
	require.NoError(err)

	_, err = v.Submit(ctx, signed)
	require.ErrorIs(err, chain.ErrTimestampExpired)
}

// Initialize without funds must not create the record.
func TestVMUnfundedActor(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	alice := newTestWallet(t)
	pauper := newTestWallet(t)
	v := newTestVM(t, alice) // pauper gets no allocation

	_, err := pauper.submit(ctx, t, v, &actions.Initialize{})
	require.ErrorIs(err, storage.ErrInsufficientBalance)
	_, _, err = v.ReadCounter(ctx, pauper.addr)
	require.ErrorIs(err, database.ErrNotFound)
}

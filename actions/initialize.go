// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"errors"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"

	"github.com/MuhKar1/Counter-dApp/chain"
	"github.com/MuhKar1/Counter-dApp/codec"
	"github.com/MuhKar1/Counter-dApp/consts"
	"github.com/MuhKar1/Counter-dApp/pda"
	"github.com/MuhKar1/Counter-dApp/state"
	"github.com/MuhKar1/Counter-dApp/storage"
)

const InitializeComputeUnits = 2

var _ chain.Action = (*Initialize)(nil)

// Initialize creates the actor's counter at its derived address with
// count 0 and locks the storage deposit. There is nothing to configure:
// the record's address and authority both follow from whoever signed.
type Initialize struct{}

func (*Initialize) GetTypeID() uint8 {
	return consts.InitializeID
}

func (*Initialize) StateKeys(actor codec.Address, _ ids.ID) state.Keys {
	addr, _, err := pda.Derive([]byte(consts.Namespace), actor)
	if err != nil {
		return state.Keys{}
	}
	return state.Keys{
		string(storage.CounterKey(addr)):  state.All,
		string(storage.BalanceKey(actor)): state.All,
	}
}

func (*Initialize) Execute(
	ctx context.Context,
	r chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) (codec.Typed, error) {
	addr, bump, err := pda.Derive([]byte(consts.Namespace), actor)
	if err != nil {
		return nil, err
	}

	// The address must be vacant. Anything readable there, even a record
	// we cannot parse, means it is occupied.
	if _, err := storage.GetCounter(ctx, mu, addr); err == nil || errors.Is(err, storage.ErrInvalidRecord) {
		return nil, ErrCounterExists
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	deposit := r.GetStorageDeposit(storage.CounterAccountSize)
	if _, err := storage.SubBalance(ctx, mu, actor, deposit); err != nil {
		return nil, err
	}
	account := &storage.CounterAccount{
		Authority: actor,
		Count:     0,
		Bump:      bump,
	}
	if err := storage.SetCounter(ctx, mu, addr, account); err != nil {
		return nil, err
	}

	return &InitializeResult{
		Counter: addr,
		Count:   0,
		Bump:    bump,
		Deposit: deposit,
	}, nil
}

func (*Initialize) ComputeUnits(chain.Rules) uint64 {
	return InitializeComputeUnits
}

func (*Initialize) ValidRange(chain.Rules) (int64, int64) {
	// Returning -1, -1 means that the action is always valid.
	return -1, -1
}

func (*Initialize) Size() int {
	return 0
}

func (*Initialize) Marshal(*codec.Packer) {}

func UnmarshalInitialize(p *codec.Packer) (chain.Action, error) {
	return &Initialize{}, p.Err()
}

var _ codec.Typed = (*InitializeResult)(nil)

type InitializeResult struct {
	Counter codec.Address `json:"counter"`
	Count   uint64        `json:"count"`
	Bump    uint8         `json:"bump"`
	Deposit uint64        `json:"deposit"`
}

func (*InitializeResult) GetTypeID() uint8 {
	return consts.InitializeID // Common practice is to use the action ID
}

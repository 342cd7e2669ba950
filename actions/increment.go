// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/MuhKar1/Counter-dApp/chain"
	"github.com/MuhKar1/Counter-dApp/codec"
	"github.com/MuhKar1/Counter-dApp/consts"
	"github.com/MuhKar1/Counter-dApp/state"
	"github.com/MuhKar1/Counter-dApp/storage"
)

const IncrementComputeUnits = 1

var _ chain.Action = (*Increment)(nil)

// Increment adds one to the counter at [Counter]. Only the stored
// authority may mutate the record; the bound check runs before any write
// so a rejected increment leaves the count untouched.
type Increment struct {
	// Counter is the derived address of the record to mutate. When empty,
	// the actor's own counter address is used.
	Counter codec.Address `json:"counter"`
}

func (*Increment) GetTypeID() uint8 {
	return consts.IncrementID
}

func (i *Increment) StateKeys(actor codec.Address, _ ids.ID) state.Keys {
	addr, err := resolveCounter(i.Counter, actor)
	if err != nil {
		return state.Keys{}
	}
	return state.Keys{
		string(storage.CounterKey(addr)): state.Read | state.Write,
	}
}

func (i *Increment) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) (codec.Typed, error) {
	addr, err := resolveCounter(i.Counter, actor)
	if err != nil {
		return nil, err
	}
	account, err := storage.GetCounter(ctx, mu, addr)
	if err != nil {
		return nil, err
	}
	if account.Authority != actor {
		return nil, ErrUnauthorized
	}
	if account.Count == consts.MaxUint64 {
		return nil, ErrCounterOverflow
	}

	previous := account.Count
	account.Count++
	if err := storage.SetCounter(ctx, mu, addr, account); err != nil {
		return nil, err
	}

	return &UpdateResult{
		Counter:       addr,
		PreviousCount: previous,
		NewCount:      account.Count,
	}, nil
}

func (*Increment) ComputeUnits(chain.Rules) uint64 {
	return IncrementComputeUnits
}

func (*Increment) ValidRange(chain.Rules) (int64, int64) {
	// Returning -1, -1 means that the action is always valid.
	return -1, -1
}

func (*Increment) Size() int {
	return codec.AddressLen
}

func (i *Increment) Marshal(p *codec.Packer) {
	p.PackAddress(i.Counter)
}

func UnmarshalIncrement(p *codec.Packer) (chain.Action, error) {
	var i Increment
	p.UnpackAddress(false, &i.Counter)
	return &i, p.Err()
}

var _ codec.Typed = (*UpdateResult)(nil)

// UpdateResult is shared by Increment and Decrement: both report the
// counter address and the value before and after the mutation.
type UpdateResult struct {
	Counter       codec.Address `json:"counter"`
	PreviousCount uint64        `json:"previousCount"`
	NewCount      uint64        `json:"newCount"`
}

func (*UpdateResult) GetTypeID() uint8 {
	return consts.IncrementID
}

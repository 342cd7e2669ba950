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

const DecrementComputeUnits = 1

var _ chain.Action = (*Decrement)(nil)

// Decrement subtracts one from the counter at [Counter]. A counter at zero
// is rejected rather than saturated.
type Decrement struct {
	// Counter is the derived address of the record to mutate. When empty,
	// the actor's own counter address is used.
	Counter codec.Address `json:"counter"`
}

func (*Decrement) GetTypeID() uint8 {
	return consts.DecrementID
}

func (d *Decrement) StateKeys(actor codec.Address, _ ids.ID) state.Keys {
	addr, err := resolveCounter(d.Counter, actor)
	if err != nil {
		return state.Keys{}
	}
	return state.Keys{
		string(storage.CounterKey(addr)): state.Read | state.Write,
	}
}

func (d *Decrement) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) (codec.Typed, error) {
	addr, err := resolveCounter(d.Counter, actor)
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
	if account.Count == 0 {
		return nil, ErrCounterUnderflow
	}

	previous := account.Count
	account.Count--
	if err := storage.SetCounter(ctx, mu, addr, account); err != nil {
		return nil, err
	}

	return &UpdateResult{
		Counter:       addr,
		PreviousCount: previous,
		NewCount:      account.Count,
	}, nil
}

func (*Decrement) ComputeUnits(chain.Rules) uint64 {
	return DecrementComputeUnits
}

func (*Decrement) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}

func (*Decrement) Size() int {
	return codec.AddressLen
}

func (d *Decrement) Marshal(p *codec.Packer) {
	p.PackAddress(d.Counter)
}

func UnmarshalDecrement(p *codec.Packer) (chain.Action, error) {
	var d Decrement
	p.UnpackAddress(false, &d.Counter)
	return &d, p.Err()
}

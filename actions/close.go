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

const CloseComputeUnits = 2

var _ chain.Action = (*Close)(nil)

// Close removes the counter at [Counter] and returns the storage deposit
// to the authority. The address becomes derivable-but-vacant again; a
// later Initialize recreates it from scratch.
type Close struct {
	// Counter is the derived address of the record to remove. When empty,
	// the actor's own counter address is used.
	Counter codec.Address `json:"counter"`
}

func (*Close) GetTypeID() uint8 {
	return consts.CloseID
}

func (c *Close) StateKeys(actor codec.Address, _ ids.ID) state.Keys {
	addr, err := resolveCounter(c.Counter, actor)
	if err != nil {
		return state.Keys{}
	}
	return state.Keys{
		string(storage.CounterKey(addr)):  state.Read | state.Write,
		string(storage.BalanceKey(actor)): state.All,
	}
}

func (c *Close) Execute(
	ctx context.Context,
	r chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) (codec.Typed, error) {
	addr, err := resolveCounter(c.Counter, actor)
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

	if err := storage.RemoveCounter(ctx, mu, addr); err != nil {
		return nil, err
	}
	refund := r.GetStorageDeposit(storage.CounterAccountSize)
	if _, err := storage.AddBalance(ctx, mu, account.Authority, refund); err != nil {
		return nil, err
	}

	return &CloseResult{
		Counter:    addr,
		FinalCount: account.Count,
		Refund:     refund,
	}, nil
}

func (*Close) ComputeUnits(chain.Rules) uint64 {
	return CloseComputeUnits
}

func (*Close) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}

func (*Close) Size() int {
	return codec.AddressLen
}

func (c *Close) Marshal(p *codec.Packer) {
	p.PackAddress(c.Counter)
}

func UnmarshalClose(p *codec.Packer) (chain.Action, error) {
	var c Close
	p.UnpackAddress(false, &c.Counter)
	return &c, p.Err()
}

var _ codec.Typed = (*CloseResult)(nil)

type CloseResult struct {
	Counter    codec.Address `json:"counter"`
	FinalCount uint64        `json:"finalCount"`
	Refund     uint64        `json:"refund"`
}

func (*CloseResult) GetTypeID() uint8 {
	return consts.CloseID
}

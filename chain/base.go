// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/MuhKar1/Counter-dApp/codec"
	"github.com/MuhKar1/Counter-dApp/consts"
)

const BaseSize = consts.Uint64Len + consts.IDLen + consts.Uint64Len

type Base struct {
	// Timestamp is the expiry of the transaction (in ms). A transaction
	// cannot be included once this time has passed.
	Timestamp int64 `json:"timestamp"`

	// ChainID protects against replay attacks on different chains.
	ChainID ids.ID `json:"chainId"`

	// MaxFee is the max fee the sponsor will pay, on top of any storage
	// deposit an action locks.
	MaxFee uint64 `json:"maxFee"`
}

func (b *Base) Execute(r Rules, timestamp int64) error {
	if b.ChainID != r.GetChainID() {
		return fmt.Errorf("%w: expected=%s actual=%s", ErrInvalidChainID, r.GetChainID(), b.ChainID)
	}
	switch {
	case b.Timestamp%consts.MillisecondsPerSecond != 0:
		return fmt.Errorf("%w: timestamp=%d", ErrMisalignedTime, b.Timestamp)
	case b.Timestamp < timestamp:
		return fmt.Errorf("%w: timestamp=%d now=%d", ErrTimestampExpired, b.Timestamp, timestamp)
	case b.Timestamp > timestamp+r.GetValidityWindow():
		return fmt.Errorf("%w: timestamp=%d now=%d", ErrTimestampTooFarInFuture, b.Timestamp, timestamp)
	}
	return nil
}

func (*Base) Size() int {
	return BaseSize
}

func (b *Base) Marshal(p *codec.Packer) {
	p.PackInt64(b.Timestamp)
	p.PackID(b.ChainID)
	p.PackUint64(b.MaxFee)
}

func UnmarshalBase(p *codec.Packer) (*Base, error) {
	var base Base
	base.Timestamp = p.UnpackInt64(true)
	p.UnpackID(true, &base.ChainID)
	base.MaxFee = p.UnpackUint64(false)
	return &base, p.Err()
}

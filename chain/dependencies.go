// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/MuhKar1/Counter-dApp/codec"
	"github.com/MuhKar1/Counter-dApp/state"
)

type (
	ActionRegistry = codec.TypeParser[Action]
	AuthRegistry   = codec.TypeParser[Auth]
)

type Rules interface {
	GetChainID() ids.ID

	// GetValidityWindow is how long (in milliseconds) a transaction remains
	// submittable after its timestamp.
	GetValidityWindow() int64

	GetMaxActionsPerTx() uint8

	// GetStorageDeposit returns the funding (in native units) that must be
	// locked to keep a record of [numBytes] alive. It is returned to the
	// authority when the record is closed.
	GetStorageDeposit(numBytes uint64) uint64
}

type Action interface {
	codec.Typed

	// StateKeys is a full enumeration of all database keys that could be
	// touched during execution of an action. This is used to prefetch
	// state and will be used to parallelize execution (making an execution
	// tree is trivial).
	//
	// All keys specified must be suffixed with the number of chunks that
	// could ever be read from that key (formatted as a big-endian uint16).
	StateKeys(actor codec.Address, actionID ids.ID) state.Keys

	// Execute actually runs the action. Any state changes that the action
	// performs through [mu] are buffered until the entire transaction
	// succeeds: returning an error discards everything the action wrote.
	Execute(
		ctx context.Context,
		r Rules,
		mu state.Mutable,
		timestamp int64,
		actor codec.Address,
		actionID ids.ID,
	) (codec.Typed, error)

	// ComputeUnits is the amount of compute required to call [Execute].
	ComputeUnits(Rules) uint64

	// ValidRange is the timestamp range (in ms) that this action is
	// considered valid. -1 means no start/end.
	ValidRange(Rules) (start int64, end int64)

	// Size is the number of bytes it takes to represent this action.
	Size() int

	Marshal(p *codec.Packer)
}

type Auth interface {
	codec.Typed

	// Actor is the address whose authority this auth proves. It is the
	// identity every ownership check inside actions compares against.
	Actor() codec.Address

	// Sponsor is the address that pays storage deposits and fees. For
	// single-signer auth it is the same as Actor.
	Sponsor() codec.Address

	// Verify checks that the auth is a valid signature of [msg].
	Verify(ctx context.Context, msg []byte) error

	Size() int

	Marshal(p *codec.Packer)
}

// StateManager provides the VM-specific keys a transaction implicitly
// touches on behalf of its sponsor (the balance record deposits are debited
// from).
type StateManager interface {
	SponsorStateKeys(addr codec.Address) state.Keys
}

type AuthFactory interface {
	// Sign produces an [Auth] over [msg], typically a transaction digest.
	Sign(msg []byte) (Auth, error)

	Address() codec.Address
}

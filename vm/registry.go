// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"github.com/ava-labs/avalanchego/utils/wrappers"

	"github.com/MuhKar1/Counter-dApp/actions"
	"github.com/MuhKar1/Counter-dApp/auth"
	"github.com/MuhKar1/Counter-dApp/chain"
	"github.com/MuhKar1/Counter-dApp/codec"
)

// NewRegistries wires every action and auth type the host understands.
// TypeIDs are fixed in consts; registration order does not matter.
func NewRegistries() (*chain.ActionRegistry, *chain.AuthRegistry, error) {
	actionRegistry := codec.NewTypeParser[chain.Action]()
	authRegistry := codec.NewTypeParser[chain.Auth]()

	errs := &wrappers.Errs{}
	errs.Add(
		actionRegistry.Register(&actions.Initialize{}, actions.UnmarshalInitialize),
		actionRegistry.Register(&actions.Increment{}, actions.UnmarshalIncrement),
		actionRegistry.Register(&actions.Decrement{}, actions.UnmarshalDecrement),
		actionRegistry.Register(&actions.Close{}, actions.UnmarshalClose),

		authRegistry.Register(&auth.ED25519{}, auth.UnmarshalED25519),
	)
	if errs.Errored() {
		return nil, nil, errs.Err
	}
	return actionRegistry, authRegistry, nil
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"github.com/MuhKar1/Counter-dApp/codec"
	"github.com/MuhKar1/Counter-dApp/consts"
	"github.com/MuhKar1/Counter-dApp/pda"
)

// resolveCounter returns the record address an action targets. An action
// built without an explicit target operates on the actor's own counter.
func resolveCounter(counter codec.Address, actor codec.Address) (codec.Address, error) {
	if counter != codec.EmptyAddress {
		return counter, nil
	}
	addr, _, err := pda.Derive([]byte(consts.Namespace), actor)
	return addr, err
}

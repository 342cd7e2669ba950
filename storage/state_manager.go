// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"github.com/MuhKar1/Counter-dApp/chain"
	"github.com/MuhKar1/Counter-dApp/codec"
	"github.com/MuhKar1/Counter-dApp/state"
)

var _ chain.StateManager = (*StateManager)(nil)

type StateManager struct{}

// SponsorStateKeys declares the sponsor's balance record, which every
// transaction may debit (deposits) or credit (refunds).
func (*StateManager) SponsorStateKeys(addr codec.Address) state.Keys {
	return state.Keys{
		string(BalanceKey(addr)): state.All,
	}
}

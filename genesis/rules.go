// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/MuhKar1/Counter-dApp/chain"
	"github.com/MuhKar1/Counter-dApp/consts"
)

var _ chain.Rules = (*Rules)(nil)

type Rules struct {
	ChainID ids.ID `json:"chainId"`

	// ValidityWindow is how long (in ms) after its timestamp a transaction
	// stays submittable.
	ValidityWindow int64 `json:"validityWindow"`

	MaxActionsPerTx uint8 `json:"maxActionsPerTx"`

	// StorageDepositPerByte is the funding locked per record byte to keep
	// it alive; refunded in full when the record is closed.
	StorageDepositPerByte uint64 `json:"storageDepositPerByte"`
}

func NewDefaultRules() *Rules {
	return &Rules{
		ChainID:               consts.ID,
		ValidityWindow:        60 * consts.MillisecondsPerSecond,
		MaxActionsPerTx:       4,
		StorageDepositPerByte: 1_000,
	}
}

func (r *Rules) GetChainID() ids.ID {
	return r.ChainID
}

func (r *Rules) GetValidityWindow() int64 {
	return r.ValidityWindow
}

func (r *Rules) GetMaxActionsPerTx() uint8 {
	return r.MaxActionsPerTx
}

func (r *Rules) GetStorageDeposit(numBytes uint64) uint64 {
	return r.StorageDepositPerByte * numBytes
}

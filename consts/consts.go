// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

import (
	"math"

	"github.com/ava-labs/avalanchego/ids"
)

const (
	HRP      = "counter"
	Name     = "counterd"
	Symbol   = "CNT"
	Decimals = 9

	// Namespace is the seed prefix for every counter account derivation.
	Namespace = "counter"

	MaxUint8  = ^uint8(0)
	MaxUint16 = ^uint16(0)
	MaxUint64 = ^uint64(0)
	MaxInt    = math.MaxInt

	ByteLen   = 1
	Uint16Len = 2
	Uint64Len = 8
	IDLen     = ids.IDLen

	// NetworkSizeLimit bounds the size of any serialized transaction.
	NetworkSizeLimit = 1 << 18

	MillisecondsPerSecond = 1000
)

// ID identifies the deployed counter program. Every derived account address
// commits to it, so records written by a different program can never be
// mistaken for ours.
var ID ids.ID

func init() {
	b := make([]byte, ids.IDLen)
	copy(b, []byte(Name))
	programID, err := ids.ToID(b)
	if err != nil {
		panic(err)
	}
	ID = programID
}

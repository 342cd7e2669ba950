// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "errors"

var (
	ErrInvalidChainID          = errors.New("invalid chain ID")
	ErrMisalignedTime          = errors.New("misaligned time")
	ErrTimestampExpired        = errors.New("timestamp expired")
	ErrTimestampTooFarInFuture = errors.New("timestamp too far in future")

	ErrNoActions      = errors.New("no actions")
	ErrTooManyActions = errors.New("too many actions")
	ErrAuthNotSet     = errors.New("auth not set")
)

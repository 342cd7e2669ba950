// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import "errors"

var (
	ErrCounterExists    = errors.New("counter already exists")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrCounterOverflow  = errors.New("counter would overflow")
	ErrCounterUnderflow = errors.New("counter would underflow")
)

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "errors"

var (
	ErrDuplicateItem  = errors.New("duplicate item")
	ErrUnknownType    = errors.New("unknown type")
	ErrFieldEmpty     = errors.New("field is empty")
	ErrInvalidAddress = errors.New("invalid address")
)

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import "errors"

var ErrInvalidKeyOrPermission = errors.New("invalid key or permission")

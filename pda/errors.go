// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pda

import "errors"

var ErrSeedsExhausted = errors.New("no off-curve address for seeds")

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MuhKar1/Counter-dApp/codec"
	"github.com/MuhKar1/Counter-dApp/state"
	"github.com/MuhKar1/Counter-dApp/storage"

	safemath "github.com/ava-labs/avalanchego/utils/math"
)

type CustomAllocation struct {
	Address codec.Address `json:"address"`
	Balance uint64        `json:"balance"`
}

type Genesis struct {
	CustomAllocation []*CustomAllocation `json:"customAllocation"`
	Rules            *Rules              `json:"initialRules"`
}

func Default() *Genesis {
	return &Genesis{
		Rules: NewDefaultRules(),
	}
}

func New(b []byte) (*Genesis, error) {
	g := Default()
	if len(b) > 0 {
		if err := json.Unmarshal(b, g); err != nil {
			return nil, err
		}
	}
	if g.Rules == nil {
		g.Rules = NewDefaultRules()
	}
	return g, nil
}

// InitializeState credits every allocation. Identities need a funded
// balance before they can lock the storage deposit for a counter.
func (g *Genesis) InitializeState(ctx context.Context, mu state.Mutable) error {
	supply := uint64(0)
	for _, alloc := range g.CustomAllocation {
		var err error
		supply, err = safemath.Add64(supply, alloc.Balance)
		if err != nil {
			return err
		}
		if _, err := storage.AddBalance(ctx, mu, alloc.Address, alloc.Balance); err != nil {
			return fmt.Errorf("%w: addr=%s, bal=%d", err, alloc.Address, alloc.Balance)
		}
	}
	return nil
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/maybe"

	"github.com/MuhKar1/Counter-dApp/state"
)

var _ state.Mutable = (*View)(nil)

// View buffers all reads and writes a transaction performs over some base
// state. Nothing reaches the base until Commit, so a failed transaction is
// discarded by dropping the view. Access outside the declared scope fails:
// the scope is what lets the host schedule conflicting transactions
// one-at-a-time per key.
type View struct {
	im    state.Immutable
	scope state.Keys

	pendingChangedKeys map[string]maybe.Maybe[[]byte]
}

func NewView(scope state.Keys, im state.Immutable) *View {
	return &View{
		im:                 im,
		scope:              scope,
		pendingChangedKeys: make(map[string]maybe.Maybe[[]byte], len(scope)),
	}
}

func (v *View) checkScope(key []byte, perm state.Permissions) error {
	if !v.scope[string(key)].Has(perm) {
		return ErrInvalidKeyOrPermission
	}
	return nil
}

func (v *View) GetValue(ctx context.Context, key []byte) ([]byte, error) {
	if err := v.checkScope(key, state.Read); err != nil {
		return nil, err
	}
	return v.getValue(ctx, key)
}

func (v *View) getValue(ctx context.Context, key []byte) ([]byte, error) {
	if val, ok := v.pendingChangedKeys[string(key)]; ok {
		if val.IsNothing() {
			return nil, database.ErrNotFound
		}
		return val.Value(), nil
	}
	return v.im.GetValue(ctx, key)
}

func (v *View) Insert(ctx context.Context, key []byte, value []byte) error {
	perm := state.Write
	if _, err := v.getValue(ctx, key); err == database.ErrNotFound {
		// Writing a key that does not exist yet requires Allocate.
		perm = state.Allocate | state.Write
	} else if err != nil {
		return err
	}
	if err := v.checkScope(key, perm); err != nil {
		return err
	}
	v.pendingChangedKeys[string(key)] = maybe.Some(value)
	return nil
}

func (v *View) Remove(ctx context.Context, key []byte) error {
	if err := v.checkScope(key, state.Write); err != nil {
		return err
	}
	if _, err := v.getValue(ctx, key); err == database.ErrNotFound {
		// Nothing to remove.
		return nil
	} else if err != nil {
		return err
	}
	v.pendingChangedKeys[string(key)] = maybe.Nothing[[]byte]()
	return nil
}

// PendingChanges returns the number of buffered mutations.
func (v *View) PendingChanges() int {
	return len(v.pendingChangedKeys)
}

// Commit applies all buffered mutations to [mu]. The caller must guarantee
// no conflicting writer runs concurrently; the VM holds its state lock
// across execute+commit for exactly this reason.
func (v *View) Commit(ctx context.Context, mu state.Mutable) error {
	for key, val := range v.pendingChangedKeys {
		if val.IsNothing() {
			if err := mu.Remove(ctx, []byte(key)); err != nil {
				return err
			}
			continue
		}
		if err := mu.Insert(ctx, []byte(key), val.Value()); err != nil {
			return err
		}
	}
	return nil
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/MuhKar1/Counter-dApp/codec"
	"github.com/MuhKar1/Counter-dApp/consts"
	"github.com/MuhKar1/Counter-dApp/state"
	"github.com/MuhKar1/Counter-dApp/utils"
)

type Transaction struct {
	Base *Base `json:"base"`

	Actions []Action `json:"actions"`
	Auth    Auth     `json:"auth"`

	digest    []byte
	bytes     []byte
	size      int
	id        ids.ID
	stateKeys state.Keys
}

func NewTx(base *Base, actions []Action) *Transaction {
	return &Transaction{
		Base:    base,
		Actions: actions,
	}
}

// Digest is the byte payload an [AuthFactory] signs: the base fields plus
// every action, without any auth. It is also exactly what the relay hands
// to a wallet as the "unsigned transaction".
func (t *Transaction) Digest() ([]byte, error) {
	if len(t.digest) > 0 {
		return t.digest, nil
	}
	size := t.Base.Size() + consts.ByteLen
	for _, action := range t.Actions {
		size += consts.ByteLen + action.Size()
	}
	p := codec.NewWriter(size, consts.NetworkSizeLimit)
	t.Base.Marshal(p)
	p.PackByte(uint8(len(t.Actions)))
	for _, action := range t.Actions {
		p.PackByte(action.GetTypeID())
		action.Marshal(p)
	}
	if err := p.Err(); err != nil {
		return nil, err
	}
	t.digest = p.Bytes()
	return t.digest, nil
}

// Sign attaches auth produced by [factory] and reloads the transaction from
// bytes to guarantee it is canonical.
func (t *Transaction) Sign(
	factory AuthFactory,
	actionRegistry *ActionRegistry,
	authRegistry *AuthRegistry,
) (*Transaction, error) {
	msg, err := t.Digest()
	if err != nil {
		return nil, err
	}
	auth, err := factory.Sign(msg)
	if err != nil {
		return nil, err
	}
	return t.attach(auth, actionRegistry, authRegistry)
}

// Attach combines an externally produced auth (e.g. a wallet signature
// returned to the relay) with the unsigned transaction.
func (t *Transaction) Attach(
	auth Auth,
	actionRegistry *ActionRegistry,
	authRegistry *AuthRegistry,
) (*Transaction, error) {
	return t.attach(auth, actionRegistry, authRegistry)
}

func (t *Transaction) attach(
	auth Auth,
	actionRegistry *ActionRegistry,
	authRegistry *AuthRegistry,
) (*Transaction, error) {
	t.Auth = auth

	// Ensure the transaction is fully initialized and canonical by
	// reloading it from bytes.
	size := len(t.digest) + consts.ByteLen + auth.Size()
	p := codec.NewWriter(size, consts.NetworkSizeLimit)
	if err := t.Marshal(p); err != nil {
		return nil, err
	}
	if err := p.Err(); err != nil {
		return nil, err
	}
	p = codec.NewReader(p.Bytes(), consts.MaxInt)
	return UnmarshalTx(p, actionRegistry, authRegistry)
}

func (t *Transaction) Marshal(p *codec.Packer) error {
	if t.Auth == nil {
		return ErrAuthNotSet
	}
	t.Base.Marshal(p)
	p.PackByte(uint8(len(t.Actions)))
	for _, action := range t.Actions {
		p.PackByte(action.GetTypeID())
		action.Marshal(p)
	}
	p.PackByte(t.Auth.GetTypeID())
	t.Auth.Marshal(p)
	return p.Err()
}

func (t *Transaction) Bytes() []byte { return t.bytes }

func (t *Transaction) Size() int { return t.size }

func (t *Transaction) ID() ids.ID { return t.id }

func (t *Transaction) Expiry() int64 { return t.Base.Timestamp }

func (t *Transaction) MaxFee() uint64 { return t.Base.MaxFee }

// StateKeys is the union of every key any action may touch plus the
// sponsor's balance key (deposits are debited from it). The executor scopes
// the transaction's state view to exactly this set.
func (t *Transaction) StateKeys(sm StateManager) (state.Keys, error) {
	if t.stateKeys != nil {
		return t.stateKeys, nil
	}
	if t.Auth == nil {
		return nil, ErrAuthNotSet
	}
	stateKeys := make(state.Keys)
	for i, action := range t.Actions {
		for k, v := range action.StateKeys(t.Auth.Actor(), CreateActionID(t.ID(), uint8(i))) {
			stateKeys.Add(k, v)
		}
	}
	for k, v := range sm.SponsorStateKeys(t.Auth.Sponsor()) {
		stateKeys.Add(k, v)
	}
	t.stateKeys = stateKeys
	return stateKeys, nil
}

// PreExecute checks the base fields and action count without touching
// state.
func (t *Transaction) PreExecute(r Rules, timestamp int64) error {
	if err := t.Base.Execute(r, timestamp); err != nil {
		return err
	}
	if len(t.Actions) == 0 {
		return ErrNoActions
	}
	if len(t.Actions) > int(r.GetMaxActionsPerTx()) {
		return ErrTooManyActions
	}
	for i, action := range t.Actions {
		start, end := action.ValidRange(r)
		if start >= 0 && timestamp < start {
			return fmt.Errorf("%w: action %d", ErrTimestampTooFarInFuture, i)
		}
		if end >= 0 && timestamp > end {
			return fmt.Errorf("%w: action %d", ErrTimestampExpired, i)
		}
	}
	return nil
}

// Verify checks the auth against the transaction digest.
func (t *Transaction) Verify(ctx context.Context) error {
	if t.Auth == nil {
		return ErrAuthNotSet
	}
	msg, err := t.Digest()
	if err != nil {
		return err
	}
	return t.Auth.Verify(ctx, msg)
}

// Execute runs every action in order against [mu]. The caller provides a
// buffered view and only commits it if Execute returns nil, which is what
// makes a transaction all-or-nothing.
func (t *Transaction) Execute(
	ctx context.Context,
	r Rules,
	mu state.Mutable,
	timestamp int64,
) ([]codec.Typed, error) {
	outputs := make([]codec.Typed, 0, len(t.Actions))
	for i, action := range t.Actions {
		output, err := action.Execute(ctx, r, mu, timestamp, t.Auth.Actor(), CreateActionID(t.ID(), uint8(i)))
		if err != nil {
			return nil, fmt.Errorf("action %d failed: %w", i, err)
		}
		outputs = append(outputs, output)
	}
	return outputs, nil
}

// CreateActionID returns the canonical identifier of the i-th action in a
// transaction.
func CreateActionID(txID ids.ID, i uint8) ids.ID {
	actionBytes := make([]byte, ids.IDLen+consts.ByteLen)
	copy(actionBytes, txID[:])
	actionBytes[ids.IDLen] = i
	return utils.ToID(actionBytes)
}

// UnmarshalTxData parses the unsigned portion of a transaction (the digest
// encoding). It is used by the relay when assembling a wallet-signed
// transaction.
func UnmarshalTxData(
	p *codec.Packer,
	actionRegistry *ActionRegistry,
) (*Transaction, error) {
	start := p.Offset()
	base, err := UnmarshalBase(p)
	if err != nil {
		return nil, err
	}
	actions, err := unmarshalActions(p, actionRegistry)
	if err != nil {
		return nil, err
	}
	var tx Transaction
	tx.Base = base
	tx.Actions = actions
	tx.digest = p.Bytes()[start:p.Offset()]
	return &tx, p.Err()
}

func UnmarshalTx(
	p *codec.Packer,
	actionRegistry *ActionRegistry,
	authRegistry *AuthRegistry,
) (*Transaction, error) {
	start := p.Offset()
	base, err := UnmarshalBase(p)
	if err != nil {
		return nil, err
	}
	actions, err := unmarshalActions(p, actionRegistry)
	if err != nil {
		return nil, err
	}
	digest := p.Offset()
	auth, err := authRegistry.Unmarshal(p)
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal auth", err)
	}

	var tx Transaction
	tx.Base = base
	tx.Actions = actions
	tx.Auth = auth
	if err := p.Err(); err != nil {
		return nil, p.Err()
	}
	codecBytes := p.Bytes()
	tx.digest = codecBytes[start:digest]
	tx.bytes = codecBytes[start:p.Offset()]
	tx.size = len(tx.bytes)
	tx.id = utils.ToID(tx.bytes)
	return &tx, nil
}

func unmarshalActions(
	p *codec.Packer,
	actionRegistry *ActionRegistry,
) ([]Action, error) {
	actionCount := p.UnpackByte()
	if actionCount == 0 {
		return nil, ErrNoActions
	}
	actions := make([]Action, 0, actionCount)
	for i := uint8(0); i < actionCount; i++ {
		action, err := actionRegistry.Unmarshal(p)
		if err != nil {
			return nil, fmt.Errorf("%w: could not unmarshal action", err)
		}
		actions = append(actions, action)
	}
	return actions, nil
}
